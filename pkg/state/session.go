package state

import (
	"time"

	"github.com/google/uuid"
)

// RepeatItem is one element of a repeating section: a generated id plus its
// own answer slice. Ids are stable for the life of the item and never
// reused; collections are mutated only through the Session methods so id and
// order guarantees hold.
type RepeatItem struct {
	ID      string  `json:"id"`
	Answers Answers `json:"answers"`
}

// Session is the durable per-user, per-journey aggregate: the answer store
// plus the repeat item collections keyed by repeat page path. It is created
// on first page visit, mutated on every successful POST and destroyed on
// journey completion.
type Session struct {
	Answers   Answers                 `json:"answers"`
	Repeats   map[string][]RepeatItem `json:"repeats,omitempty"`
	Completed bool                    `json:"completed"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// NewSession returns an empty session stamped with the current time.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		Answers:   make(Answers),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone deep-copies the session. Request handling mutates a clone and only
// commits it on a successful save, so a failed request never leaves a
// half-applied mutation behind.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := &Session{
		Answers:   s.Answers.Clone(),
		Completed: s.Completed,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if out.Answers == nil {
		out.Answers = make(Answers)
	}
	if len(s.Repeats) > 0 {
		out.Repeats = make(map[string][]RepeatItem, len(s.Repeats))
		for path, items := range s.Repeats {
			cloned := make([]RepeatItem, len(items))
			for i, item := range items {
				cloned[i] = RepeatItem{ID: item.ID, Answers: item.Answers.Clone()}
			}
			out.Repeats[path] = cloned
		}
	}
	return out
}

// Items returns the repeat items collected for the page at path, in
// insertion order.
func (s *Session) Items(path string) []RepeatItem {
	return s.Repeats[path]
}

// Item returns the repeat item with the given id under path.
func (s *Session) Item(path, id string) (RepeatItem, bool) {
	for _, item := range s.Repeats[path] {
		if item.ID == id {
			return item, true
		}
	}
	return RepeatItem{}, false
}

// AddItem appends a new repeat item under path and returns it. The id is
// generated here and is never reused, even after the item is deleted.
func (s *Session) AddItem(path string, answers Answers) RepeatItem {
	item := RepeatItem{ID: uuid.NewString(), Answers: answers.Clone()}
	if item.Answers == nil {
		item.Answers = make(Answers)
	}
	if s.Repeats == nil {
		s.Repeats = make(map[string][]RepeatItem)
	}
	s.Repeats[path] = append(s.Repeats[path], item)
	return item
}

// ReplaceItem swaps the answers of the identified item in place, keeping its
// id and position. It reports false when no item carries the id.
func (s *Session) ReplaceItem(path, id string, answers Answers) bool {
	items := s.Repeats[path]
	for i := range items {
		if items[i].ID == id {
			items[i].Answers = answers.Clone()
			return true
		}
	}
	return false
}

// RemoveItem deletes the identified item, preserving the order of the
// remaining items. It reports false when no item carries the id.
func (s *Session) RemoveItem(path, id string) bool {
	items := s.Repeats[path]
	for i := range items {
		if items[i].ID == id {
			s.Repeats[path] = append(items[:i:i], items[i+1:]...)
			return true
		}
	}
	return false
}

// Touch stamps the session as updated now.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
