package definition

import "strings"

// ControllerKind is the closed set of page controller behaviours. Selecting
// behaviour by kind (instead of open-ended subtype checks) keeps the
// capability set explicit: every consumer switches exhaustively over these
// values.
type ControllerKind string

const (
	ControllerPlain    ControllerKind = "plain"
	ControllerUpload   ControllerKind = "upload"
	ControllerRepeat   ControllerKind = "repeat"
	ControllerSummary  ControllerKind = "summary"
	ControllerTerminal ControllerKind = "terminal"
)

// Valid reports whether the kind is one of the known controller kinds.
func (k ControllerKind) Valid() bool {
	switch k {
	case ControllerPlain, ControllerUpload, ControllerRepeat, ControllerSummary, ControllerTerminal:
		return true
	default:
		return false
	}
}

// ComponentType enumerates the supported component kinds. The content-only
// types (html, details, inset) render copy but collect no answers.
type ComponentType string

const (
	ComponentText       ComponentType = "text"
	ComponentMultiline  ComponentType = "multiline"
	ComponentNumber     ComponentType = "number"
	ComponentYesNo      ComponentType = "yesno"
	ComponentDate       ComponentType = "date"
	ComponentSelect     ComponentType = "select"
	ComponentRadio      ComponentType = "radio"
	ComponentCheckboxes ComponentType = "checkboxes"
	ComponentFile       ComponentType = "file"
	ComponentHTML       ComponentType = "html"
	ComponentDetails    ComponentType = "details"
	ComponentInset      ComponentType = "inset"
)

// Valid reports whether the type is one of the known component types.
func (t ComponentType) Valid() bool {
	switch t {
	case ComponentText, ComponentMultiline, ComponentNumber, ComponentYesNo,
		ComponentDate, ComponentSelect, ComponentRadio, ComponentCheckboxes,
		ComponentFile, ComponentHTML, ComponentDetails, ComponentInset:
		return true
	default:
		return false
	}
}

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule is a single constraint applied to a component's submitted
// value. Numeric bounds and length limits encode their threshold in
// Params["value"]; pattern rules keep the expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `yaml:"kind" json:"kind"`
	Params map[string]string `yaml:"params,omitempty" json:"params,omitempty"`
}

// Component models one entry on a page: either a form input that collects an
// answer under its Name, or a block of content.
type Component struct {
	Name        string           `yaml:"name" json:"name"`
	Type        ComponentType    `yaml:"type" json:"type"`
	Title       string           `yaml:"title,omitempty" json:"title,omitempty"`
	Hint        string           `yaml:"hint,omitempty" json:"hint,omitempty"`
	Content     string           `yaml:"content,omitempty" json:"content,omitempty"`
	List        string           `yaml:"list,omitempty" json:"list,omitempty"`
	Options     []ListItem       `yaml:"options,omitempty" json:"options,omitempty"`
	Required    bool             `yaml:"required,omitempty" json:"required,omitempty"`
	Validations []ValidationRule `yaml:"validations,omitempty" json:"validations,omitempty"`
}

// IsFormComponent reports whether the component collects an answer. Content
// components (html, details, inset) are excluded from validation, relevance
// and summary aggregation.
func (c Component) IsFormComponent() bool {
	switch c.Type {
	case ComponentHTML, ComponentDetails, ComponentInset:
		return false
	default:
		return true
	}
}

// Operator compares a component's current answer against a literal value.
type Operator string

const (
	OperatorIs             Operator = "is"
	OperatorIsNot          Operator = "isNot"
	OperatorContains       Operator = "contains"
	OperatorDoesNotContain Operator = "doesNotContain"
	OperatorIsLongerThan   Operator = "isLongerThan"
	OperatorIsShorterThan  Operator = "isShorterThan"
	OperatorIsMoreThan     Operator = "isMoreThan"
	OperatorIsLessThan     Operator = "isLessThan"
)

// Valid reports whether the operator is one of the known operators.
func (o Operator) Valid() bool {
	switch o {
	case OperatorIs, OperatorIsNot, OperatorContains, OperatorDoesNotContain,
		OperatorIsLongerThan, OperatorIsShorterThan, OperatorIsMoreThan, OperatorIsLessThan:
		return true
	default:
		return false
	}
}

// ConditionItem asserts one comparison between a component's answer and a
// literal value.
type ConditionItem struct {
	Field    string   `yaml:"field" json:"field"`
	Operator Operator `yaml:"operator" json:"operator"`
	Value    any      `yaml:"value" json:"value"`
}

// CoordinatorAnd is the only item coordinator currently accepted. Disjunction
// is a data-model extension point; definitions that need richer composition
// use an Expr condition instead.
const CoordinatorAnd = "and"

// Condition is a named pure predicate over the answer store. A condition is
// authored either as a conjunction of Items or as a single Expr string; never
// both.
type Condition struct {
	Name        string          `yaml:"name" json:"name"`
	DisplayName string          `yaml:"displayName,omitempty" json:"displayName,omitempty"`
	Coordinator string          `yaml:"coordinator,omitempty" json:"coordinator,omitempty"`
	Items       []ConditionItem `yaml:"items,omitempty" json:"items,omitempty"`
	Expr        string          `yaml:"expr,omitempty" json:"expr,omitempty"`
}

// ListItem is one selectable entry of a List or inline option set. An
// optional Condition name limits when the entry is offered.
type ListItem struct {
	Text      string `yaml:"text" json:"text"`
	Value     string `yaml:"value" json:"value"`
	Hint      string `yaml:"hint,omitempty" json:"hint,omitempty"`
	Condition string `yaml:"condition,omitempty" json:"condition,omitempty"`
}

// List is a named enumeration referenced by select/radio/checkbox components.
type List struct {
	Name  string     `yaml:"name" json:"name"`
	Title string     `yaml:"title,omitempty" json:"title,omitempty"`
	Items []ListItem `yaml:"items" json:"items"`
}

// Link is one outgoing edge of a page. An empty Condition makes the edge
// unconditional; declared order is significant (first match wins).
type Link struct {
	Target    string `yaml:"target" json:"target"`
	Condition string `yaml:"condition,omitempty" json:"condition,omitempty"`
}

// RepeatSchema bounds the item collection of a repeat page. Min gates
// continuation; Max (when positive) blocks further adds.
type RepeatSchema struct {
	Min int `yaml:"min,omitempty" json:"min,omitempty"`
	Max int `yaml:"max,omitempty" json:"max,omitempty"`
}

// Page is one step of a journey. Path is unique within a definition. An
// optional Condition guards reachability: resolution never lands on a page
// whose guard evaluates false.
type Page struct {
	Path       string         `yaml:"path" json:"path"`
	Title      string         `yaml:"title,omitempty" json:"title,omitempty"`
	Section    string         `yaml:"section,omitempty" json:"section,omitempty"`
	Controller ControllerKind `yaml:"controller,omitempty" json:"controller,omitempty"`
	Condition  string         `yaml:"condition,omitempty" json:"condition,omitempty"`
	Components []Component    `yaml:"components,omitempty" json:"components,omitempty"`
	Next       []Link         `yaml:"next,omitempty" json:"next,omitempty"`
	Repeat     *RepeatSchema  `yaml:"repeat,omitempty" json:"repeat,omitempty"`
}

// FormComponents returns the page components that collect answers, in
// declared order.
func (p Page) FormComponents() []Component {
	out := make([]Component, 0, len(p.Components))
	for _, component := range p.Components {
		if component.IsFormComponent() {
			out = append(out, component)
		}
	}
	return out
}

// Definition is an immutable, fully resolved form journey: ordered pages,
// named conditions, named lists and a starting path. Build one with Parse (or
// construct it directly) and call Validate before handing it to an engine.
type Definition struct {
	Name       string      `yaml:"name" json:"name"`
	StartPath  string      `yaml:"startPath" json:"startPath"`
	Pages      []Page      `yaml:"pages" json:"pages"`
	Conditions []Condition `yaml:"conditions,omitempty" json:"conditions,omitempty"`
	Lists      []List      `yaml:"lists,omitempty" json:"lists,omitempty"`
}

// FindPage returns the page registered under path, or nil.
func (d *Definition) FindPage(path string) *Page {
	for i := range d.Pages {
		if d.Pages[i].Path == path {
			return &d.Pages[i]
		}
	}
	return nil
}

// FindCondition returns the condition registered under name, or nil.
func (d *Definition) FindCondition(name string) *Condition {
	for i := range d.Conditions {
		if d.Conditions[i].Name == name {
			return &d.Conditions[i]
		}
	}
	return nil
}

// FindList returns the list registered under name, or nil.
func (d *Definition) FindList(name string) *List {
	for i := range d.Lists {
		if d.Lists[i].Name == name {
			return &d.Lists[i]
		}
	}
	return nil
}

// FindComponent locates a form component by name across all pages.
func (d *Definition) FindComponent(name string) (*Component, *Page) {
	for i := range d.Pages {
		for j := range d.Pages[i].Components {
			if d.Pages[i].Components[j].Name == name {
				return &d.Pages[i].Components[j], &d.Pages[i]
			}
		}
	}
	return nil, nil
}

func normalizePath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	if len(trimmed) > 1 {
		trimmed = strings.TrimRight(trimmed, "/")
	}
	return trimmed
}
