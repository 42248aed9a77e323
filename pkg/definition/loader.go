package definition

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse decodes a journey definition from YAML (or JSON, which YAML accepts
// as a subset), applies defaults and validates references. The returned
// definition is fully resolved: every next target, condition reference and
// list reference points at a declared entity.
func Parse(raw []byte) (*Definition, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("definition: document is empty")
	}

	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("definition: decode: %w", err)
	}

	applyDefaults(&def)
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// MustParse panics when the document does not parse or validate. Useful for
// tests and embedded definitions.
func MustParse(raw []byte) *Definition {
	def, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return def
}

func applyDefaults(def *Definition) {
	def.StartPath = normalizePath(def.StartPath)
	for i := range def.Pages {
		page := &def.Pages[i]
		page.Path = normalizePath(page.Path)
		if page.Controller == "" {
			page.Controller = ControllerPlain
		}
		for j := range page.Next {
			page.Next[j].Target = normalizePath(page.Next[j].Target)
		}
	}
	for i := range def.Conditions {
		if def.Conditions[i].Coordinator == "" {
			def.Conditions[i].Coordinator = CoordinatorAnd
		}
	}
}
