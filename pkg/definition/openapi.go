package definition

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

// ComponentsFromSchema derives a page component list from an OpenAPI object
// schema, so journeys can be authored against existing API models. Each
// property becomes one form component: booleans map to yesno, numerics to
// number, enums to radio groups with inline options, date formats to date
// inputs and everything else to text. Length, bound and pattern constraints
// carry over as validation rules. Properties are emitted in name order for
// deterministic output.
func ComponentsFromSchema(ref *openapi3.SchemaRef) ([]Component, error) {
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("definition: openapi schema is required")
	}
	src := ref.Value
	if src.Type != nil && !src.Type.Is(openapi3.TypeObject) {
		return nil, fmt.Errorf("definition: openapi schema must be an object, got %q", firstType(src.Type))
	}
	if len(src.Properties) == 0 {
		return nil, fmt.Errorf("definition: openapi schema has no properties")
	}

	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	components := make([]Component, 0, len(names))
	for _, name := range names {
		property := src.Properties[name]
		if property == nil || property.Value == nil {
			return nil, fmt.Errorf("definition: openapi property %q is unresolved", name)
		}
		component := componentFromProperty(name, property.Value)
		if _, ok := required[name]; ok {
			component.Required = true
		}
		components = append(components, component)
	}
	return components, nil
}

func componentFromProperty(name string, src *openapi3.Schema) Component {
	component := Component{
		Name:  name,
		Title: src.Title,
		Hint:  src.Description,
	}
	if component.Title == "" {
		component.Title = name
	}

	switch {
	case len(src.Enum) > 0:
		component.Type = ComponentRadio
		for _, value := range src.Enum {
			text := fmt.Sprint(value)
			component.Options = append(component.Options, ListItem{Text: text, Value: text})
		}
	case src.Type.Is(openapi3.TypeBoolean):
		component.Type = ComponentYesNo
	case src.Type.Is(openapi3.TypeInteger) || src.Type.Is(openapi3.TypeNumber):
		component.Type = ComponentNumber
	case src.Format == "date" || src.Format == "date-time":
		component.Type = ComponentDate
	case src.Format == "textarea":
		component.Type = ComponentMultiline
	default:
		component.Type = ComponentText
	}

	component.Validations = validationsFromSchema(src)
	return component
}

func validationsFromSchema(src *openapi3.Schema) []ValidationRule {
	var rules []ValidationRule
	if src.MinLength != 0 {
		rules = append(rules, lengthRule(ValidationRuleMinLength, int(src.MinLength)))
	}
	if src.MaxLength != nil {
		rules = append(rules, lengthRule(ValidationRuleMaxLength, int(*src.MaxLength)))
	}
	if src.Min != nil {
		rules = append(rules, boundRule(ValidationRuleMin, *src.Min))
	}
	if src.Max != nil {
		rules = append(rules, boundRule(ValidationRuleMax, *src.Max))
	}
	if src.Pattern != "" {
		rules = append(rules, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": src.Pattern},
		})
	}
	return rules
}

func lengthRule(kind string, value int) ValidationRule {
	return ValidationRule{
		Kind:   kind,
		Params: map[string]string{"value": strconv.Itoa(value)},
	}
}

func boundRule(kind string, value float64) ValidationRule {
	return ValidationRule{
		Kind:   kind,
		Params: map[string]string{"value": strconv.FormatFloat(value, 'f', -1, 64)},
	}
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
