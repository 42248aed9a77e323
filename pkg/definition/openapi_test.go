package definition_test

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formjourney/pkg/definition"
)

func TestComponentsFromSchema(t *testing.T) {
	schema := openapi3.NewObjectSchema().
		WithProperty("age", openapi3.NewIntegerSchema().WithMin(18).WithMax(120)).
		WithProperty("email", openapi3.NewStringSchema().WithPattern(`^[^@]+@[^@]+$`)).
		WithProperty("newsletter", openapi3.NewBoolSchema()).
		WithProperty("size", openapi3.NewStringSchema().WithEnum("small", "medium", "large"))
	schema.Required = []string{"email"}

	components, err := definition.ComponentsFromSchema(openapi3.NewSchemaRef("", schema))
	if err != nil {
		t.Fatalf("ComponentsFromSchema() error = %v", err)
	}

	want := []definition.Component{
		{
			Name:  "age",
			Type:  definition.ComponentNumber,
			Title: "age",
			Validations: []definition.ValidationRule{
				{Kind: definition.ValidationRuleMin, Params: map[string]string{"value": "18"}},
				{Kind: definition.ValidationRuleMax, Params: map[string]string{"value": "120"}},
			},
		},
		{
			Name:     "email",
			Type:     definition.ComponentText,
			Title:    "email",
			Required: true,
			Validations: []definition.ValidationRule{
				{Kind: definition.ValidationRulePattern, Params: map[string]string{"pattern": `^[^@]+@[^@]+$`}},
			},
		},
		{
			Name:  "newsletter",
			Type:  definition.ComponentYesNo,
			Title: "newsletter",
		},
		{
			Name:  "size",
			Type:  definition.ComponentRadio,
			Title: "size",
			Options: []definition.ListItem{
				{Text: "small", Value: "small"},
				{Text: "medium", Value: "medium"},
				{Text: "large", Value: "large"},
			},
		},
	}
	if diff := cmp.Diff(want, components); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
}

func TestComponentsFromSchemaRejectsNonObjects(t *testing.T) {
	if _, err := definition.ComponentsFromSchema(openapi3.NewSchemaRef("", openapi3.NewStringSchema())); err == nil {
		t.Fatal("expected error for non-object schema")
	}
	if _, err := definition.ComponentsFromSchema(nil); err == nil {
		t.Fatal("expected error for nil schema")
	}
}
