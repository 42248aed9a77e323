package engine

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-formjourney/pkg/definition"
	"github.com/goliatone/go-formjourney/pkg/state"
)

const dateLayout = "2006-01-02"

// validatePage checks a submitted payload against the page's component
// schema. On success the returned answers hold parsed values (string, bool,
// float64 or []string); on failure the field errors describe every failing
// component and no answers are returned. Option membership is checked
// against the entries offered for scope, so a value hidden by a condition is
// rejected even if it exists in the list.
func (e *Engine) validatePage(page definition.Page, scope state.Answers, form url.Values) (state.Answers, []FieldError) {
	answers := make(state.Answers)
	var fieldErrors []FieldError

	fail := func(component definition.Component, format string, args ...any) {
		fieldErrors = append(fieldErrors, FieldError{
			Name:    component.Name,
			Message: fmt.Sprintf(format, args...),
		})
	}

	for _, component := range page.FormComponents() {
		label := component.Title
		if label == "" {
			label = component.Name
		}

		if component.Type == definition.ComponentCheckboxes {
			values := trimAll(form[component.Name])
			if len(values) == 0 {
				if component.Required {
					fail(component, "%s is required", label)
				}
				continue
			}
			offered := optionValues(e.componentOptions(component, scope))
			valid := true
			for _, value := range values {
				if _, ok := offered[value]; !ok {
					fail(component, "%s has an unrecognised option %q", label, value)
					valid = false
					break
				}
			}
			if valid {
				answers[component.Name] = values
			}
			continue
		}

		raw := strings.TrimSpace(form.Get(component.Name))
		if raw == "" {
			if component.Required {
				fail(component, "%s is required", label)
			}
			continue
		}

		switch component.Type {
		case definition.ComponentText, definition.ComponentMultiline, definition.ComponentFile:
			if msg := e.checkTextRules(component, raw); msg != "" {
				fail(component, "%s %s", label, msg)
				continue
			}
			answers[component.Name] = raw

		case definition.ComponentNumber:
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				fail(component, "%s must be a number", label)
				continue
			}
			if msg := checkNumberRules(component, value); msg != "" {
				fail(component, "%s %s", label, msg)
				continue
			}
			answers[component.Name] = value

		case definition.ComponentYesNo:
			switch raw {
			case "true", "yes":
				answers[component.Name] = true
			case "false", "no":
				answers[component.Name] = false
			default:
				fail(component, "%s must be answered yes or no", label)
			}

		case definition.ComponentDate:
			if _, err := time.Parse(dateLayout, raw); err != nil {
				fail(component, "%s must be a real date", label)
				continue
			}
			answers[component.Name] = raw

		case definition.ComponentSelect, definition.ComponentRadio:
			offered := optionValues(e.componentOptions(component, scope))
			if _, ok := offered[raw]; !ok {
				fail(component, "%s has an unrecognised option %q", label, raw)
				continue
			}
			answers[component.Name] = raw
		}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}
	return answers, nil
}

func (e *Engine) checkTextRules(component definition.Component, value string) string {
	length := utf8.RuneCountInString(value)
	for _, rule := range component.Validations {
		switch rule.Kind {
		case definition.ValidationRuleMinLength:
			if limit, ok := intParam(rule, "value"); ok && length < limit {
				return fmt.Sprintf("must be at least %d characters", limit)
			}
		case definition.ValidationRuleMaxLength:
			if limit, ok := intParam(rule, "value"); ok && length > limit {
				return fmt.Sprintf("must be at most %d characters", limit)
			}
		case definition.ValidationRulePattern:
			pattern := rule.Params["pattern"]
			if compiled, ok := e.patterns[pattern]; ok && !compiled.MatchString(value) {
				return "is not in the expected format"
			}
		}
	}
	return ""
}

func checkNumberRules(component definition.Component, value float64) string {
	for _, rule := range component.Validations {
		switch rule.Kind {
		case definition.ValidationRuleMin:
			if limit, ok := floatParam(rule, "value"); ok && value < limit {
				return fmt.Sprintf("must be %v or more", limit)
			}
		case definition.ValidationRuleMax:
			if limit, ok := floatParam(rule, "value"); ok && value > limit {
				return fmt.Sprintf("must be %v or less", limit)
			}
		}
	}
	return ""
}

func intParam(rule definition.ValidationRule, key string) (int, bool) {
	value, err := strconv.Atoi(rule.Params[key])
	if err != nil {
		return 0, false
	}
	return value, true
}

func floatParam(rule definition.ValidationRule, key string) (float64, bool) {
	value, err := strconv.ParseFloat(rule.Params[key], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func optionValues(items []definition.ListItem) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[item.Value] = struct{}{}
	}
	return out
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
