package definition

import (
	"errors"
	"fmt"
)

// Validate checks the definition for authoring errors: duplicate or missing
// pages, dangling next/condition/list references, unknown controller and
// component kinds, and malformed conditions or repeat schemas. A violated
// reference is a load-time error, never a runtime one; engines may assume a
// validated definition is fully resolved.
func (d *Definition) Validate() error {
	var errs []error

	if d.StartPath == "" {
		errs = append(errs, errors.New("definition: startPath is required"))
	}
	if len(d.Pages) == 0 {
		errs = append(errs, errors.New("definition: at least one page is required"))
	}

	paths := make(map[string]struct{}, len(d.Pages))
	for _, page := range d.Pages {
		if page.Path == "" {
			errs = append(errs, errors.New("definition: page path is required"))
			continue
		}
		if _, dup := paths[page.Path]; dup {
			errs = append(errs, fmt.Errorf("definition: duplicate page path %q", page.Path))
		}
		paths[page.Path] = struct{}{}
	}

	if d.StartPath != "" && d.FindPage(d.StartPath) == nil {
		errs = append(errs, fmt.Errorf("definition: startPath %q is not a page", d.StartPath))
	}

	conditions := make(map[string]struct{}, len(d.Conditions))
	for _, cond := range d.Conditions {
		if cond.Name == "" {
			errs = append(errs, errors.New("definition: condition name is required"))
			continue
		}
		if _, dup := conditions[cond.Name]; dup {
			errs = append(errs, fmt.Errorf("definition: duplicate condition %q", cond.Name))
		}
		conditions[cond.Name] = struct{}{}
		errs = append(errs, validateCondition(cond)...)
	}

	lists := make(map[string]struct{}, len(d.Lists))
	for _, list := range d.Lists {
		if list.Name == "" {
			errs = append(errs, errors.New("definition: list name is required"))
			continue
		}
		if _, dup := lists[list.Name]; dup {
			errs = append(errs, fmt.Errorf("definition: duplicate list %q", list.Name))
		}
		lists[list.Name] = struct{}{}
		for _, item := range list.Items {
			if item.Condition != "" {
				if _, ok := conditions[item.Condition]; !ok {
					errs = append(errs, fmt.Errorf("definition: list %q item %q references unknown condition %q", list.Name, item.Value, item.Condition))
				}
			}
		}
	}

	for _, page := range d.Pages {
		errs = append(errs, d.validatePage(page, paths, conditions, lists)...)
	}

	return errors.Join(errs...)
}

func validateCondition(cond Condition) []error {
	var errs []error
	hasItems := len(cond.Items) > 0
	hasExpr := cond.Expr != ""
	switch {
	case hasItems && hasExpr:
		errs = append(errs, fmt.Errorf("definition: condition %q declares both items and expr", cond.Name))
	case !hasItems && !hasExpr:
		errs = append(errs, fmt.Errorf("definition: condition %q declares neither items nor expr", cond.Name))
	}
	if cond.Coordinator != "" && cond.Coordinator != CoordinatorAnd {
		errs = append(errs, fmt.Errorf("definition: condition %q has unsupported coordinator %q", cond.Name, cond.Coordinator))
	}
	for _, item := range cond.Items {
		if item.Field == "" {
			errs = append(errs, fmt.Errorf("definition: condition %q has an item without a field", cond.Name))
		}
		if !item.Operator.Valid() {
			errs = append(errs, fmt.Errorf("definition: condition %q uses unknown operator %q", cond.Name, item.Operator))
		}
	}
	return errs
}

func (d *Definition) validatePage(page Page, paths, conditions, lists map[string]struct{}) []error {
	var errs []error

	if !page.Controller.Valid() {
		errs = append(errs, fmt.Errorf("definition: page %q has unknown controller %q", page.Path, page.Controller))
	}
	if page.Condition != "" {
		if _, ok := conditions[page.Condition]; !ok {
			errs = append(errs, fmt.Errorf("definition: page %q references unknown condition %q", page.Path, page.Condition))
		}
	}
	for _, link := range page.Next {
		if link.Target == "" {
			errs = append(errs, fmt.Errorf("definition: page %q has a next link without a target", page.Path))
			continue
		}
		if _, ok := paths[link.Target]; !ok {
			errs = append(errs, fmt.Errorf("definition: page %q links to unknown page %q", page.Path, link.Target))
		}
		if link.Condition != "" {
			if _, ok := conditions[link.Condition]; !ok {
				errs = append(errs, fmt.Errorf("definition: page %q link to %q references unknown condition %q", page.Path, link.Target, link.Condition))
			}
		}
	}

	switch {
	case page.Controller == ControllerRepeat && page.Repeat == nil:
		errs = append(errs, fmt.Errorf("definition: repeat page %q is missing a repeat schema", page.Path))
	case page.Controller != ControllerRepeat && page.Repeat != nil:
		errs = append(errs, fmt.Errorf("definition: page %q declares a repeat schema but is not a repeat page", page.Path))
	}
	if page.Repeat != nil {
		if page.Repeat.Min < 0 {
			errs = append(errs, fmt.Errorf("definition: page %q repeat min must not be negative", page.Path))
		}
		if page.Repeat.Max > 0 && page.Repeat.Min > page.Repeat.Max {
			errs = append(errs, fmt.Errorf("definition: page %q repeat min %d exceeds max %d", page.Path, page.Repeat.Min, page.Repeat.Max))
		}
	}

	seen := make(map[string]struct{}, len(page.Components))
	for _, component := range page.Components {
		if component.Name == "" {
			errs = append(errs, fmt.Errorf("definition: page %q has a component without a name", page.Path))
			continue
		}
		if _, dup := seen[component.Name]; dup {
			errs = append(errs, fmt.Errorf("definition: page %q has duplicate component %q", page.Path, component.Name))
		}
		seen[component.Name] = struct{}{}
		if !component.Type.Valid() {
			errs = append(errs, fmt.Errorf("definition: component %q has unknown type %q", component.Name, component.Type))
		}
		if component.List != "" {
			if _, ok := lists[component.List]; !ok {
				errs = append(errs, fmt.Errorf("definition: component %q references unknown list %q", component.Name, component.List))
			}
		}
		if component.List != "" && len(component.Options) > 0 {
			errs = append(errs, fmt.Errorf("definition: component %q declares both a list and inline options", component.Name))
		}
	}

	return errs
}
