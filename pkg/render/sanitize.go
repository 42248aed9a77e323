package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formjourney/pkg/definition"
)

var (
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy
)

// SanitizeMarkup strips unsafe markup from definition-authored content. Form
// definitions are data, often authored outside the deploying team, so their
// html/details/inset copy is cleaned before any renderer sees it.
func SanitizeMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(contentSanitizer().Sanitize(trimmed))
}

// SanitizeDefinition cleans every content and hint field of the definition
// in place and returns it. Hosts call this once at load time, before
// constructing an engine.
func SanitizeDefinition(def *definition.Definition) *definition.Definition {
	if def == nil {
		return nil
	}
	for i := range def.Pages {
		for j := range def.Pages[i].Components {
			component := &def.Pages[i].Components[j]
			component.Content = SanitizeMarkup(component.Content)
			component.Hint = SanitizeMarkup(component.Hint)
		}
	}
	for i := range def.Lists {
		for j := range def.Lists[i].Items {
			item := &def.Lists[i].Items[j]
			item.Hint = SanitizeMarkup(item.Hint)
		}
	}
	return def
}

func contentSanitizer() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		contentPolicy = bluemonday.UGCPolicy()
	})
	return contentPolicy
}
