// Package render defines the view boundary of the journey engine. The host
// hands a page and its FormContext to a Renderer and never inspects the
// markup that comes back; implementations (template engines, JSON for SPA
// hosts, test doubles) live with the host.
package render

import (
	"context"

	"github.com/goliatone/go-formjourney/pkg/definition"
	"github.com/goliatone/go-formjourney/pkg/engine"
)

// Renderer converts a page and its per-request context into a byte
// representation (HTML, JSON, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page definition.Page, view *engine.FormContext) ([]byte, error)
}
