package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Templ wraps a node tree as a templ component so handlers render every view
// the same way.
func Templ(build func(ctx context.Context) g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return build(ctx).Render(w)
	})
}

// Embed renders a templ component inside a node tree
func Embed(ctx context.Context, c templ.Component) g.Node {
	return g.NodeFunc(func(w io.Writer) error {
		return c.Render(ctx, w)
	})
}

// JSONScript embeds data as an application/json script tag carrying the CSP nonce
func JSONScript(ctx context.Context, id string, data any, nonce string) g.Node {
	return Embed(ctx, templ.JSONScript(id, data).WithNonceFromString(nonce))
}
