// Package templates holds the HTML building blocks shared by the layout,
// component and page templates.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Builder accumulates the HTML for one component
type Builder struct {
	strings.Builder
}

// Text writes s with HTML escaping
func (b *Builder) Text(s string) {
	b.WriteString(templ.EscapeString(s))
}

// Raw writes trusted markup as is
func (b *Builder) Raw(s string) {
	b.WriteString(s)
}

// Rawf writes formatted trusted markup. Untrusted arguments must go
// through Escape first.
func (b *Builder) Rawf(format string, args ...any) {
	fmt.Fprintf(&b.Builder, format, args...)
}

// Component renders a child component in place
func (b *Builder) Component(ctx context.Context, c templ.Component) error {
	return c.Render(ctx, &b.Builder)
}

// Escape escapes s for use in text or a quoted attribute
func Escape(s string) string {
	return templ.EscapeString(s)
}

// Func turns a build function into a templ.Component. Nothing is written
// to w unless the whole component builds without error.
func Func(build func(ctx context.Context, b *Builder) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b Builder
		if err := build(ctx, &b); err != nil {
			return err
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// RenderString renders a component to a string
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
