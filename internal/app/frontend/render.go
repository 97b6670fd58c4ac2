package frontend

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin/render"
)

var _ render.Render = (*TemplRender)(nil)

// TemplRender adapts a templ component to gin's render interface.
// Use it with c.Render, which writes the status code.
type TemplRender struct {
	Ctx       context.Context
	Component templ.Component
}

func (t TemplRender) Render(w http.ResponseWriter) error {
	t.WriteContentType(w)
	if t.Component == nil {
		return nil
	}
	return t.Component.Render(t.Ctx, w)
}

func (t TemplRender) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
