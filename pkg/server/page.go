package server

import (
	"io"
	"log/slog"
	"net/http"

	mferrors "github.com/vango-dev/mathfield/internal/errors"
	"github.com/vango-dev/mathfield/pkg/dom"
	"github.com/vango-dev/mathfield/pkg/mathfield"
	"github.com/vango-dev/mathfield/pkg/render"
	"github.com/vango-dev/mathfield/pkg/vdom"
)

// DemoProps returns a props source that logs committed values.
func DemoProps(logger *slog.Logger) PropsFunc {
	return func(id string) vdom.Props {
		return vdom.Props{
			"className":                  "demo-field",
			"defaultMode":                "math",
			"smartFence":                 true,
			"virtualKeyboardMode":        "manual",
			"virtualKeyboardToggleGlyph": vdom.Span(vdom.Class("glyph"), vdom.Text("⌨")),
			"aria-label":                 "Equation " + id,
			"onCommit": func(e *dom.Event) {
				logger.Info("field committed", "id", id, "value", e.DetailMap()["value"])
			},
		}
	}
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	body := []any{vdom.H1(vdom.Text("Math fields"))}
	for _, id := range s.fields {
		f := mathfield.New(
			mathfield.WithID(id),
			mathfield.WithTag(s.config.Tag),
			mathfield.WithLogger(s.logger),
		)
		node, err := f.Render(r.Context(), s.props(id))
		f.Unmount()
		if err != nil {
			s.renderError(w, err)
			return
		}
		body = append(body, vdom.Div(vdom.Class("field"), node))
	}

	head := []any{
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Title(vdom.Text("mathfield")),
	}
	if s.config.WidgetScript != "" {
		head = append(head, vdom.Script(vdom.Src(s.config.WidgetScript)))
	}
	head = append(head, vdom.Script(
		vdom.Type("module"),
		vdom.Src(s.resolver.Asset(RuntimeName)),
		vdom.Data("endpoint", AssetPath+"ws"),
	))

	page := vdom.Html(vdom.Head(head...), vdom.Body(vdom.Main(body...)))
	html, err := render.String(page)
	if err != nil {
		s.renderError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, "<!DOCTYPE html>"+html)
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	s.logger.Error("page render failed", "error", mferrors.New("E203").Wrap(err))
	http.Error(w, "render failed", http.StatusInternalServerError)
}
