package httpserver

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/bufferpad/internal/buffer"
	apperrors "github.com/pscheid92/bufferpad/internal/platform/errors"
)

const (
	formFieldText  = "text_input"
	formFieldDebug = "debug"
	debugOn        = "on"
)

type indexPage struct {
	Content template.HTML
	Debug   bool
	Codes   string
	Raw     string
}

func (s *Server) registerIndexRoutes(updateLimiter echo.MiddlewareFunc) {
	s.echo.GET("/", s.handleIndex)
	s.echo.POST("/", s.handleIndex, updateLimiter)
}

// handleIndex renders the buffer. A POST whose body carries text_input
// replaces the buffer first; debug=on in the body adds the code and
// escaped-text views.
func (s *Server) handleIndex(c echo.Context) error {
	ctx := c.Request().Context()

	var debug bool
	snap := s.buffer.Snapshot(ctx)

	if c.Request().Method == http.MethodPost {
		if _, err := c.FormParams(); err != nil {
			return apperrors.ValidationError("invalid form body").WithField("cause", err.Error())
		}
		// Only the body counts; query parameters on a POST are ignored.
		params := c.Request().PostForm

		if values, ok := params[formFieldText]; ok {
			var text string
			if len(values) > 0 {
				text = values[0]
			}
			snap = s.buffer.Update(ctx, text)
		}
		debug = params.Get(formFieldDebug) == debugOn
	}

	return s.renderTemplate(c, "index.html", newIndexPage(snap.Buffer, debug))
}

func newIndexPage(b buffer.Buffer, debug bool) indexPage {
	text := b.Text()
	page := indexPage{
		// The buffer is echoed as markup; only the debug view escapes it.
		Content: template.HTML(text), //nolint:gosec
		Debug:   debug,
	}
	if debug {
		page.Codes = b.CodeList()
		page.Raw = text
	}
	return page
}
