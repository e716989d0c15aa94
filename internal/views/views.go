package views

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"codeberg.org/ledgerly/server/internal/auth"
	"codeberg.org/ledgerly/server/internal/flash"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// parses every page template
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// data handed to every page template
type Page struct {
	Title    string
	Flashes  []flash.Message
	Identity *auth.Identity
	Data     any
}

// renders pages, consuming the queued flash messages
type Renderer struct {
	flashes *flash.Store
	logger  *slog.Logger
}

func NewRenderer(flashes *flash.Store, logger *slog.Logger) *Renderer {
	return &Renderer{flashes: flashes, logger: logger}
}

// renders the named template with status 200
func (r *Renderer) HTML(c *gin.Context, name, title string, data any) {
	messages, err := r.flashes.Pop(c.Writer, c.Request)
	if err != nil {
		r.logger.Warn("failed to load flash messages", "path", c.Request.URL.Path, "error", err)
	}

	id, _ := auth.CurrentIdentity(c)

	c.HTML(http.StatusOK, name, Page{
		Title:    title,
		Flashes:  messages,
		Identity: id,
		Data:     data,
	})
}
