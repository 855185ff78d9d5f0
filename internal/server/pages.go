package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/lox/bjodds/internal/card"
	"github.com/lox/bjodds/internal/session"
	"github.com/lox/bjodds/internal/strategy"
)

//go:embed templates/*.html
var templateFS embed.FS

func mustParsePages() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// selectorData is one <select> on the calculator page
type selectorData struct {
	Name     string
	Label    string
	Selected string
}

type pageData struct {
	Selectors []selectorData
	Symbols   []card.Symbol
	State     session.Snapshot
	Error     string
	Headers   []string
	Strategy  []strategy.Row
}

func newPageData(snap session.Snapshot, formErr string) pageData {
	return pageData{
		Selectors: []selectorData{
			{Name: formFields[session.PlayerFirst], Label: "Your Cards", Selected: snap.Player[0]},
			{Name: formFields[session.PlayerSecond], Selected: snap.Player[1]},
			{Name: formFields[session.Dealer], Label: "Dealer Upcard", Selected: snap.Dealer},
		},
		Symbols:  card.Symbols(),
		State:    snap,
		Error:    formErr,
		Headers:  strategy.Headers,
		Strategy: strategy.Rows(),
	}
}

// render executes a page into a buffer first so template errors become 500s
func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("Failed to render page", "page", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes()) // Ignore write errors
}
