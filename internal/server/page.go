package server

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/dsai-cliques/cliques/pkg/scene"
)

//go:embed assets/index.html
var indexHTML string

var pageTemplate = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	PageTitle    string
	Title        string
	Instructions string
	Background   string
	FontColor    string
	Height       string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		PageTitle:    DefaultPageTitle,
		Title:        s.title,
		Instructions: DefaultInstructions,
		Background:   s.opts.Background,
		FontColor:    s.opts.FontColor,
		Height:       scene.DefaultHeight,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("render page", "error", err)
	}
}
