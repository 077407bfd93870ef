package handlers

import (
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"sync"
)

type PageData struct {
	Title          string
	PageTitle      string
	CurrentPage    string
	RefreshSeconds int
}

type TemplateHandler struct {
	templates      *template.Template
	refreshSeconds int
	mu             sync.RWMutex
}

func NewTemplateHandler(templatesFS fs.FS, refreshSeconds int) (*TemplateHandler, error) {
	tmpl, err := template.ParseFS(templatesFS, "*.html")
	if err != nil {
		return nil, err
	}

	return &TemplateHandler{
		templates:      tmpl,
		refreshSeconds: refreshSeconds,
	}, nil
}

func (th *TemplateHandler) buildPageData(currentPage, pageTitle string) PageData {
	return PageData{
		Title:          "Process Viewer - " + pageTitle,
		PageTitle:      pageTitle,
		CurrentPage:    currentPage,
		RefreshSeconds: th.refreshSeconds,
	}
}

func (th *TemplateHandler) ServeTemplate(templateName, currentPage, pageTitle string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := th.buildPageData(currentPage, pageTitle)

		th.mu.RLock()
		tmpl := th.templates
		th.mu.RUnlock()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if err := tmpl.ExecuteTemplate(w, templateName+".html", data); err != nil {
			log.Printf("Error executing template %s: %v", templateName, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
}
