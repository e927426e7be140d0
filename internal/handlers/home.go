package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"go.uber.org/zap"
)

// HomeHandler renders the main menu
type HomeHandler struct {
	template *template.Template
	logger   *zap.Logger
}

// NewHomeHandler creates a new HomeHandler from the page templates in fsys
func NewHomeHandler(fsys fs.FS, logger *zap.Logger) (*HomeHandler, error) {
	tmpl, err := template.ParseFS(fsys, "partials.html", "home.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HomeHandler{
		template: tmpl,
		logger:   logger,
	}, nil
}

// ServeHTTP handles the GET / request
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.ExecuteTemplate(w, "home.html", nil); err != nil {
		h.logger.Error("failed to render home page", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
