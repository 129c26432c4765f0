package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"leanfunnel/internal/display"

	"github.com/gin-gonic/gin"
)

var funcMap = template.FuncMap{
	"percent":  display.Percent,
	"currency": display.Currency,
	"count":    display.Count,
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.Local().Format("2006-01-02 15:04:05")
	},
	"formatDuration": func(ms int64) string {
		if ms < 1000 {
			return fmt.Sprintf("%dms", ms)
		}
		return fmt.Sprintf("%.2fs", float64(ms)/1000)
	},
}

// parseTemplates parses every templates/*.html file under its base name
func parseTemplates(assets fs.FS) (*template.Template, error) {
	files, err := fs.Glob(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found")
	}

	templates := template.New("").Funcs(funcMap)
	for _, file := range files {
		content, err := fs.ReadFile(assets, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", file, err)
		}
		name := strings.TrimPrefix(file, "templates/")
		if _, err := templates.New(name).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}
	return templates, nil
}

// renderTemplate executes a template into a buffer first so a failure never
// leaves a half-written page
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Error("error writing template response: %v", err)
	}
}
