package ui

import "embed"

// Assets holds the dashboard templates and static files
//
//go:embed templates/*.html static/css/*.css
var Assets embed.FS
