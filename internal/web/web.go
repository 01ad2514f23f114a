// Package web embeds the portal's static pages. They are plain HTML
// served as-is; all dynamic data flows through the JSON endpoints.
package web

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFS embed.FS

// ServePage returns a handler that writes one embedded page.
func ServePage(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := staticFS.ReadFile("static/" + name)
		if err != nil {
			c.String(http.StatusNotFound, "page not found")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
}
