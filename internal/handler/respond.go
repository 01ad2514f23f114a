package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// wantsJSON is the single switch between programmatic and interactive
// callers: devices set Accept: application/json, browsers post forms.
func wantsJSON(c *gin.Context) bool {
	return c.GetHeader("Accept") == "application/json"
}

// flashAndRedirect carries a one-shot notice to the next page through a
// short-lived cookie the static pages read and clear. SetCookie escapes
// the value; the page decodes it.
func flashAndRedirect(c *gin.Context, msg, location string) {
	c.SetCookie("flash", msg, 60, "/", "", false, false)
	c.Redirect(http.StatusFound, location)
}
