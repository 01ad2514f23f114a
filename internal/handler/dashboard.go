package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pod-portal/internal/logger"
	"pod-portal/internal/middleware"
	"pod-portal/internal/service"
	"pod-portal/internal/web"
)

type DashboardHandler struct {
	feed *service.FeedService
}

func NewDashboardHandler(feed *service.FeedService) *DashboardHandler {
	return &DashboardHandler{feed: feed}
}

// Page serves the dashboard to supervisors and admins; everyone else is
// sent back to the capture form with a notice.
func (h *DashboardHandler) Page(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !user.Role.CanViewDashboard() {
		flashAndRedirect(c, "Dashboard is restricted to supervisors.", "/pod/event")
		return
	}
	web.ServePage("dashboard.html")(c)
}

// LiveDeliveries handles GET /api/deliveries/live. The snapshot is
// recomputed from the database on every poll.
func (h *DashboardHandler) LiveDeliveries(c *gin.Context) {
	entries, err := h.feed.LiveDeliveries(c.Request.Context())
	if err != nil {
		logger.Error("live feed failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "feed unavailable"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
