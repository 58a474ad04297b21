package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/UFAZ-L2-CS1/DADLY/logging"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	DB       Pinger
	Location *time.Location
}

func NewHealthController(db Pinger, loc *time.Location) *HealthController {
	if loc == nil {
		loc = time.UTC
	}
	return &HealthController{DB: db, Location: loc}
}

// GET|HEAD /health
func (hc *HealthController) Health(c *gin.Context) {
	now := time.Now().In(hc.Location).Format("2006-01-02 15:04:05")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := hc.DB.Ping(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("health check: database unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DEGRADED", "time": now, "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "time": now, "database": "ok"})
}
