package adoptionserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthAPI answers liveness probes and, when a database is configured, checks it.
type HealthAPI struct {
	db Pinger
}

// NewHealthAPI creates a HealthAPI. db may be nil for the in-memory backend.
func NewHealthAPI(db Pinger) HealthAPI {
	return HealthAPI{db: db}
}

// Get /healthz
// Reports service health
func (api *HealthAPI) Healthz(c *gin.Context) {
	if api.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := api.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
