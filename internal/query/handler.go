package query

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the read-path endpoints on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/top-queries", s.HandleTopQueries)
	r.GET("/average-request-time", s.HandleAverageRequestTime)
	r.GET("/popular-time", s.HandlePopularTime)
}

// HandleTopQueries handles GET /top-queries
func (s *Service) HandleTopQueries(c *gin.Context) {
	envelope, cacheControl, err := s.TopQueries(c.Request.Context())
	if err != nil {
		slog.Error("[Query] Failed to fetch top queries", "error", err)
		respondDegraded(c, "Error fetching top queries", []TopQueryEntry{})
		return
	}
	respond(c, envelope, cacheControl)
}

// HandleAverageRequestTime handles GET /average-request-time
func (s *Service) HandleAverageRequestTime(c *gin.Context) {
	envelope, cacheControl, err := s.AverageRequestTime(c.Request.Context())
	if err != nil {
		slog.Error("[Query] Failed to fetch average request time", "error", err)
		respondDegraded(c, "Error fetching average request time", AverageRequestTime{})
		return
	}
	respond(c, envelope, cacheControl)
}

// HandlePopularTime handles GET /popular-time
func (s *Service) HandlePopularTime(c *gin.Context) {
	envelope, cacheControl, err := s.PopularTime(c.Request.Context())
	if err != nil {
		slog.Error("[Query] Failed to fetch popular time", "error", err)
		respondDegraded(c, "Error fetching popular time",
			PopularTime{Hour: "0", RequestCount: 0})
		return
	}
	respond(c, envelope, cacheControl)
}

func respond(c *gin.Context, envelope Envelope, cacheControl string) {
	c.Header("Cache-Control", cacheControl)
	c.JSON(http.StatusOK, envelope)
}

// respondDegraded serves the zero-value payload when the snapshot store is
// unreachable. Stale-or-missing statistics are an expected operating state,
// so the caller still gets a valid 200 response, just one nobody may cache.
func respondDegraded(c *gin.Context, message string, result any) {
	c.Header("Cache-Control", noSnapshotDirective)
	c.JSON(http.StatusOK, Envelope{Message: message, Result: result})
}
