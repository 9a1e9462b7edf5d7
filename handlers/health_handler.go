package handlers

import (
	"net/http"
	"time"

	"github.com/TravelTales/travel-claims-backend/internal/store"
	"github.com/TravelTales/travel-claims-backend/types"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	store store.SubmissionStore
}

func NewHealthHandler(submissionStore store.SubmissionStore) *HealthHandler {
	return &HealthHandler{store: submissionStore}
}

// Welcome handles GET / as a liveness/welcome endpoint.
func (h *HealthHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, types.MessageResponse{
		Message: "Travel claims API is running",
	})
}

// HealthCheck handles GET /api/health. It verifies store connectivity and
// reports an error status when the document store is unreachable.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, types.HealthCheck{
			Status:    types.HealthStatusError,
			Timestamp: timestamp,
			Components: map[string]types.HealthComponent{
				"store": {
					Status:  types.HealthStatusError,
					Details: "document store unreachable",
				},
			},
		})
		return
	}

	c.JSON(http.StatusOK, types.HealthCheck{
		Status:    types.HealthStatusOK,
		Timestamp: timestamp,
	})
}
