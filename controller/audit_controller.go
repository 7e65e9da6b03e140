// controller/audit_controller.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MichaelGetu-git/Security-Project/audit"
	"github.com/MichaelGetu-git/Security-Project/middleware"
	"github.com/MichaelGetu-git/Security-Project/pdp/engine"
	"github.com/MichaelGetu-git/Security-Project/util"
	helper_util "github.com/MichaelGetu-git/Security-Project/util/helper"
)

type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit", middleware.RequirePermission(engine.PermissionAuditRead), ac.QueryLogs)
}

// QueryLogs endpoint. Filters: from, to (RFC3339), userId, resource, action, size.
func (ac *AuditController) QueryLogs(c *gin.Context) {
	from, to, err := helper_util.ParseTimeRange(c.Query("from"), c.Query("to"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid time range", err)
		return
	}
	userID, err := helper_util.GetOptionalInt64(c, "userId")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid userId", err)
		return
	}
	size := 0
	if raw := c.Query("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 0 {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid size", err)
			return
		}
	}

	logs, err := ac.auditService.QueryLogs(c.Request.Context(), audit.AuditQuery{
		From:     from,
		To:       to,
		UserID:   userID,
		Resource: c.Query("resource"),
		Action:   c.Query("action"),
		Size:     size,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to query audit logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}
