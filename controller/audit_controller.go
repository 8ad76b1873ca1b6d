// controller/audit_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/audit"
	gw_errors "github.com/Jusharra/identity-aware-healthcare-rag-mcp/errors"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/util"
	helper_util "github.com/Jusharra/identity-aware-healthcare-rag-mcp/util/helper"
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
	logs := r.Group("/audit")
	{
		logs.GET("/logs", ac.QueryLogs)
	}
}

// QueryLogs endpoint: read back evidence records with optional time
// range, actor and event-type filters.
func (ac *AuditController) QueryLogs(c *gin.Context) {
	var from, to time.Time
	var err error

	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp", gw_errors.ErrInvalidRequestData)
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp", gw_errors.ErrInvalidRequestData)
			return
		}
	}

	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", gw_errors.ErrInvalidRequestData)
		return
	}

	records, err := ac.auditService.QueryLogs(c.Request.Context(), from, to, c.Query("actor"), c.Query("event_type"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit logs", err)
		return
	}

	if offset > len(records) {
		offset = len(records)
	}
	end := offset + limit
	if limit <= 0 || end > len(records) {
		end = len(records)
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   len(records),
		"records": records[offset:end],
	})
}
