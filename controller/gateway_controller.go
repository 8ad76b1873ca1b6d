// controller/gateway_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	gw_errors "github.com/Jusharra/identity-aware-healthcare-rag-mcp/errors"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/service"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/util"
)

type GatewayController struct {
	gatewayService service.IGatewayService
}

func NewGatewayController(gatewayService service.IGatewayService) *GatewayController {
	return &GatewayController{
		gatewayService: gatewayService,
	}
}

// RegisterRoutes registers the API routes
func (gc *GatewayController) RegisterRoutes(r *gin.RouterGroup) {
	gateway := r.Group("/gateway")
	{
		gateway.POST("/rag", gc.RagDecision)
		gateway.POST("/mcp", gc.McpDecision)
		gateway.GET("/health", gc.Health)
	}
}

// RagDecision endpoint: authorize (and serve) a retrieval request.
// Both allow and deny come back as 200 with machine-readable reasons;
// only malformed requests are 4xx.
func (gc *GatewayController) RagDecision(c *gin.Context) {
	var req model.RagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid RAG request data", gw_errors.ErrInvalidRequestData)
		return
	}

	resp := gc.gatewayService.AuthorizeRag(c.Request.Context(), req, util.GetRequestIDFromContext(c))
	c.JSON(http.StatusOK, resp)
}

// McpDecision endpoint: authorize and execute a tool invocation.
func (gc *GatewayController) McpDecision(c *gin.Context) {
	var req model.McpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid MCP request data", gw_errors.ErrInvalidRequestData)
		return
	}

	resp := gc.gatewayService.ExecuteTool(c.Request.Context(), req, util.GetRequestIDFromContext(c))
	c.JSON(http.StatusOK, resp)
}

// Health endpoint
func (gc *GatewayController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
