// controller/policy_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	"github.com/MichaelGetu-git/Security-Project/middleware"
	"github.com/MichaelGetu-git/Security-Project/model"
	"github.com/MichaelGetu-git/Security-Project/pdp/engine"
	"github.com/MichaelGetu-git/Security-Project/service"
	"github.com/MichaelGetu-git/Security-Project/util"
	helper_util "github.com/MichaelGetu-git/Security-Project/util/helper"
)

type PolicyController struct {
	policyService service.IPolicyService
}

func NewPolicyController(policyService service.IPolicyService) *PolicyController {
	return &PolicyController{
		policyService: policyService,
	}
}

// RegisterRoutes registers the API routes
func (pc *PolicyController) RegisterRoutes(r *gin.RouterGroup) {
	read := middleware.RequirePermission(engine.PermissionRulesRead)
	manage := middleware.RequirePermission(engine.PermissionRulesManage)

	rules := r.Group("/rules")
	{
		rules.POST("", manage, pc.CreatePolicy)
		rules.PUT("/:id", manage, pc.UpdatePolicy)
		rules.DELETE("/:id", manage, pc.DeletePolicy)
		rules.GET("/:id", read, pc.GetPolicy)
		rules.GET("", read, pc.ListPolicies)
		rules.GET("/active", read, pc.ListActivePolicies)
	}
}

// CreatePolicy endpoint
func (pc *PolicyController) CreatePolicy(c *gin.Context) {
	var policy model.Policy
	if err := c.ShouldBindJSON(&policy); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid policy data", sec_errors.ErrInvalidPolicyData)
		return
	}
	actor, ok := currentSubject(c)
	if !ok {
		return
	}

	createdPolicy, err := pc.policyService.CreatePolicy(c.Request.Context(), policy, *actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create policy")
		return
	}

	c.JSON(http.StatusCreated, createdPolicy)
}

// UpdatePolicy endpoint
func (pc *PolicyController) UpdatePolicy(c *gin.Context) {
	var policy model.Policy
	if err := c.ShouldBindJSON(&policy); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid policy data", sec_errors.ErrInvalidPolicyData)
		return
	}
	policy.ID = c.Param("id")
	actor, ok := currentSubject(c)
	if !ok {
		return
	}

	updatedPolicy, err := pc.policyService.UpdatePolicy(c.Request.Context(), policy, *actor)
	if err != nil {
		respondServiceError(c, err, "Failed to update policy")
		return
	}

	c.JSON(http.StatusOK, updatedPolicy)
}

// DeletePolicy endpoint
func (pc *PolicyController) DeletePolicy(c *gin.Context) {
	actor, ok := currentSubject(c)
	if !ok {
		return
	}

	if err := pc.policyService.DeletePolicy(c.Request.Context(), c.Param("id"), *actor); err != nil {
		respondServiceError(c, err, "Failed to delete policy")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPolicy endpoint
func (pc *PolicyController) GetPolicy(c *gin.Context) {
	policy, err := pc.policyService.GetPolicy(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve policy")
		return
	}

	c.JSON(http.StatusOK, policy)
}

// ListPolicies endpoint
func (pc *PolicyController) ListPolicies(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	policies, err := pc.policyService.ListPolicies(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list policies")
		return
	}

	c.JSON(http.StatusOK, policies)
}

// ListActivePolicies endpoint
func (pc *PolicyController) ListActivePolicies(c *gin.Context) {
	policies, err := pc.policyService.ListActivePolicies(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list active policies")
		return
	}

	c.JSON(http.StatusOK, policies)
}
