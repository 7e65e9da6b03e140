// controller/access_request_controller.go
package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	"github.com/MichaelGetu-git/Security-Project/middleware"
	"github.com/MichaelGetu-git/Security-Project/model"
	"github.com/MichaelGetu-git/Security-Project/pdp/engine"
	"github.com/MichaelGetu-git/Security-Project/service"
	"github.com/MichaelGetu-git/Security-Project/util"
)

type AccessRequestController struct {
	accessRequestService service.IAccessRequestService
}

func NewAccessRequestController(accessRequestService service.IAccessRequestService) *AccessRequestController {
	return &AccessRequestController{
		accessRequestService: accessRequestService,
	}
}

type requestAccessBody struct {
	Reason string `json:"reason"`
}

// RegisterRoutes registers the API routes
func (ac *AccessRequestController) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/documents/:id/request-access", ac.RequestAccess)

	requests := r.Group("/access-requests")
	{
		requests.GET("/mine", ac.ListMyAccessRequests)
		requests.GET("", middleware.RequirePermission(engine.PermissionAccessRequestsManage), ac.ListAccessRequests)
		requests.POST("/:id/resolve", middleware.RequirePermission(engine.PermissionAccessRequestsManage), ac.ResolveAccessRequest)
	}
}

// RequestAccess endpoint. The body is optional.
func (ac *AccessRequestController) RequestAccess(c *gin.Context) {
	subject, ok := currentSubject(c)
	if !ok {
		return
	}
	documentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body requestAccessBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid access request data", sec_errors.ErrInvalidAccessRequestData)
			return
		}
	}

	req, err := ac.accessRequestService.RequestAccess(c.Request.Context(), *subject, documentID, strings.TrimSpace(body.Reason))
	if err != nil {
		respondServiceError(c, err, "Failed to request access")
		return
	}

	c.JSON(http.StatusCreated, req)
}

// ListMyAccessRequests endpoint
func (ac *AccessRequestController) ListMyAccessRequests(c *gin.Context) {
	subject, ok := currentSubject(c)
	if !ok {
		return
	}

	reqs, err := ac.accessRequestService.ListMyAccessRequests(c.Request.Context(), subject.ID)
	if err != nil {
		respondServiceError(c, err, "Failed to list access requests")
		return
	}

	c.JSON(http.StatusOK, reqs)
}

// ListAccessRequests endpoint. ?status= filters, empty lists all.
func (ac *AccessRequestController) ListAccessRequests(c *gin.Context) {
	status := model.AccessRequestStatus(strings.ToUpper(c.Query("status")))

	reqs, err := ac.accessRequestService.ListAccessRequests(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err, "Failed to list access requests")
		return
	}

	c.JSON(http.StatusOK, reqs)
}

// ResolveAccessRequest endpoint
func (ac *AccessRequestController) ResolveAccessRequest(c *gin.Context) {
	subject, ok := currentSubject(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input model.ResolveAccessRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid resolution data", sec_errors.ErrInvalidAccessRequestData)
		return
	}
	input.Status = model.AccessRequestStatus(strings.ToUpper(string(input.Status)))

	resolved, err := ac.accessRequestService.ResolveAccessRequest(c.Request.Context(), *subject, requestID, input)
	if err != nil {
		respondServiceError(c, err, "Failed to resolve access request")
		return
	}

	c.JSON(http.StatusOK, resolved)
}
