// controller/user_controller.go
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

type UserController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

type roleAssignment struct {
	Role string `json:"role" binding:"required"`
}

type departmentAssignment struct {
	Department string `json:"department"`
}

type securityLevelAssignment struct {
	Level string `json:"level" binding:"required"`
}

// RegisterRoutes registers the API routes
func (uc *UserController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/me", uc.GetMe)

	manage := middleware.RequirePermission(engine.PermissionUsersManage)
	users := r.Group("/users", manage)
	{
		users.GET("/:id", uc.GetUser)
		users.POST("/:id/roles", uc.AssignRole)
		users.DELETE("/:id/roles/:role", uc.RemoveRole)
		users.PUT("/:id/department", uc.SetDepartment)
		users.PUT("/:id/security-level", uc.SetSecurityLevel)
	}

	levels := r.Group("/security-level-requests")
	{
		levels.POST("", uc.RequestSecurityLevel)
		levels.GET("/mine", uc.ListMySecurityLevelRequests)
		levels.GET("", manage, uc.ListSecurityLevelRequests)
		levels.POST("/:id/resolve", manage, uc.ResolveSecurityLevelRequest)
	}

	roles := r.Group("/roles", manage)
	{
		roles.GET("", uc.ListRoles)
		roles.POST("", uc.CreateRole)
	}
}

// GetMe returns the resolved subject of the caller.
func (uc *UserController) GetMe(c *gin.Context) {
	subject, ok := currentSubject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, subject)
}

// GetUser endpoint
func (uc *UserController) GetUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := uc.userService.GetSubject(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// AssignRole endpoint
func (uc *UserController) AssignRole(c *gin.Context) {
	actor, ok := currentSubject(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body roleAssignment
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid role data", sec_errors.ErrInvalidRoleData)
		return
	}

	if err := uc.userService.AssignRole(c.Request.Context(), *actor, userID, body.Role); err != nil {
		respondServiceError(c, err, "Failed to assign role")
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveRole endpoint
func (uc *UserController) RemoveRole(c *gin.Context) {
	actor, ok := currentSubject(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := uc.userService.RemoveRole(c.Request.Context(), *actor, userID, c.Param("role")); err != nil {
		respondServiceError(c, err, "Failed to remove role")
		return
	}

	c.Status(http.StatusNoContent)
}

// SetDepartment endpoint. An empty department clears it.
func (uc *UserController) SetDepartment(c *gin.Context) {
	actor, ok := currentSubject(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body departmentAssignment
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid department data", sec_errors.ErrInvalidUserData)
		return
	}

	if err := uc.userService.SetDepartment(c.Request.Context(), *actor, userID, body.Department); err != nil {
		respondServiceError(c, err, "Failed to set department")
		return
	}

	c.Status(http.StatusNoContent)
}

// SetSecurityLevel endpoint
func (uc *UserController) SetSecurityLevel(c *gin.Context) {
	actor, ok := currentSubject(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body securityLevelAssignment
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid security level data", sec_errors.ErrInvalidUserData)
		return
	}

	if err := uc.userService.SetSecurityLevel(c.Request.Context(), *actor, userID, body.Level); err != nil {
		respondServiceError(c, err, "Failed to set security level")
		return
	}

	c.Status(http.StatusNoContent)
}

// RequestSecurityLevel files a clearance upgrade for the caller.
func (uc *UserController) RequestSecurityLevel(c *gin.Context) {
	subject, ok := currentSubject(c)
	if !ok {
		return
	}
	var input model.SecurityLevelRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid security level request", sec_errors.ErrInvalidSecurityLevelRequest)
		return
	}

	req, err := uc.userService.RequestSecurityLevel(c.Request.Context(), *subject, input)
	if err != nil {
		respondServiceError(c, err, "Failed to request security level")
		return
	}

	c.JSON(http.StatusCreated, req)
}

func (uc *UserController) ListMySecurityLevelRequests(c *gin.Context) {
	subject, ok := currentSubject(c)
	if !ok {
		return
	}

	reqs, err := uc.userService.ListMySecurityLevelRequests(c.Request.Context(), subject.ID)
	if err != nil {
		respondServiceError(c, err, "Failed to list security level requests")
		return
	}

	c.JSON(http.StatusOK, reqs)
}

// ListSecurityLevelRequests endpoint. ?status= filters, empty lists all.
func (uc *UserController) ListSecurityLevelRequests(c *gin.Context) {
	status := model.AccessRequestStatus(strings.ToUpper(c.Query("status")))

	reqs, err := uc.userService.ListSecurityLevelRequests(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err, "Failed to list security level requests")
		return
	}

	c.JSON(http.StatusOK, reqs)
}

// ResolveSecurityLevelRequest endpoint
func (uc *UserController) ResolveSecurityLevelRequest(c *gin.Context) {
	actor, ok := currentSubject(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input model.ResolveSecurityLevelRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid resolution data", sec_errors.ErrInvalidSecurityLevelRequest)
		return
	}
	input.Status = model.AccessRequestStatus(strings.ToUpper(string(input.Status)))

	resolved, err := uc.userService.ResolveSecurityLevelRequest(c.Request.Context(), *actor, requestID, input)
	if err != nil {
		respondServiceError(c, err, "Failed to resolve security level request")
		return
	}

	c.JSON(http.StatusOK, resolved)
}

// ListRoles endpoint
func (uc *UserController) ListRoles(c *gin.Context) {
	roles, err := uc.userService.ListRoles(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list roles")
		return
	}
	c.JSON(http.StatusOK, roles)
}

// CreateRole endpoint
func (uc *UserController) CreateRole(c *gin.Context) {
	actor, ok := currentSubject(c)
	if !ok {
		return
	}
	var role model.Role
	if err := c.ShouldBindJSON(&role); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid role data", sec_errors.ErrInvalidRoleData)
		return
	}

	created, err := uc.userService.CreateRole(c.Request.Context(), *actor, role)
	if err != nil {
		respondServiceError(c, err, "Failed to create role")
		return
	}

	c.JSON(http.StatusCreated, created)
}
