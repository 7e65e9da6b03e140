// controller/document_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	"github.com/MichaelGetu-git/Security-Project/model"
	"github.com/MichaelGetu-git/Security-Project/service"
	"github.com/MichaelGetu-git/Security-Project/util"
)

type DocumentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) *DocumentController {
	return &DocumentController{
		documentService: documentService,
	}
}

// RegisterRoutes registers the API routes
func (dc *DocumentController) RegisterRoutes(r *gin.RouterGroup) {
	documents := r.Group("/documents")
	{
		documents.GET("", dc.ListDocuments)
		documents.POST("", dc.CreateDocument)
		documents.GET("/:id", dc.GetDocument)
		documents.GET("/:id/decision", dc.GetDecision)
		documents.POST("/:id/share", dc.ShareDocument)
		documents.GET("/:id/shares", dc.ListShares)
		documents.DELETE("/:id/share/:userId", dc.RevokeDocument)
	}
}

// ListDocuments endpoint
func (dc *DocumentController) ListDocuments(c *gin.Context) {
	subject, ok := currentSubject(c)
	if !ok {
		return
	}

	listing, err := dc.documentService.ListDocuments(c.Request.Context(), *subject)
	if err != nil {
		respondServiceError(c, err, "Failed to list documents")
		return
	}

	c.JSON(http.StatusOK, listing)
}

// CreateDocument endpoint
func (dc *DocumentController) CreateDocument(c *gin.Context) {
	subject, ok := currentSubject(c)
	if !ok {
		return
	}
	var input model.DocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid document data", sec_errors.ErrInvalidDocumentData)
		return
	}

	doc, err := dc.documentService.CreateDocument(c.Request.Context(), *subject, input)
	if err != nil {
		respondServiceError(c, err, "Failed to create document")
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// GetDocument endpoint. A denial answers 403 with the reasons.
func (dc *DocumentController) GetDocument(c *gin.Context) {
	subject, ok := currentSubject(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	doc, err := dc.documentService.GetDocument(c.Request.Context(), *subject, id)
	if err != nil {
		var denied *service.AccessDeniedError
		if errors.As(err, &denied) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "Access denied",
				"reasons":  denied.Decision.Reasons,
				"severity": denied.Decision.Severity,
			})
			return
		}
		respondServiceError(c, err, "Failed to retrieve document")
		return
	}

	c.JSON(http.StatusOK, doc)
}

// GetDecision endpoint
func (dc *DocumentController) GetDecision(c *gin.Context) {
	subject, ok := currentSubject(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	decision, err := dc.documentService.GetDecision(c.Request.Context(), *subject, id)
	if err != nil {
		respondServiceError(c, err, "Failed to decide access")
		return
	}

	c.JSON(http.StatusOK, decision)
}

// ShareDocument endpoint
func (dc *DocumentController) ShareDocument(c *gin.Context) {
	subject, ok := currentSubject(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input model.ShareInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid share data", sec_errors.ErrInvalidPermissionData)
		return
	}

	grant, err := dc.documentService.ShareDocument(c.Request.Context(), *subject, id, input)
	if err != nil {
		respondServiceError(c, err, "Failed to share document")
		return
	}

	c.JSON(http.StatusCreated, grant)
}

// ListShares endpoint
func (dc *DocumentController) ListShares(c *gin.Context) {
	subject, ok := currentSubject(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	grants, err := dc.documentService.ListShares(c.Request.Context(), *subject, id)
	if err != nil {
		respondServiceError(c, err, "Failed to list shares")
		return
	}

	c.JSON(http.StatusOK, grants)
}

// RevokeDocument endpoint. ?permission= limits the revocation to one type.
func (dc *DocumentController) RevokeDocument(c *gin.Context) {
	subject, ok := currentSubject(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := dc.documentService.RevokeDocument(c.Request.Context(), *subject, id, userID, c.Query("permission")); err != nil {
		respondServiceError(c, err, "Failed to revoke access")
		return
	}

	c.Status(http.StatusNoContent)
}
