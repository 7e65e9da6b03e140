// controller/document_controller_test.go
package controller_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MichaelGetu-git/Security-Project/controller"
	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	"github.com/MichaelGetu-git/Security-Project/model"
	pdp_model "github.com/MichaelGetu-git/Security-Project/pdp/model"
	"github.com/MichaelGetu-git/Security-Project/service"
	mock_service "github.com/MichaelGetu-git/Security-Project/test/service_mock"
)

func TestDocumentController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDocumentService := mock_service.NewMockIDocumentService(ctrl)
	router := setupRouter(employee, controller.NewDocumentController(mockDocumentService))

	t.Run("ListDocuments_Success", func(t *testing.T) {
		mockDocumentService.EXPECT().
			ListDocuments(gomock.Any(), *employee).
			Return(&model.DocumentListing{
				Documents: []model.AllowedDocument{},
				Denied:    []model.DeniedDocument{},
			}, nil)

		w := perform(router, http.MethodGet, "/api/v1/documents", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"documents":[],"denied":[]}`, w.Body.String())
	})

	t.Run("CreateDocument_Success", func(t *testing.T) {
		mockDocumentService.EXPECT().
			CreateDocument(gomock.Any(), *employee, model.DocumentInput{
				Name:           "Budget",
				Classification: model.SecurityLevelInternal,
				Departments:    []string{"Finance"},
				Visibility:     "specific",
			}).
			Return(&model.Document{ID: 11, Name: "Budget", OwnerID: employee.ID}, nil)

		w := perform(router, http.MethodPost, "/api/v1/documents",
			`{"name":"Budget","classification":"INTERNAL","visibility":"specific","departments":["Finance"]}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("CreateDocument_AboveClearance", func(t *testing.T) {
		mockDocumentService.EXPECT().
			CreateDocument(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, sec_errors.ErrClassificationAboveClearance)

		w := perform(router, http.MethodPost, "/api/v1/documents", `{"name":"Plan","classification":"CONFIDENTIAL"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("CreateDocument_MalformedBody", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/api/v1/documents", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetDocument_Denied", func(t *testing.T) {
		decision := &pdp_model.AccessDecision{
			Reasons:  []string{"Insufficient security clearance"},
			Severity: pdp_model.SeverityWarn,
		}
		mockDocumentService.EXPECT().
			GetDocument(gomock.Any(), *employee, int64(5)).
			Return(nil, fmt.Errorf("get: %w", &service.AccessDeniedError{Decision: decision}))

		w := perform(router, http.MethodGet, "/api/v1/documents/5", "")

		require.Equal(t, http.StatusForbidden, w.Code)
		var body struct {
			Reasons  []string `json:"reasons"`
			Severity string   `json:"severity"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, decision.Reasons, body.Reasons)
		assert.Equal(t, "WARN", body.Severity)
	})

	t.Run("GetDocument_NotFound", func(t *testing.T) {
		mockDocumentService.EXPECT().
			GetDocument(gomock.Any(), gomock.Any(), int64(404)).
			Return(nil, sec_errors.ErrDocumentNotFound)

		w := perform(router, http.MethodGet, "/api/v1/documents/404", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GetDocument_InvalidID", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/v1/documents/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetDecision_Success", func(t *testing.T) {
		mockDocumentService.EXPECT().
			GetDecision(gomock.Any(), *employee, int64(5)).
			Return(&pdp_model.AccessDecision{Allowed: true, Reasons: []string{}, Severity: pdp_model.SeverityInfo}, nil)

		w := perform(router, http.MethodGet, "/api/v1/documents/5/decision", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"allowed":true`)
	})

	t.Run("ShareDocument_NotOwner", func(t *testing.T) {
		mockDocumentService.EXPECT().
			ShareDocument(gomock.Any(), *employee, int64(5), model.ShareInput{UserID: 9, Permission: "read"}).
			Return(nil, sec_errors.ErrNotOwnerOrAdmin)

		w := perform(router, http.MethodPost, "/api/v1/documents/5/share", `{"userId":9,"permission":"read"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("ListShares_Success", func(t *testing.T) {
		mockDocumentService.EXPECT().
			ListShares(gomock.Any(), *employee, int64(5)).
			Return([]model.PermissionGrant{{DocumentID: 5, UserID: 9, PermissionType: "read"}}, nil)

		w := perform(router, http.MethodGet, "/api/v1/documents/5/shares", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("RevokeDocument_PassesPermission", func(t *testing.T) {
		mockDocumentService.EXPECT().
			RevokeDocument(gomock.Any(), *employee, int64(5), int64(9), "edit").
			Return(nil)

		w := perform(router, http.MethodDelete, "/api/v1/documents/5/share/9?permission=edit", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("RevokeDocument_NothingToRevoke", func(t *testing.T) {
		mockDocumentService.EXPECT().
			RevokeDocument(gomock.Any(), *employee, int64(5), int64(9), "").
			Return(sec_errors.ErrPermissionNotFound)

		w := perform(router, http.MethodDelete, "/api/v1/documents/5/share/9", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DatabaseFailure", func(t *testing.T) {
		mockDocumentService.EXPECT().
			ListDocuments(gomock.Any(), gomock.Any()).
			Return(nil, sec_errors.ErrDatabaseOperation)

		w := perform(router, http.MethodGet, "/api/v1/documents", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to list documents"}`, w.Body.String())
	})
}

func TestDocumentController_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := setupRouter(nil, controller.NewDocumentController(mock_service.NewMockIDocumentService(ctrl)))

	w := perform(router, http.MethodGet, "/api/v1/documents", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
