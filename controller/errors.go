package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	"github.com/MichaelGetu-git/Security-Project/model"
	"github.com/MichaelGetu-git/Security-Project/util"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{sec_errors.ErrDocumentNotFound, http.StatusNotFound},
	{sec_errors.ErrPolicyNotFound, http.StatusNotFound},
	{sec_errors.ErrUserNotFound, http.StatusNotFound},
	{sec_errors.ErrRoleNotFound, http.StatusNotFound},
	{sec_errors.ErrAccessRequestNotFound, http.StatusNotFound},
	{sec_errors.ErrPermissionNotFound, http.StatusNotFound},
	{sec_errors.ErrSecurityLevelRequestNotFound, http.StatusNotFound},

	{sec_errors.ErrInvalidDocumentData, http.StatusBadRequest},
	{sec_errors.ErrInvalidPolicyData, http.StatusBadRequest},
	{sec_errors.ErrInvalidPermissionData, http.StatusBadRequest},
	{sec_errors.ErrInvalidAccessRequestData, http.StatusBadRequest},
	{sec_errors.ErrInvalidRoleData, http.StatusBadRequest},
	{sec_errors.ErrInvalidUserData, http.StatusBadRequest},
	{sec_errors.ErrInvalidSecurityLevelRequest, http.StatusBadRequest},
	{sec_errors.ErrInvalidPagination, http.StatusBadRequest},
	{sec_errors.ErrInvalidSearchCriteria, http.StatusBadRequest},

	{sec_errors.ErrAccessRequestPending, http.StatusConflict},
	{sec_errors.ErrAccessRequestResolved, http.StatusConflict},
	{sec_errors.ErrAccessRequestBusy, http.StatusConflict},
	{sec_errors.ErrSecurityLevelRequestPending, http.StatusConflict},
	{sec_errors.ErrSecurityLevelRequestResolved, http.StatusConflict},
	{sec_errors.ErrPolicyConflict, http.StatusConflict},
	{sec_errors.ErrRoleConflict, http.StatusConflict},

	{sec_errors.ErrUnauthorized, http.StatusUnauthorized},
	{sec_errors.ErrForbidden, http.StatusForbidden},
	{sec_errors.ErrNotOwnerOrAdmin, http.StatusForbidden},
	{sec_errors.ErrClassificationAboveClearance, http.StatusForbidden},
	{sec_errors.ErrAccessDenied, http.StatusForbidden},
}

// respondServiceError maps a service error onto an HTTP status. Unknown
// errors become 500 with the fallback message.
func respondServiceError(c *gin.Context, err error, fallback string) {
	for _, m := range statusBySentinel {
		if errors.Is(err, m.err) {
			util.RespondWithError(c, m.status, err.Error(), err)
			return
		}
	}
	util.RespondWithError(c, http.StatusInternalServerError, fallback, err)
}

// currentSubject writes 401 and returns false when the request is unauthenticated.
func currentSubject(c *gin.Context) (*model.User, bool) {
	subject, err := util.GetSubjectFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return nil, false
	}
	return subject, true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := util.ParseIDParam(c, name)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return 0, false
	}
	return id, true
}
