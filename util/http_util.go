// util/http_util.go
package util

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
)

// Context keys set by the auth middleware.
const (
	SubjectKey   = "subject"
	RequestIDKey = "requestID"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("requestID", c.GetString(RequestIDKey)))
	c.JSON(code, gin.H{"error": message})
}

// GetSubjectFromContext returns the authenticated user placed on the context
// by the auth middleware.
func GetSubjectFromContext(c *gin.Context) (*model.User, error) {
	v, exists := c.Get(SubjectKey)
	if !exists {
		return nil, sec_errors.ErrUnauthorized
	}
	user, ok := v.(*model.User)
	if !ok || user == nil {
		return nil, sec_errors.ErrUnauthorized
	}
	return user, nil
}

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, c.Param(name))
	}
	return id, nil
}
