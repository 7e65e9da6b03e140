// controller/router_test.go
package controller_test

import (
	"bytes"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
	"github.com/MichaelGetu-git/Security-Project/util"
)

type routeRegistrar interface {
	RegisterRoutes(r *gin.RouterGroup)
}

var (
	employee = &model.User{
		ID:            7,
		Username:      "ana",
		SecurityLevel: model.SecurityLevelInternal,
		Department:    "Finance",
		Roles:         []model.Role{{Name: "Employee", Permissions: []string{"documents:create"}}},
	}
	admin = &model.User{
		ID:            1,
		Username:      "root",
		SecurityLevel: model.SecurityLevelConfidential,
		Roles:         []model.Role{{Name: "Admin", Permissions: []string{"*"}}},
	}
)

// setupRouter mounts the controller under /api/v1 with subject as the caller.
// A nil subject leaves the request unauthenticated.
func setupRouter(subject *model.User, controllers ...routeRegistrar) *gin.Engine {
	logger.InitNop()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if subject != nil {
			c.Set(util.SubjectKey, subject)
		}
		c.Next()
	})
	api := r.Group("/api/v1")
	for _, c := range controllers {
		c.RegisterRoutes(api)
	}
	return r
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
