package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
	"github.com/MichaelGetu-git/Security-Project/pdp/engine"
	"github.com/MichaelGetu-git/Security-Project/util"
)

// Claims carried by bearer tokens.
type Claims struct {
	UserID        int64    `json:"userId"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	SecurityLevel string   `json:"security_level"`
	Roles         []string `json:"roles"`
	jwt.RegisteredClaims
}

// Identity is the token's view of the user, before the graph is consulted.
func (c *Claims) Identity() model.User {
	roles := make([]model.Role, 0, len(c.Roles))
	for _, r := range c.Roles {
		roles = append(roles, model.Role{Name: r})
	}
	return model.User{
		ID:            c.UserID,
		Username:      c.Username,
		Email:         c.Email,
		SecurityLevel: model.SecurityLevel(c.SecurityLevel),
		Roles:         roles,
	}
}

// SubjectResolver turns a token identity into the full decision subject.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, identity model.User) (*model.User, error)
}

// SignToken issues an HS256 token. The server only verifies tokens; this
// exists for tooling and tests.
func SignToken(claims Claims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(now)
	}
	if claims.ExpiresAt == nil && ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(tokenString, secret, issuer string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("token has no userId")
	}
	if !model.SecurityLevel(claims.SecurityLevel).Valid() {
		return nil, fmt.Errorf("token has unknown security level %q", claims.SecurityLevel)
	}
	return claims, nil
}

// AuthMiddleware authenticates the bearer token and stores the resolved
// subject under util.SubjectKey.
func AuthMiddleware(secret, issuer string, resolver SubjectResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			logger.Warn("No bearer token provided", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret, issuer)
		if err != nil {
			logger.Warn("Rejected bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		subject, err := resolver.ResolveSubject(c.Request.Context(), claims.Identity())
		if err != nil {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to load user", err)
			c.Abort()
			return
		}

		c.Set(util.SubjectKey, subject)
		logger.Debug("Authenticated request",
			zap.Int64("userID", subject.ID),
			zap.Strings("roles", subject.RoleNames()))
		c.Next()
	}
}

// RequirePermission aborts with 403 unless the subject's roles grant permission.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := util.GetSubjectFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !engine.HasPermission(subject.Roles, permission) {
			logger.Warn("Permission denied",
				zap.Int64("userID", subject.ID),
				zap.String("permission", permission),
				zap.Strings("roles", subject.RoleNames()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": sec_errors.ErrForbidden.Error()})
			return
		}
		c.Next()
	}
}
