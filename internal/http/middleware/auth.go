package middleware

import (
	"net/http"
	"strings"

	"casebackend/internal/auth"
	"casebackend/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey     = "userID"
	userMobileKey = "userMobile"
)

// AuthStrategy is how a request must authenticate.
type AuthStrategy int

const (
	// AuthOptional accepts anonymous requests; a presented token must still be valid.
	AuthOptional AuthStrategy = iota
	// AuthBearerRequired rejects requests without a valid user token.
	AuthBearerRequired
)

// StrategyFor maps an HTTP method to its auth strategy. Writes need a user
// token; reads are open.
func StrategyFor(method string) AuthStrategy {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return AuthBearerRequired
	default:
		return AuthOptional
	}
}

// TokenVerifier checks a raw bearer token.
type TokenVerifier interface {
	Verify(raw string) (auth.Claims, error)
}

// Authenticate resolves the strategy per request from its method and never
// mutates shared state.
func Authenticate(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		strategy := StrategyFor(c.Request.Method)
		raw := bearerToken(c.GetHeader("Authorization"))

		if raw == "" {
			if strategy == AuthBearerRequired {
				abortUnauthorized(c, "authentication credentials were not provided")
				return
			}
			c.Next()
			return
		}

		claims, err := v.Verify(raw)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Set(userMobileKey, claims.Mobile)
		c.Next()
	}
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(c *gin.Context) (domain.RequestContext, bool) {
	mobile := c.GetString(userMobileKey)
	if mobile == "" {
		return domain.RequestContext{}, false
	}
	return domain.RequestContext{UserID: domain.ID(c.GetInt64(userIDKey)), Mobile: mobile}, true
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"request_id": GetRequestID(c),
	})
}
