package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/apperror"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/response"
)

// QueryParam is the query parameter carrying the access token.
const QueryParam = "auth"

var (
	errMissingToken  = apperror.New(http.StatusUnauthorized, "missing access token")
	errInvalidHeader = apperror.New(http.StatusUnauthorized, "invalid Authorization header format")
	errInvalidToken  = apperror.New(http.StatusUnauthorized, "invalid or expired token")
)

// AuthRequired is a Gin middleware that validates the JWT passed as the
// ?auth= query parameter, falling back to Authorization: Bearer <token>.
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := extractToken(c)
		if err != nil {
			response.Abort(c, err)
			return
		}

		claims, err := jwtManager.ParseAndValidate(tokenStr)
		if err != nil {
			response.Abort(c, errInvalidToken)
			return
		}

		setUser(c, claims)

		c.Next()
	}
}

func extractToken(c *gin.Context) (string, error) {
	if tok := strings.TrimSpace(c.Query(QueryParam)); tok != "" {
		return tok, nil
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", errInvalidHeader
	}
	return strings.TrimSpace(parts[1]), nil
}
