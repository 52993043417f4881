package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/thinknotes-be/types"
	"github.com/tieubaoca/thinknotes-be/utils"
)

const UserContextKey = "user"

// AuthMiddleware verifies the bearer token and stores the claims in the
// request context. Token issuance lives in utils/jwt.go.
func AuthMiddleware(c *gin.Context) {
	claims, ok := parseBearerClaims(c)
	if !ok {
		return
	}
	c.Set(UserContextKey, claims)
	c.Next()
}

// AdminAuthMiddleware additionally requires the admin role.
func AdminAuthMiddleware(c *gin.Context) {
	claims, ok := parseBearerClaims(c)
	if !ok {
		return
	}
	if claims.Role != types.USER_ROLE_ADMIN {
		c.AbortWithStatusJSON(http.StatusForbidden, types.DataResponse{
			Status:  false,
			Message: "Admin role required",
		})
		return
	}
	c.Set(UserContextKey, claims)
	c.Next()
}

func parseBearerClaims(c *gin.Context) (*utils.UserClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Authorization header is required",
		})
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Authorization header format must be Bearer {token}",
		})
		return nil, false
	}

	claims, err := utils.ParseUserToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Invalid or expired token",
		})
		return nil, false
	}
	return claims, true
}
