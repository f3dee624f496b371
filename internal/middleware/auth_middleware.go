package middleware

import (
	"net/http"
	"strings"

	"poker_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const contextRole = "clubRole"

// AuthMiddleware creates a Gin middleware for JWT authentication.
// On success the club id is available under utils.ContextClubID.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "Invalid authorization header format. Use Bearer <token>")
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			utils.LogDebug("AuthMiddleware: token rejected", map[string]interface{}{"error": err.Error()})
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		// Set club information in the context for downstream handlers
		c.Set(utils.ContextClubID, claims.ClubID)
		c.Set(contextRole, claims.Role)

		c.Next()
	}
}

// RoleAuthMiddleware checks that the token's role (from AuthMiddleware) is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(contextRole)
		if role == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Role not found in token claims", ""))
			return
		}

		for _, r := range allowedRoles {
			if strings.EqualFold(role, r) {
				c.Next()
				return
			}
		}

		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"You do not have permission to access this resource", "Required roles: "+strings.Join(allowedRoles, ", ")))
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, message, ""))
}
