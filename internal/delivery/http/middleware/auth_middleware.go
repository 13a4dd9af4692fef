package middleware

import (
	"net/http"
	"strings"

	"parceltrack/internal/domain/entity"
	"parceltrack/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const principalContextKey = "principal"

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc   service.TokenService
	revocation service.RevocationRegistry
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, revocation service.RevocationRegistry) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, revocation: revocation}
}

// Authenticate validates the bearer token, rejects revoked token IDs and
// places the derived principal on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		token, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Failed to parse token claims"})
		}

		if tokenID, ok := claims["jti"].(string); ok {
			if m.revocation.IsRevoked(c.Request().Context(), tokenID) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Token has been revoked"})
			}
		}

		subjectStr, ok := claims["sub"].(string)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Subject missing from token"})
		}
		subjectID, err := uuid.Parse(subjectStr)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid subject format in token"})
		}

		roleStr, _ := claims["role"].(string)
		role := entity.Role(roleStr)
		if !role.IsValid() {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Role missing from token"})
		}

		c.Set(principalContextKey, entity.Principal{ID: subjectID, Role: role})

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the principal's role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := GetPrincipal(c)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: principal missing"})
			}

			if principal.Role != requiredRole {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: require '" + requiredRole.String() + "' role"})
			}

			return next(c)
		}
	}
}

// GetPrincipal extracts the authenticated principal from echo.Context.
func GetPrincipal(c echo.Context) (entity.Principal, bool) {
	principal, ok := c.Get(principalContextKey).(entity.Principal)

	return principal, ok
}
