package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clickshop/shop-system/internal/core/domain"
)

// RBAC enforces role-based access control. A session whose role claim is
// empty (no role document resolved at login) is rejected exactly like an
// anonymous request.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[domain.Role(role)]; !ok || role == "" {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
