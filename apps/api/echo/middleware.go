package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/steliasaustin/outreach/core/user"
)

// roleMiddleware only lets through users holding one of the given roles.
func roleMiddleware(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			for _, role := range roles {
				if claims.Role == string(role) {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

func adminMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(user.RoleAdmin)
}

// staffMiddleware covers endpoints open to both admins and organizers.
func staffMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(user.RoleAdmin, user.RoleOrganizer)
}

// isStaff reports whether the user holds a staff role, for handlers applying
// per-record ownership rules instead of a blanket role guard.
func isStaff(usr user.User) bool {
	return usr.Role == user.RoleAdmin || usr.Role == user.RoleOrganizer
}
