package middleware

import (
	"edusetu/database"
	"edusetu/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole loads the authenticated user and checks their role against the
// allowed set. The loaded user is stored in locals as "currentUser" so
// handlers do not hit the users table again. With no roles given it only
// loads the user.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		if len(roles) > 0 {
			allowed := false
			for _, role := range roles {
				if user.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
			}
		}

		c.Locals("currentUser", &user)
		return c.Next()
	}
}

// CurrentUser returns the user loaded by RequireRole.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("currentUser").(*models.User)
	return user, ok
}
