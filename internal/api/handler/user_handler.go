package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freeedu/auth-service/internal/api/middleware"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

type profileResponse struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name,omitempty"`
	LastName    string   `json:"last_name,omitempty"`
	Role        string   `json:"role"`
	Authorities []string `json:"authorities"`
}

// Me returns the profile of the authenticated user.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		// RequireAuth guards the route; this is a wiring error.
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	u := p.User
	return c.JSON(http.StatusOK, profileResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        string(u.Role),
		Authorities: p.Authorities,
	})
}
