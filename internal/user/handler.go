package user

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/simplebank/simplebank/internal/auth"
)

// Handler exposes user HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a user HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Create registers a new user with one default account per currency.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	identity, _ := c.Locals("identity").(auth.Identity)

	created, err := h.service.Create(c.UserContext(), identity, req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusOK).JSON(created.AsView())
}

// List returns every registered user.
func (h *Handler) List(c *fiber.Ctx) error {
	identity, _ := c.Locals("identity").(auth.Identity)

	users, err := h.service.List(c.UserContext(), identity)
	if err != nil {
		return httpError(err)
	}
	views := make([]View, 0, len(users))
	for _, u := range users {
		views = append(views, u.AsView())
	}
	return c.Status(http.StatusOK).JSON(views)
}

// Profile returns the caller's own user record.
func (h *Handler) Profile(c *fiber.Ctx) error {
	identity, _ := c.Locals("identity").(auth.Identity)

	u, err := h.service.Profile(c.UserContext(), identity)
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusOK).JSON(u.AsView())
}

func httpError(err error) error {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		return fiber.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrUsernameTaken):
		return fiber.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
