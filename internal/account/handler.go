package account

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/simplebank/simplebank/internal/auth"
)

// Handler exposes account HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

// Get returns the caller's account view.
func (h *Handler) Get(c *fiber.Ctx) error {
	accountID, err := parseAccountID(c)
	if err != nil {
		return err
	}
	identity, _ := c.Locals("identity").(auth.Identity)

	acc, err := h.service.Get(c.UserContext(), identity, accountID)
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusOK).JSON(acc.AsView())
}

// Deposit credits the caller's account.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	return h.mutate(c, h.service.Deposit)
}

// Withdraw debits the caller's account.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	return h.mutate(c, h.service.Withdraw)
}

func (h *Handler) mutate(c *fiber.Ctx, op func(ctx context.Context, identity auth.Identity, accountID, amount int64) (Account, error)) error {
	accountID, err := parseAccountID(c)
	if err != nil {
		return err
	}
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	identity, _ := c.Locals("identity").(auth.Identity)

	acc, err := op(c.UserContext(), identity, accountID, req.Amount)
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusOK).JSON(acc.AsView())
}

func parseAccountID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid account id")
	}
	return id, nil
}

func httpError(err error) error {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		return fiber.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInsufficientFunds):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
