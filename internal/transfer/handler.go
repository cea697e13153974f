package transfer

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/simplebank/simplebank/internal/account"
	"github.com/simplebank/simplebank/internal/auth"
)

// Handler exposes the transfer HTTP endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a transfer handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transferRequest struct {
	FromAccountID int64 `json:"fromAccountId"`
	ToUserID      int64 `json:"toUserId"`
	ToAccountID   int64 `json:"toAccountId"`
	Amount        int64 `json:"amount"`
}

// Transfer moves funds from the caller's account to another user's account.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	identity, _ := c.Locals("identity").(auth.Identity)

	err := h.service.Transfer(c.UserContext(), identity, Input{
		FromAccountID: req.FromAccountID,
		ToUserID:      req.ToUserID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnauthenticated):
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		case errors.Is(err, auth.ErrForbidden):
			return fiber.NewError(http.StatusForbidden, err.Error())
		case errors.Is(err, account.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrCurrencyMismatch),
			errors.Is(err, account.ErrInvalidAmount),
			errors.Is(err, account.ErrInsufficientFunds):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.SendStatus(http.StatusOK)
}
