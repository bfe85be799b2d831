package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courtside/hoa-court-booking/internal/config"
	"github.com/courtside/hoa-court-booking/internal/email"
	"github.com/courtside/hoa-court-booking/internal/repository"
	"github.com/courtside/hoa-court-booking/internal/utils"
)

// PasswordResetHandler implements the forgot-password flow: a request
// endpoint that emails a single-use link, and a confirm endpoint that
// spends the token and replaces the password.
type PasswordResetHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Mailer email.Mailer
}

func NewPasswordResetHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, m email.Mailer) *PasswordResetHandler {
	return &PasswordResetHandler{Cfg: cfg, Users: u, Tokens: t, Mailer: m}
}

type resetRequestReq struct {
	Email string `json:"email" validate:"required,email"`
}
type resetConfirmReq struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Request issues a reset token and mails the link.  The response is
// the same whether or not the email exists, so the endpoint cannot be
// used to probe for accounts.
func (h *PasswordResetHandler) Request(c echo.Context) error {
	var req resetRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	accepted := echo.Map{"message": "if that email is registered, a reset link has been sent"}

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return c.JSON(http.StatusOK, accepted)
	}

	token, err := utils.NewResetToken(h.Cfg.ResetTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	if err := h.Tokens.StoreReset(ctx, u.ID, utils.HashTokenRaw(token.Raw), token.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save token failed"})
	}
	_ = h.Tokens.PurgeExpiredResets(ctx)

	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(h.Cfg.BaseURL, "/"), token.Raw)
	body := fmt.Sprintf(
		"A password reset was requested for your account.\n\n"+
			"Open the link below within %d hours to choose a new password:\n\n%s\n\n"+
			"If you did not request this, you can ignore this message.",
		h.Cfg.ResetTTLHours, link)
	if err := h.Mailer.Send(u.Email, "Reset your password", body); err != nil {
		c.Logger().Errorf("password reset mail failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send mail failed"})
	}

	return c.JSON(http.StatusOK, accepted)
}

// Confirm spends the reset token, replaces the password and revokes
// every refresh token so existing sessions cannot outlive the reset.
func (h *PasswordResetHandler) Confirm(c echo.Context) error {
	var req resetConfirmReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ConsumeReset(ctx, utils.HashTokenRaw(strings.TrimSpace(req.Token)))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}
	if err := h.Users.UpdatePassword(ctx, userID, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}
	_ = h.Tokens.RevokeAllForUser(ctx, userID)

	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}
