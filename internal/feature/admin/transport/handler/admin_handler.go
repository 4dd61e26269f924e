// Package handler provides HTTP handlers and middleware for the authorization gate.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pokecard_backend/internal/feature/admin/transport/http/dto"
	"pokecard_backend/internal/feature/auth/domain/entity"
	authdto "pokecard_backend/internal/feature/auth/transport/http/dto"
	"pokecard_backend/internal/platform/http/httperr"
	jwtmw "pokecard_backend/internal/platform/jwt"
)

const (
	msgPromoted       = "user has been promoted to admin"
	msgSelfPromoted   = "you are now an admin"
	msgAlreadyAdmin   = "you are already an admin"
	paramTargetUserID = "userId"
)

// AdminUsecase defines the authorization gate operations.
type AdminUsecase interface {
	CheckAdmin(ctx context.Context, userID string) (bool, error)
	RequireAdmin(ctx context.Context, userID string) error
	Promote(ctx context.Context, actingID, targetID string) (*entity.User, error)
	SelfPromote(ctx context.Context, userID string) (*entity.User, bool, error)
}

// AdminHandler handles admin checks and promotion.
type AdminHandler struct {
	admin AdminUsecase
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin AdminUsecase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// RequireAdmin is a middleware for routes that need an admin caller.
// It must run after jwtmw.AuthRequired.
func (h *AdminHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := jwtmw.UserID(c)
		if !ok {
			httperr.Write(c, jwtmw.ErrMissingToken)
			return
		}
		if err := h.admin.RequireAdmin(c.Request.Context(), userID); err != nil {
			slog.Warn("admin check failed", "error", err, "user_id", userID, "path", c.FullPath(), "remote_addr", c.ClientIP())
			httperr.Write(c, err)
			return
		}
		c.Next()
	}
}

// CheckAdmin handles GET /auth/check-admin.
func (h *AdminHandler) CheckAdmin(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		httperr.Write(c, jwtmw.ErrMissingToken)
		return
	}
	isAdmin, err := h.admin.CheckAdmin(c.Request.Context(), userID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckAdminRes{IsAdmin: isAdmin})
}

// Promote handles POST /auth/promote/:userId.
func (h *AdminHandler) Promote(c *gin.Context) {
	actingID, ok := jwtmw.UserID(c)
	if !ok {
		httperr.Write(c, jwtmw.ErrMissingToken)
		return
	}
	targetID := c.Param(paramTargetUserID)

	user, err := h.admin.Promote(c.Request.Context(), actingID, targetID)
	if err != nil {
		slog.Warn("promotion failed", "error", err, "acting_user_id", actingID, "target_user_id", targetID, "remote_addr", c.ClientIP())
		httperr.Write(c, err)
		return
	}

	slog.Info("user promoted", "acting_user_id", actingID, "target_user_id", targetID)
	c.JSON(http.StatusOK, dto.PromoteRes{Message: msgPromoted, User: authdto.NewUserRes(user)})
}

// SelfPromote handles POST /auth/self-promote.
// The route is only mounted when self-promotion is enabled.
func (h *AdminHandler) SelfPromote(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		httperr.Write(c, jwtmw.ErrMissingToken)
		return
	}

	user, already, err := h.admin.SelfPromote(c.Request.Context(), userID)
	if err != nil {
		httperr.Write(c, err)
		return
	}

	msg := msgSelfPromoted
	if already {
		msg = msgAlreadyAdmin
	} else {
		slog.Warn("user self-promoted to admin", "user_id", userID, "remote_addr", c.ClientIP())
	}
	c.JSON(http.StatusOK, dto.PromoteRes{Message: msg, User: authdto.NewUserRes(user)})
}
