// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pokecard_backend/internal/feature/auth/transport/http/dto"
	"pokecard_backend/internal/feature/auth/usecase"
	"pokecard_backend/internal/platform/http/httperr"
	jwtmw "pokecard_backend/internal/platform/jwt"
)

// AuthUsecase defines the use cases for authentication.
// Following Go convention, the interface is defined by the consumer (handler).
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.Result, error)
	Login(ctx context.Context, username, password string) (*usecase.Result, error)
}

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /auth/register.
// An Authorization header is optional and only matters when isAdmin is requested.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		httperr.BadRequest(c, "username and password are required")
		return
	}

	token, _ := jwtmw.BearerToken(c.GetHeader("Authorization"))
	res, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Username:     req.Username,
		Password:     req.Password,
		RequestAdmin: req.IsAdmin,
		BearerToken:  token,
	})
	if err != nil {
		slog.Warn("register failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		httperr.Write(c, err)
		return
	}

	if req.IsAdmin && !res.User.IsAdmin {
		slog.Warn("admin grant declined at registration", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	}
	slog.Info("user registered", "user_id", res.User.ID, "is_admin", res.User.IsAdmin, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{Token: res.Token, User: dto.NewUserRes(res.User)})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		httperr.BadRequest(c, "username and password are required")
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		httperr.Write(c, err)
		return
	}

	slog.Info("user login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{Token: res.Token, User: dto.NewUserRes(res.User)})
}
