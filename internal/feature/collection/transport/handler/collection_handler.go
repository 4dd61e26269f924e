// Package handler provides HTTP handlers for the collection ledger.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pokecard_backend/internal/feature/collection/domain/entity"
	"pokecard_backend/internal/feature/collection/transport/http/dto"
	"pokecard_backend/internal/platform/http/httperr"
	jwtmw "pokecard_backend/internal/platform/jwt"
)

// CollectionUsecase defines the ledger operations.
type CollectionUsecase interface {
	AddCards(ctx context.Context, userID string, incoming []entity.IncomingCard) ([]entity.AddedCard, error)
	ListCards(ctx context.Context, userID string) ([]entity.OwnedCard, error)
}

// CollectionHandler serves the authenticated user's collection.
type CollectionHandler struct {
	uc CollectionUsecase
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(uc CollectionUsecase) *CollectionHandler {
	return &CollectionHandler{uc: uc}
}

// List handles GET /auth/my-pokemons.
func (h *CollectionHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		httperr.Write(c, jwtmw.ErrMissingToken)
		return
	}
	cards, err := h.uc.ListCards(c.Request.Context(), userID)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOwnedCardsRes(cards))
}

// Add handles POST /auth/add-pokemons.
func (h *CollectionHandler) Add(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		httperr.Write(c, jwtmw.ErrMissingToken)
		return
	}
	var req dto.AddPokemonsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("add pokemons validation failed", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		httperr.BadRequest(c, "pokemons must be an array")
		return
	}

	added, err := h.uc.AddCards(c.Request.Context(), userID, req.ToIncoming())
	if err != nil {
		slog.Warn("add pokemons failed", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		httperr.Write(c, err)
		return
	}

	slog.Info("cards added", "user_id", userID, "count", len(added))
	c.JSON(http.StatusOK, dto.NewAddPokemonsRes(added))
}
