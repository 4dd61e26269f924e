// Package handler provides HTTP handlers for the species catalog.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pokecard_backend/internal/feature/catalog/domain/entity"
	"pokecard_backend/internal/feature/catalog/transport/http/dto"
	"pokecard_backend/internal/platform/http/httperr"
)

// CatalogUsecase defines the catalog operations exposed over HTTP.
type CatalogUsecase interface {
	List(ctx context.Context) ([]entity.Species, error)
	Get(ctx context.Context, id int) (*entity.Species, error)
	Create(ctx context.Context, s entity.Species) (*entity.Species, error)
	Update(ctx context.Context, id int, s entity.Species) (*entity.Species, error)
	Delete(ctx context.Context, id int) (*entity.Species, error)
}

// typeFilters is the lowercase type list clients build filters from.
// "normal" is accepted on entries but is not offered as a filter.
var typeFilters = []string{
	"fire", "water", "grass", "electric", "ice", "fighting",
	"poison", "ground", "flying", "psychic", "bug", "rock",
	"ghost", "dragon", "dark", "steel", "fairy",
}

// CatalogHandler handles /api/pokemons.
type CatalogHandler struct {
	uc CatalogUsecase
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(uc CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List returns every entry together with the type filter list.
func (h *CatalogHandler) List(c *gin.Context) {
	species, err := h.uc.List(c.Request.Context())
	if err != nil {
		httperr.Write(c, err)
		return
	}
	out := make([]dto.PokemonDTO, 0, len(species))
	for i := range species {
		out = append(out, dto.NewPokemonDTO(&species[i]))
	}
	c.JSON(http.StatusOK, dto.ListRes{Types: typeFilters, Pokemons: out})
}

// Get returns one entry.
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := speciesID(c)
	if !ok {
		return
	}
	s, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.GetRes{Pokemon: dto.NewPokemonDTO(s)})
}

// Create adds an entry. Admin only.
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.PokemonDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create pokemon validation failed", "error", err, "remote_addr", c.ClientIP())
		httperr.BadRequest(c, "invalid pokemon body")
		return
	}
	s, err := h.uc.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		httperr.Write(c, err)
		return
	}
	slog.Info("pokemon created", "species_id", s.SpeciesID)
	c.JSON(http.StatusCreated, dto.NewPokemonDTO(s))
}

// Update replaces an entry. Admin only.
func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := speciesID(c)
	if !ok {
		return
	}
	var req dto.PokemonDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update pokemon validation failed", "error", err, "remote_addr", c.ClientIP())
		httperr.BadRequest(c, "invalid pokemon body")
		return
	}
	s, err := h.uc.Update(c.Request.Context(), id, req.ToEntity())
	if err != nil {
		httperr.Write(c, err)
		return
	}
	slog.Info("pokemon updated", "species_id", s.SpeciesID)
	c.JSON(http.StatusOK, dto.NewPokemonDTO(s))
}

// Delete removes an entry and returns it. Admin only.
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := speciesID(c)
	if !ok {
		return
	}
	s, err := h.uc.Delete(c.Request.Context(), id)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	slog.Info("pokemon deleted", "species_id", s.SpeciesID)
	c.JSON(http.StatusOK, dto.NewPokemonDTO(s))
}

func speciesID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid pokemon id")
		return 0, false
	}
	return id, true
}
