package handlers

import (
	"context"
	"net/http"

	"casebackend/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// LookupStore reads the type and region reference tables.
type LookupStore interface {
	ListTypes(ctx context.Context) ([]models.CaseType, error)
	GetType(ctx context.Context, id int64) (models.CaseType, error)
	ListRegions(ctx context.Context) ([]models.Region, error)
	GetRegion(ctx context.Context, id int64) (models.Region, error)
}

// LookupHandler serves the read-only /api/types and /api/regions endpoints.
type LookupHandler struct {
	Store LookupStore
}

func (h LookupHandler) ListTypes(c *gin.Context) {
	out, err := h.Store.ListTypes(c.Request.Context())
	respondLookup(c, out, err)
}

func (h LookupHandler) GetType(c *gin.Context) {
	id, ok := idParam(c, "type")
	if !ok {
		return
	}
	out, err := h.Store.GetType(c.Request.Context(), id)
	respondLookup(c, out, err)
}

func (h LookupHandler) ListRegions(c *gin.Context) {
	out, err := h.Store.ListRegions(c.Request.Context())
	respondLookup(c, out, err)
}

func (h LookupHandler) GetRegion(c *gin.Context) {
	id, ok := idParam(c, "region")
	if !ok {
		return
	}
	out, err := h.Store.GetRegion(c.Request.Context(), id)
	respondLookup(c, out, err)
}

// States lists the state code/label pairs a search box may use.
func (h LookupHandler) States(c *gin.Context) {
	c.JSON(http.StatusOK, models.StateChoices)
}

func respondLookup(c *gin.Context, out any, err error) {
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
