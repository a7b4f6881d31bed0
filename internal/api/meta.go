package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GSKumar1109/claimsreporter/internal/model"
)

// MetaResponse everything the page needs before the first render
type MetaResponse struct {
	Depots      []string        `json:"depots"`
	Products    []string        `json:"products"`
	Selection   model.Selection `json:"selection"`
	YearOptions []int           `json:"yearOptions"`
	CompanyName string          `json:"companyName"`
	ReportTitle string          `json:"reportTitle"`
}

// GetMeta
// GET /api/meta
func (h *Handler) GetMeta(c *gin.Context) {
	c.JSON(http.StatusOK, MetaResponse{
		Depots:      model.Depots,
		Products:    h.ws.Products(),
		Selection:   h.ws.Selection(),
		YearOptions: h.ws.YearOptions(),
		CompanyName: h.opts.CompanyName,
		ReportTitle: h.opts.ReportTitle,
	})
}

// GetSelection last-selected depot and period
// GET /api/selection
func (h *Handler) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, h.ws.Selection())
}

// SelectionRequest any subset of depot and period
type SelectionRequest struct {
	Depot string `json:"depot"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
}

// UpdateSelection merges the request into the current selection.
// Both fields are validated before either is stored.
// POST /api/selection
func (h *Handler) UpdateSelection(c *gin.Context) {
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sel := h.ws.Selection()
	if req.Depot != "" {
		sel.Depot = req.Depot
	}
	if req.Year != 0 {
		sel.Period.Year = req.Year
	}
	if req.Month != 0 {
		sel.Period.Month = time.Month(req.Month)
	}
	if err := h.ws.UpdateSelection(sel); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.ws.Selection())
}
