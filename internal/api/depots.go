package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GSKumar1109/claimsreporter/internal/model"
	"github.com/GSKumar1109/claimsreporter/internal/service/calculator"
	"github.com/GSKumar1109/claimsreporter/internal/service/consolidate"
)

// ReportResponse depot table: stored records plus whole-unit totals
type ReportResponse struct {
	Depot    string              `json:"depot"`
	Period   model.Period        `json:"period"`
	Title    string              `json:"title"`
	Products []string            `json:"products"`
	Records  []model.DepotRecord `json:"records"`
	Report   calculator.Report   `json:"report"`
}

// GetReport
// GET /api/depots/:depot/report
func (h *Handler) GetReport(c *gin.Context) {
	depot := c.Param("depot")
	view, err := h.ws.View(depot, false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ReportResponse{
		Depot:    view.Depot,
		Period:   view.Period,
		Title:    h.opts.ReportTitle + " — " + view.Depot + " for " + view.Period.Label(),
		Products: view.Products,
		Records:  view.Records,
		Report:   view.Report.Rounded(),
	})
}

// SubmitRequest entry form; shopIds is the comma-separated text as typed
type SubmitRequest struct {
	Syndicate string               `json:"syndicate"`
	ShopIDs   string               `json:"shopIds"`
	Products  []model.ProductEntry `json:"products"`
}

// SubmitRecord adds a syndicate or updates the existing one.
// POST /api/depots/:depot/records
func (h *Handler) SubmitRecord(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec, err := h.ws.Submit(c.Param("depot"), model.Submission{
		Syndicate: req.Syndicate,
		ShopIDs:   consolidate.ParseShopIDs(req.ShopIDs),
		Products:  req.Products,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DeleteRecord
// DELETE /api/depots/:depot/records/:id
func (h *Handler) DeleteRecord(c *gin.Context) {
	if err := h.ws.DeleteRecord(c.Param("depot"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearDepot removes every record of the depot.
// DELETE /api/depots/:depot/records
func (h *Handler) ClearDepot(c *gin.Context) {
	if err := h.ws.ClearDepot(c.Param("depot")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// FormTotalsRequest unsaved form entries
type FormTotalsRequest struct {
	Products []model.ProductEntry `json:"products"`
}

// FormTotals live row total of the entry form
// POST /api/form/totals
func (h *Handler) FormTotals(c *gin.Context) {
	var req FormTotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	totals := calculator.FormTotals(req.Products).Rounded()
	c.JSON(http.StatusOK, gin.H{
		"totals": totals,
		"display": gin.H{
			"cases":   calculator.FormatWhole(totals.Cases),
			"perCase": calculator.FormatWhole(totals.PerCase),
			"amount":  calculator.FormatWhole(totals.Amount),
		},
	})
}
