package api

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/GSKumar1109/claimsreporter/internal/service/excel"
	"github.com/GSKumar1109/claimsreporter/internal/service/workspace"
)

// Options report header text and where generated workbooks are staged
type Options struct {
	CompanyName string
	ReportTitle string
	// ExportDir holds xlsx files until downloaded; defaults to the OS temp dir
	ExportDir string
}

// Handler depot API handler
type Handler struct {
	ws        *workspace.Manager
	opts      Options
	excel     *excel.Exporter
	downloads *exportDownloadStore
}

// NewHandler creates the API handler.
func NewHandler(ws *workspace.Manager, opts Options) *Handler {
	if opts.ExportDir == "" {
		opts.ExportDir = os.TempDir()
	}
	return &Handler{
		ws:        ws,
		opts:      opts,
		excel:     excel.NewExporter(),
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/meta", h.GetMeta)
	router.GET("/selection", h.GetSelection)
	router.POST("/selection", h.UpdateSelection)

	// records
	router.GET("/depots/:depot/report", h.GetReport)
	router.POST("/depots/:depot/records", h.SubmitRecord)
	router.DELETE("/depots/:depot/records/:id", h.DeleteRecord)
	router.DELETE("/depots/:depot/records", h.ClearDepot)
	router.POST("/form/totals", h.FormTotals)

	// products
	router.GET("/products", h.ListProducts)
	router.PUT("/products", h.RenameProducts)
	router.POST("/products", h.AddProduct)
	router.DELETE("/products/last", h.RemoveProduct)
	router.POST("/products/reset", h.ResetProducts)

	// import / export
	router.GET("/depots/:depot/export.json", h.ExportJSON)
	router.POST("/depots/:depot/import", h.Import)
	router.POST("/depots/:depot/export.xlsx", h.ExportXLSX)
	router.GET("/export/download/:token", h.DownloadExport)
	router.GET("/depots/:depot/export.csv", h.ExportCSV)
}
