package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GSKumar1109/claimsreporter/internal/csvexport"
	"github.com/GSKumar1109/claimsreporter/internal/model"
	"github.com/GSKumar1109/claimsreporter/internal/service/excel"
	"github.com/GSKumar1109/claimsreporter/internal/service/workspace"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxImportBytes  = 16 << 20
)

func contentDisposition(fileName string) string {
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", fileName, url.PathEscape(fileName))
}

// ExportJSON per-depot document {depot, products, rows}
// GET /api/depots/:depot/export.json
func (h *Handler) ExportJSON(c *gin.Context) {
	depot := c.Param("depot")
	doc, err := h.ws.ExportDocument(depot)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", contentDisposition(workspace.ExportFileName(depot)))
	c.IndentedJSON(http.StatusOK, doc)
}

// Import replaces the depot's rows with a previously exported document.
// Accepts the document as the request body or as multipart field "file".
// POST /api/depots/:depot/import
func (h *Handler) Import(c *gin.Context) {
	data, err := readImportBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.ws.ImportDocument(c.Param("depot"), data)
	if err != nil {
		if errors.Is(err, model.ErrInvalidDocument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Import failed: " + err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func readImportBody(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, errors.New("no uploaded file")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxImportBytes))
	}
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty request body")
	}
	return data, nil
}

// ExportXLSX renders the depot table to a workbook and returns a one-shot download URL.
// POST /api/depots/:depot/export.xlsx
func (h *Handler) ExportXLSX(c *gin.Context) {
	view, err := h.ws.View(c.Param("depot"), true)
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := h.excel.ExportDepot(excel.DepotSheet{
		CompanyName: h.opts.CompanyName,
		ReportTitle: h.opts.ReportTitle,
		Depot:       view.Depot,
		Period:      view.Period,
		Products:    view.Products,
		Report:      view.Report,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.opts.ExportDir, 0o755); err != nil {
		respondError(c, fmt.Errorf("create export dir: %w", err))
		return
	}
	tempPath := filepath.Join(h.opts.ExportDir, fmt.Sprintf("claimsreporter_export_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := file.SaveAs(tempPath); err != nil {
		_ = os.Remove(tempPath)
		respondError(c, fmt.Errorf("write export file: %w", err))
		return
	}

	fileName := excel.FileName(view.Depot)
	token := h.downloads.put(tempPath, fileName, downloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"fileName":    fileName,
		"downloadUrl": "/api/export/download/" + token,
	})
}

// DownloadExport serves a staged workbook once.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "export file missing"})
		return
	}

	c.Header("Content-Disposition", contentDisposition(item.fileName))
	c.Header("Content-Type", xlsxContentType)
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

// ExportCSV long-format CSV of the depot
// GET /api/depots/:depot/export.csv
func (h *Handler) ExportCSV(c *gin.Context) {
	depot := c.Param("depot")
	doc, err := h.ws.ExportDocument(depot)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := csvexport.Write(&buf, doc.Products, doc.Rows); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", contentDisposition(csvexport.FileName(depot)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
