package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) respondProducts(c *gin.Context, names []string, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": names})
}

// ListProducts
// GET /api/products
func (h *Handler) ListProducts(c *gin.Context) {
	h.respondProducts(c, h.ws.Products(), nil)
}

// RenameProducts saves the product names grid.
// PUT /api/products
func (h *Handler) RenameProducts(c *gin.Context) {
	var req struct {
		Products []string `json:"products"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	names, err := h.ws.RenameProducts(req.Products)
	h.respondProducts(c, names, err)
}

// AddProduct
// POST /api/products
func (h *Handler) AddProduct(c *gin.Context) {
	names, err := h.ws.AddProduct()
	h.respondProducts(c, names, err)
}

// RemoveProduct drops the last product column.
// DELETE /api/products/last
func (h *Handler) RemoveProduct(c *gin.Context) {
	names, err := h.ws.RemoveProduct()
	h.respondProducts(c, names, err)
}

// ResetProducts
// POST /api/products/reset
func (h *Handler) ResetProducts(c *gin.Context) {
	names, err := h.ws.ResetProductNames()
	h.respondProducts(c, names, err)
}
