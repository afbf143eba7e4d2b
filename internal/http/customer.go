package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/abd-Kabir/cargo-bot/internal/service"
)

func (h *Handler) customerCurrentLoad(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	current, err := h.loads.CurrentLoad(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	products := make([]gin.H, 0, len(current.Products))
	for _, product := range current.Products {
		products = append(products, customerProductResponse(product))
	}
	c.JSON(http.StatusOK, gin.H{
		"id":             current.Load.ID,
		"weight":         current.Load.Weight,
		"cost":           current.Load.Cost,
		"debt":           current.Debt,
		"status":         current.Status,
		"status_display": current.Status.Label(),
		"products":       products,
	})
}

func (h *Handler) customerLoadHistory(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	loads, err := h.loads.LoadHistory(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response := make([]gin.H, 0, len(loads))
	for _, load := range loads {
		response = append(response, loadResponse(load))
	}
	c.JSON(http.StatusOK, response)
}

type submitPaymentRequest struct {
	Amount string   `json:"amount" binding:"required"`
	Files  []string `json:"files"`
}

func (h *Handler) submitPayment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req submitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	fileIDs, ok := parseUUIDList(c, req.Files)
	if !ok {
		return
	}

	payment, err := h.payments.SubmitClaim(c.Request.Context(), service.SubmitClaimInput{
		Amount:    amount,
		FileIDs:   fileIDs,
		Principal: principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, paymentResponse(*payment))
}

func (h *Handler) trackProduct(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	tracked, err := h.products.Track(c.Request.Context(), c.Param("barcode"), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":             tracked.Product.ID,
		"barcode":        tracked.Product.Barcode,
		"status":         tracked.Display.Status,
		"status_display": tracked.Display.Label,
		"updated_at":     tracked.Product.UpdatedAt,
	})
}

func (h *Handler) customerProductsOnWay(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	products, err := h.products.ProductsOnWay(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response := make([]gin.H, 0, len(products))
	for _, product := range products {
		response = append(response, customerProductResponse(product))
	}
	c.JSON(http.StatusOK, response)
}

func (h *Handler) customerStats(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	stats, err := h.stats.CustomerSummary(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
