package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abd-Kabir/cargo-bot/internal/model"
	"github.com/abd-Kabir/cargo-bot/internal/repository"
	"github.com/abd-Kabir/cargo-bot/internal/service"
)

func (h *Handler) adminProducts(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	filter := repository.ProductFilter{
		Status: model.ProductStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	rows, err := h.products.ListProducts(c.Request.Context(), filter, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		response = append(response, gin.H{
			"id":             row.ID,
			"barcode":        row.Barcode,
			"customer_id":    row.CustomerFullCode(),
			"status":         row.Status,
			"status_display": row.Status.Display().Label,
			"is_homeless":    row.IsHomeless,
			"updated_at":     row.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

func (h *Handler) adminProductsExport(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	filter := repository.ProductFilter{
		Status: model.ProductStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	rows, err := h.products.ListProducts(c.Request.Context(), filter, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	content, err := h.excel.ProductList(rows)
	if err != nil {
		h.handleError(c, err)
		return
	}

	filename := fmt.Sprintf("products_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

func (h *Handler) adminProductStatuses(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}

	statuses := service.OperatorSelectableStatuses()
	response := make([]gin.H, 0, len(statuses))
	for _, status := range statuses {
		response = append(response, gin.H{"value": status.Status, "label": status.Label})
	}
	c.JSON(http.StatusOK, response)
}

type updateProductStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) adminUpdateProductStatus(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	productID, ok := parseUUIDParam(c, "product_id")
	if !ok {
		return
	}

	var req updateProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.AdvanceStatus(c.Request.Context(), productID, model.ProductStatus(req.Status), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, productResponse(*product))
}

func (h *Handler) adminLoads(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	rows, err := h.loads.AdminLoads(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		response = append(response, gin.H{
			"id":             row.ID,
			"customer_id":    row.CustomerFullCode(),
			"weight":         row.Weight,
			"cost":           row.Cost,
			"loads_count":    row.LoadsCount,
			"status":         row.Status,
			"status_display": row.Status.Label(),
			"is_active":      row.IsActive,
			"updated_at":     row.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

func (h *Handler) adminLoad(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	loadID, ok := parseUUIDParam(c, "load_id")
	if !ok {
		return
	}

	load, products, err := h.loads.AdminLoad(c.Request.Context(), loadID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	productList := make([]gin.H, 0, len(products))
	for _, product := range products {
		productList = append(productList, productResponse(product))
	}
	response := loadResponse(*load)
	response["products"] = productList
	c.JSON(http.StatusOK, response)
}

func (h *Handler) paymentReceipt(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	paymentID, ok := parseUUIDParam(c, "payment_id")
	if !ok {
		return
	}

	receipt, err := h.payments.ReceiptData(c.Request.Context(), paymentID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	content, err := h.pdf.Receipt(receipt)
	if err != nil {
		h.handleError(c, err)
		return
	}

	filename := fmt.Sprintf("receipt_%s.pdf", receipt.Payment.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", content)
}

func (h *Handler) registrationList(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	registrations, err := h.registrations.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response := make([]gin.H, 0, len(registrations))
	for _, registration := range registrations {
		response = append(response, registrationResponse(registration))
	}
	c.JSON(http.StatusOK, response)
}

func (h *Handler) registrationAccept(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "registration_id")
	if !ok {
		return
	}

	registration, err := h.registrations.Accept(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, registrationResponse(*registration))
}

type registrationDeclineRequest struct {
	RejectMessage string `json:"reject_message" binding:"required"`
}

func (h *Handler) registrationDecline(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "registration_id")
	if !ok {
		return
	}

	var req registrationDeclineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	registration, err := h.registrations.Decline(c.Request.Context(), id, req.RejectMessage, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, registrationResponse(*registration))
}

func registrationResponse(registration model.CustomerRegistration) gin.H {
	return gin.H{
		"id":             registration.ID,
		"customer_id":    registration.CustomerID,
		"status":         registration.Status,
		"status_display": registration.Status.Label(),
		"reject_message": registration.RejectMessage,
		"created_at":     registration.CreatedAt,
	}
}
