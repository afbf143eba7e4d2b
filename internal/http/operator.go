package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abd-Kabir/cargo-bot/internal/model"
	"github.com/abd-Kabir/cargo-bot/internal/service"
)

type connectBarcodeRequest struct {
	Barcode    string   `json:"barcode" binding:"required"`
	CustomerID string   `json:"customer_id"`
	ChinaFiles []string `json:"china_files"`
}

func (h *Handler) connectBarcode(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req connectBarcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fileIDs, ok := parseUUIDList(c, req.ChinaFiles)
	if !ok {
		return
	}

	product, err := h.products.ConnectBarcode(c.Request.Context(), service.ConnectBarcodeInput{
		Barcode:      strings.TrimSpace(req.Barcode),
		CustomerCode: strings.TrimSpace(req.CustomerID),
		FileIDs:      fileIDs,
		Principal:    principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, productResponse(*product))
}

func (h *Handler) acceptProduct(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	_, err := h.products.AcceptProduct(c.Request.Context(), c.Param("barcode"), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Product accepted"})
}

type loadInfoRequest struct {
	CustomerID string  `json:"customer_id" binding:"required"`
	Weight     float64 `json:"weight" binding:"required"`
}

func (h *Handler) loadInfo(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req loadInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := h.loads.PreviewCost(c.Request.Context(), req.CustomerID, req.Weight, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	products := make([]gin.H, 0, len(info.Products))
	for _, product := range info.Products {
		products = append(products, customerProductResponse(product))
	}
	c.JSON(http.StatusOK, gin.H{
		"load_cost": info.LoadCost,
		"debt":      info.Debt,
		"products":  products,
	})
}

type addLoadRequest struct {
	CustomerID string   `json:"customer_id" binding:"required"`
	Weight     float64  `json:"weight" binding:"required"`
	Products   []string `json:"products" binding:"required"`
	Image      string   `json:"image"`
}

func (h *Handler) addLoad(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req addLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	productIDs, ok := parseUUIDList(c, req.Products)
	if !ok {
		return
	}

	var imageID *uuid.UUID
	if req.Image != "" {
		id, err := uuid.Parse(req.Image)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image"})
			return
		}
		imageID = &id
	}

	load, err := h.loads.Consolidate(c.Request.Context(), service.ConsolidateInput{
		CustomerCode: req.CustomerID,
		ProductIDs:   productIDs,
		Weight:       req.Weight,
		ImageID:      imageID,
		Principal:    principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, loadResponse(*load))
}

func (h *Handler) dispatchLoad(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	loadID, ok := parseUUIDParam(c, "load_id")
	if !ok {
		return
	}

	load, err := h.loads.Dispatch(c.Request.Context(), loadID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, loadResponse(*load))
}

func (h *Handler) releaseInfo(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	info, err := h.loads.ReleaseInfo(c.Request.Context(), c.Param("customer_id"), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	products := make([]gin.H, 0, len(info.Products))
	for _, product := range info.Products {
		products = append(products, customerProductResponse(product))
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       info.Load.ID,
		"weight":   info.Load.Weight,
		"debt":     info.Debt,
		"status":   info.Load.Status,
		"products": products,
	})
}

func (h *Handler) releasePayment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	result, err := h.payments.SettleFullByCustomer(c.Request.Context(), c.Param("customer_id"), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment": paymentResponse(*result.Payment),
		"load":    loadResponse(*result.Load),
	})
}

func (h *Handler) releaseLoad(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	load, err := h.loads.Release(c.Request.Context(), c.Param("customer_id"), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, loadResponse(*load))
}

func (h *Handler) pendingApplications(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	apps, err := h.payments.PendingApplications(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicationListResponse(apps))
}

func (h *Handler) processedApplications(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	apps, err := h.payments.ProcessedApplications(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicationListResponse(apps))
}

func (h *Handler) getApplication(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "application_id")
	if !ok {
		return
	}

	app, files, err := h.payments.Application(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response := applicationResponse(*app)
	fileList := make([]gin.H, 0, len(files))
	for _, file := range files {
		fileList = append(fileList, gin.H{
			"id":           file.ID,
			"name":         file.Name,
			"path":         file.Path,
			"content_type": file.ContentType,
		})
	}
	response["files"] = fileList
	c.JSON(http.StatusOK, response)
}

func (h *Handler) applyApplication(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "application_id")
	if !ok {
		return
	}

	payment, err := h.payments.Approve(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, paymentResponse(*payment))
}

type declineApplicationRequest struct {
	Comment string `json:"comment" binding:"required"`
}

func (h *Handler) declineApplication(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "application_id")
	if !ok {
		return
	}

	var req declineApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.payments.Decline(c.Request.Context(), id, req.Comment, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, paymentResponse(*payment))
}

func (h *Handler) operatorDailyStats(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	stats, err := h.stats.OperatorDaily(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func parseUUIDList(c *gin.Context, raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, item := range raw {
		id, err := uuid.Parse(strings.TrimSpace(item))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id: " + item})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func productResponse(product model.Product) gin.H {
	display := product.Status.Display()
	return gin.H{
		"id":             product.ID,
		"barcode":        product.Barcode,
		"status":         display.Status,
		"status_display": display.Label,
		"updated_at":     product.UpdatedAt,
	}
}

// customerProductResponse renders the customer-facing status vocabulary.
func customerProductResponse(product model.Product) gin.H {
	display := product.Status.CustomerDisplay()
	return gin.H{
		"id":             product.ID,
		"barcode":        product.Barcode,
		"status":         display.Status,
		"status_display": display.Label,
		"updated_at":     product.UpdatedAt,
	}
}

func loadResponse(load model.Load) gin.H {
	return gin.H{
		"id":             load.ID,
		"weight":         load.Weight,
		"cost":           load.Cost,
		"loads_count":    load.LoadsCount,
		"status":         load.Status,
		"status_display": load.Status.Label(),
		"is_active":      load.IsActive,
	}
}

func paymentResponse(payment model.Payment) gin.H {
	response := gin.H{
		"id":          payment.ID,
		"load_id":     payment.LoadID,
		"paid_amount": payment.PaidAmount,
		"is_operator": payment.IsOperator,
		"comment":     payment.Comment,
	}
	if payment.Status != nil {
		response["status"] = *payment.Status
		response["status_display"] = payment.Status.Label()
	} else {
		response["status"] = nil
	}
	return response
}

func applicationResponse(app model.PaymentApplication) gin.H {
	response := gin.H{
		"id":          app.ID,
		"customer_id": app.CustomerFullCode(),
		"debt":        app.CustomerDebt,
		"paid_amount": app.PaidAmount,
		"comment":     app.Comment,
		"date":        app.CreatedAt.Format("2006-01-02"),
	}
	if app.Status != nil {
		response["status"] = *app.Status
		response["status_display"] = app.Status.Label()
	} else {
		response["status"] = nil
	}
	return response
}

func applicationListResponse(apps []model.PaymentApplication) []gin.H {
	response := make([]gin.H, 0, len(apps))
	for _, app := range apps {
		response = append(response, applicationResponse(app))
	}
	return response
}
