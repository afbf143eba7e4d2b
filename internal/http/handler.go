package http

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abd-Kabir/cargo-bot/internal/excel"
	"github.com/abd-Kabir/cargo-bot/internal/http/middleware"
	"github.com/abd-Kabir/cargo-bot/internal/model"
	"github.com/abd-Kabir/cargo-bot/internal/pdf"
	"github.com/abd-Kabir/cargo-bot/internal/pricing"
	"github.com/abd-Kabir/cargo-bot/internal/service"
)

type Handler struct {
	products      *service.ProductService
	loads         *service.LoadService
	payments      *service.PaymentService
	registrations *service.RegistrationService
	stats         *service.StatsService
	excel         *excel.Generator
	pdf           *pdf.Generator
	log           zerolog.Logger
}

func NewHandler(
	products *service.ProductService,
	loads *service.LoadService,
	payments *service.PaymentService,
	registrations *service.RegistrationService,
	stats *service.StatsService,
	excelGen *excel.Generator,
	pdfGen *pdf.Generator,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		products:      products,
		loads:         loads,
		payments:      payments,
		registrations: registrations,
		stats:         stats,
		excel:         excelGen,
		pdf:           pdfGen,
		log:           log,
	}
}

func NewRouter(h *Handler, authMiddleware gin.HandlerFunc, environment string) *gin.Engine {
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/")
	protected.Use(authMiddleware)

	// telegram operators
	protected.POST("/operator/china/barcode-connection", h.connectBarcode)
	protected.POST("/operator/tashkent/accept-product/:barcode", h.acceptProduct)
	protected.POST("/operator/tashkent/load-info", h.loadInfo)
	protected.POST("/operator/tashkent/add-load", h.addLoad)
	protected.POST("/operator/tashkent/dispatch/:load_id", h.dispatchLoad)
	protected.GET("/operator/tashkent/release/load-info/:customer_id", h.releaseInfo)
	protected.POST("/operator/tashkent/release/payment/:customer_id", h.releasePayment)
	protected.POST("/operator/tashkent/release/:customer_id", h.releaseLoad)
	protected.GET("/operator/tashkent/moderation/applications/not-processed", h.pendingApplications)
	protected.GET("/operator/tashkent/moderation/applications/processed", h.processedApplications)
	protected.GET("/operator/tashkent/moderation/get-application/:application_id", h.getApplication)
	protected.POST("/operator/tashkent/moderation/apply-application/:application_id", h.applyApplication)
	protected.POST("/operator/tashkent/moderation/decline-application/:application_id", h.declineApplication)
	protected.GET("/operator/daily-stats", h.operatorDailyStats)

	// bot customers
	protected.GET("/customer/current-load", h.customerCurrentLoad)
	protected.GET("/customer/own-loads/history", h.customerLoadHistory)
	protected.POST("/customer/payment", h.submitPayment)
	protected.GET("/customer/track/product/:barcode", h.trackProduct)
	protected.GET("/customer/products-on-way/list", h.customerProductsOnWay)
	protected.GET("/customer/stats", h.customerStats)

	// web admin
	protected.GET("/admin/delivery/products", h.adminProducts)
	protected.GET("/admin/delivery/products/export", h.adminProductsExport)
	protected.GET("/admin/delivery/product-statuses", h.adminProductStatuses)
	protected.PATCH("/admin/delivery/product-update/:product_id", h.adminUpdateProductStatus)
	protected.GET("/admin/loads/list", h.adminLoads)
	protected.GET("/admin/loads/retrieve/:load_id", h.adminLoad)
	protected.GET("/admin/payment/receipt/:payment_id", h.paymentReceipt)
	protected.GET("/admin/customer/moderation/list", h.registrationList)
	protected.POST("/admin/customer/moderation/accept/:registration_id", h.registrationAccept)
	protected.POST("/admin/customer/moderation/decline/:registration_id", h.registrationDecline)

	return router
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyProcessed),
		errors.Is(err, service.ErrConsolidationFailed),
		errors.Is(err, pricing.ErrNotConfigured):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) principal(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return principal, ok
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
