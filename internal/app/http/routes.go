package routes

import (
	adminapi "eventpay/internal/api/admin"
	checkoutapi "eventpay/internal/api/checkout"
	connectapi "eventpay/internal/api/connect"
	earningsapi "eventpay/internal/api/earnings"
	registrationsapi "eventpay/internal/api/registrations"
	stripewebhooks "eventpay/internal/api/stripewebhook"
	"eventpay/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the wired API handlers main constructs.
type Handlers struct {
	Checkout      *checkoutapi.Handler
	Connect       *connectapi.Handler
	Registrations *registrationsapi.Handler
	Earnings      *earningsapi.Handler
	Webhook       *stripewebhooks.Handler
	Admin         *adminapi.Handler
}

func RegisterRoutes(r *gin.Engine, h *Handlers) {
	// The webhook route stays outside the sanitizing group: Stripe
	// signs the raw body and any rewrite breaks verification.
	r.POST("/webhook", h.Webhook.Handle)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/checkout/create", h.Checkout.CreateSession)
	public.POST("/payment/verify", h.Checkout.VerifyPayment)
	public.POST("/forms/:id/registrations", h.Registrations.Submit)

	// Authenticated mentors
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.POST("/connect/onboarding", h.Connect.StartOnboarding)
	auth.GET("/connect/status", h.Connect.Status)
	auth.PATCH("/registrations/:id/status", h.Registrations.UpdateStatus)
	auth.GET("/earnings", h.Earnings.Totals)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/ledger", h.Admin.ListLedger)
}
