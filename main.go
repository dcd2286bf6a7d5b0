package main

import (
	"time"

	"eventpay/config"
	"eventpay/database"
	adminapi "eventpay/internal/api/admin"
	checkoutapi "eventpay/internal/api/checkout"
	connectapi "eventpay/internal/api/connect"
	earningsapi "eventpay/internal/api/earnings"
	registrationsapi "eventpay/internal/api/registrations"
	stripewebhooks "eventpay/internal/api/stripewebhook"
	routes "eventpay/internal/app/http"
	"eventpay/internal/infra/notify"
	"eventpay/internal/infra/stripeconnect"
	"eventpay/internal/payments"
	"eventpay/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	store := storage.NewStore(database.DB)
	processor := stripeconnect.New(config.STRIPE_SECRET_KEY)
	notifier := notify.NewLogNotifier(log)

	connectSvc := payments.NewConnectService(store, processor, notifier, log)
	checkoutSvc := payments.NewCheckoutService(store, processor, config.APP_URL)
	fulfillmentSvc := payments.NewFulfillmentService(store, processor, notifier, log)
	approvalSvc := payments.NewApprovalService(store, notifier, log)
	earningsSvc := payments.NewEarningsService(store)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, &routes.Handlers{
		Checkout:      checkoutapi.NewHandler(checkoutSvc, fulfillmentSvc),
		Connect:       connectapi.NewHandler(connectSvc, config.APP_URL),
		Registrations: registrationsapi.NewHandler(approvalSvc, store),
		Earnings:      earningsapi.NewHandler(earningsSvc),
		Webhook:       stripewebhooks.NewHandler(fulfillmentSvc, connectSvc, store, config.STRIPE_WEBHOOK_SECRET, log),
		Admin:         adminapi.NewHandler(store),
	})

	r.Run(":" + config.PORT)
}
