package routes

import (
	"log"

	authapi "ordopro-backend/internal/api/auth"
	billingapi "ordopro-backend/internal/api/billing"
	notificationsapi "ordopro-backend/internal/api/notifications"
	nursesapi "ordopro-backend/internal/api/nurses"
	onesignalapi "ordopro-backend/internal/api/onesignal"
	patientsapi "ordopro-backend/internal/api/patients"
	prescriptionsapi "ordopro-backend/internal/api/prescriptions"
	stripewebhooks "ordopro-backend/internal/api/stripewebhook"
	usersapi "ordopro-backend/internal/api/users"
	"ordopro-backend/internal/app/http/middleware"

	"ordopro-backend/config"
	"ordopro-backend/database"
	"ordopro-backend/internal/infra/onesignal"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	webhook := stripewebhooks.New(config.STRIPE_WEBHOOK_SECRET, stripewebhooks.NewGormStore(database.DB))
	r.POST("/webhook", webhook.Handle)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{"version": config.VERSION})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	// v1 signs up with a username, v2 with the email address.
	public.POST("/api/v1/register", authapi.Register)
	public.POST("/api/v2/register", authapi.RegisterV2)
	public.POST("/api-token-auth", authapi.TokenAuth)
	public.POST("/api/v2/api-token-auth", authapi.TokenAuthV2)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/api/v1")
	auth.Use(middleware.AuthMiddleware())

	auth.GET("/profile", usersapi.GetProfile)
	auth.GET("/user", usersapi.ListUsers)
	auth.GET("/user/:id", usersapi.GetUser)
	auth.PUT("/user/:id", usersapi.UpdateUser)
	auth.PATCH("/user/:id", usersapi.UpdateUser)
	auth.DELETE("/user/:id", usersapi.DeleteUser)

	auth.GET("/nurse", nursesapi.ListNurses)
	auth.GET("/nurse/me", nursesapi.GetNurse)
	auth.PUT("/nurse/me", nursesapi.UpdateNurse)

	auth.GET("/patient", patientsapi.ListPatients)
	auth.GET("/patient/:id", patientsapi.GetPatient)
	auth.POST("/patient", patientsapi.CreatePatient)
	auth.PUT("/patient/:id", patientsapi.UpdatePatient)
	auth.DELETE("/patient/:id", patientsapi.DeletePatient)

	auth.GET("/prescription", prescriptionsapi.ListPrescriptions)
	auth.GET("/prescription/:id", prescriptionsapi.GetPrescription)
	auth.POST("/prescription", prescriptionsapi.CreatePrescription)
	auth.PUT("/prescription/:id", prescriptionsapi.UpdatePrescription)
	auth.DELETE("/prescription/:id", prescriptionsapi.DeletePrescription)
	auth.PUT("/prescription/:id/upload", prescriptionsapi.UploadPrescriptionPhoto)
	auth.POST("/prescription/:id/send-email", prescriptionsapi.SendRenewalEmail)

	auth.POST("/onesignal", onesignalapi.RegisterProfile)
	auth.GET("/onesignal", onesignalapi.ListProfiles)
	auth.GET("/onesignal/:id", onesignalapi.GetProfile)

	auth.POST("/subscription", billingapi.CreateCheckoutSession)
	auth.GET("/subscription", billingapi.GetSubscription)
	auth.GET("/subscription/success", billingapi.CheckoutSuccess)
	auth.GET("/subscription/cancel", billingapi.CheckoutCancel)
	auth.POST("/billing-portal", billingapi.CreateBillingPortal)

	// Staff routes
	staff := r.Group("/api/v1")
	staff.Use(middleware.AuthMiddleware(), middleware.RequireStaff())

	if push, err := onesignal.New(config.ONESIGNAL_APP_ID, config.ONESIGNAL_API_KEY); err != nil {
		log.Println("OneSignal notifications disabled:", err)
	} else {
		staff.POST("/notify", notificationsapi.New(push).Notify)
	}

	staff.GET("/stripe-products", billingapi.ListProducts)
	staff.GET("/stripe-products/:id", billingapi.GetProduct)
	staff.POST("/stripe-products", billingapi.CreateProduct)
	staff.PUT("/stripe-products/:id", billingapi.UpdateProduct)
	staff.DELETE("/stripe-products/:id", billingapi.DeleteProduct)
}
