package api

import (
	"log"
	stdhttp "net/http"
	"os"
	"strings"
	"time"

	intconfig "backoffice/internal/config"
	h "backoffice/internal/http/handlers"
	"backoffice/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Init(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsConfig())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		admin := api.Group("")
		admin.Use(middleware.RequireAuth(env.JWTSecret))

		bookings := admin.Group("/bookings")
		bookings.GET("", h.GetBookings)
		bookings.POST("", h.CreateBooking)
		bookings.POST("/bulk-status", h.BulkBookingStatus)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
		bookings.POST("/:id/status", h.SetBookingStatus)
		bookings.POST("/:id/reconcile", h.ReconcileBooking)
		bookings.GET("/:id/voucher", h.GetBookingVoucherPDF)
		bookings.POST("/:id/payments", h.CreateBookingPayment)
		bookings.GET("/:id/payments", h.GetBookingPayments)

		payments := admin.Group("/payments")
		payments.DELETE("/:id", h.DeletePayment)
		payments.GET("/:id/receipt", h.GetPaymentReceiptPDF)

		packages := admin.Group("/packages")
		packages.GET("", h.GetPackages)
		packages.GET("/:id", h.GetPackageByID)
		packages.POST("", h.CreatePackage)
		packages.PUT("/:id", h.UpdatePackage)
		packages.DELETE("/:id", h.DeletePackage)

		pilgrims := admin.Group("/pilgrims")
		pilgrims.GET("", h.GetPilgrims)
		pilgrims.GET("/:id", h.GetPilgrimByID)
		pilgrims.POST("", h.CreatePilgrim)
		pilgrims.GET("/:id/passports", h.GetPilgrimPassports)
		pilgrims.POST("/:id/passports", h.CreatePilgrimPassport)
	}

	return r
}

func corsConfig() gin.HandlerFunc {
	origins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	}
	if env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); env != "" {
		origins = origins[:0]
		for _, o := range strings.Split(env, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
