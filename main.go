package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"journeytrack/api/database"
	"journeytrack/api/handlers"
	"journeytrack/api/middleware"
	"journeytrack/api/models"
	"journeytrack/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Initialize PostgreSQL (users + touchpoint collections) ---
	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	// --- Initialize ClickHouse (append-only touchpoint stream) ---
	chClient, err := database.NewClickHouseDB()
	if err != nil {
		log.Fatalf("Failed to initialize ClickHouse database: %v", err)
	}
	defer chClient.Close()

	// --- Initialize Stores ---
	userStore := store.NewUserStore(dbClient.DB)
	visitStore := store.NewVisitStore(dbClient.DB)
	streamStore := store.NewStreamStore(chClient)

	// --- Initialize Handlers ---
	authHandlers := handlers.NewAuthHandlers(userStore)
	visitHandlers := handlers.NewVisitHandlers(visitStore, streamStore)
	analyticsHandlers := handlers.NewAnalyticsHandlers(visitStore, streamStore)

	r := gin.Default()

	frontendOrigin := os.Getenv("FE_ORIGIN")
	if frontendOrigin == "" {
		frontendOrigin = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Cache-Control", "X-Requested-With", "X-API-KEY"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	canEdit := middleware.RequireRole(models.RoleAdmin, models.RoleManager)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Authentication endpoints (no authentication required)
		api.POST("/auth/register", authHandlers.Register)
		api.POST("/auth/login", authHandlers.Login)
		api.POST("/auth/logout", authHandlers.Logout)

		// Protected routes (require a valid JWT token)
		protected := api.Group("/")
		protected.Use(middleware.AuthRequired())
		{
			website := protected.Group("/website-visits")
			{
				website.GET("", visitHandlers.ListWebsiteVisits)
				website.POST("", canEdit, visitHandlers.CreateWebsiteVisit)
				website.GET("/:id", visitHandlers.GetWebsiteVisit)
				website.PUT("/:id", canEdit, visitHandlers.UpdateWebsiteVisit)
				website.DELETE("/:id", adminOnly, visitHandlers.DeleteWebsiteVisit)
			}

			storeVisits := protected.Group("/store-visits")
			{
				storeVisits.GET("", visitHandlers.ListStoreVisits)
				storeVisits.POST("", canEdit, visitHandlers.CreateStoreVisit)
				storeVisits.GET("/:id", visitHandlers.GetStoreVisit)
				storeVisits.PUT("/:id", canEdit, visitHandlers.UpdateStoreVisit)
				storeVisits.DELETE("/:id", adminOnly, visitHandlers.DeleteStoreVisit)
			}

			signups := protected.Group("/login-signup")
			{
				signups.GET("", visitHandlers.ListSignups)
				signups.POST("", canEdit, visitHandlers.CreateSignup)
				signups.GET("/:id", visitHandlers.GetSignup)
				signups.PUT("/:id", canEdit, visitHandlers.UpdateSignup)
				signups.DELETE("/:id", adminOnly, visitHandlers.DeleteSignup)
			}

			analyticsGroup := protected.Group("/analytics")
			{
				analyticsGroup.GET("/funnel", analyticsHandlers.GetFunnel)
				analyticsGroup.GET("/contacts", analyticsHandlers.GetContacts)
			}

			protected.GET("/stats/event-counts", analyticsHandlers.GetEventCounts)
			protected.GET("/export/:workflow", visitHandlers.ExportWorkflow)

			protected.GET("/profile", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{
					"user_id":    c.GetInt("user_id"),
					"user_email": c.GetString("user_email"),
					"user_name":  c.GetString("user_name"),
					"user_role":  c.GetString("user_role"),
				})
			})
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Journeytrack API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
