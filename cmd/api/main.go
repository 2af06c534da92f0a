package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/SkhumbuzoT/prime-tools/api/swagger" // swagger docs
	"github.com/SkhumbuzoT/prime-tools/internal/database"
	"github.com/SkhumbuzoT/prime-tools/internal/export"
	"github.com/SkhumbuzoT/prime-tools/internal/handler"
	"github.com/SkhumbuzoT/prime-tools/internal/middleware"
	"github.com/SkhumbuzoT/prime-tools/internal/repository"
	"github.com/SkhumbuzoT/prime-tools/internal/service"
	"github.com/SkhumbuzoT/prime-tools/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Prime Tools Route Economics API
// @version         1.0
// @description     Route cost, profitability and cashflow-risk engine for road freight operators.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Optional Gotenberg for PDF export
	var pdfExporter *export.PDFExporter
	if endpoint := os.Getenv("GOTENBERG_URL"); endpoint != "" {
		pdfExporter, err = export.NewPDFExporter(endpoint, http.DefaultClient)
		if err != nil {
			log.Fatalf("PDF exporter setup failed: %v", err)
		}
	} else {
		log.Println("GOTENBERG_URL not set; PDF export disabled")
	}

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	rateCardRepo := repository.NewRateCardRepository(db)
	estimateRepo := repository.NewEstimateRepository(db)
	slipRepo := repository.NewFuelSlipRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userService := service.NewUserService(userRepo, auditRepo)
	rateCardService := service.NewRateCardService(rateCardRepo, auditRepo)
	estimateService := service.NewEstimateService(estimateRepo, rateCardService, auditRepo, txManager, wsHub)
	slipService := service.NewFuelSlipService(slipRepo, auditRepo, txManager)
	statisticsService := service.NewStatisticsService(db)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	rateCardHandler := handler.NewRateCardHandler(rateCardService)
	estimateHandler := handler.NewEstimateHandler(estimateService, pdfExporter)
	slipHandler := handler.NewFuelSlipHandler(slipService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))

	api := router.Group("/api")
	rateCardHandler.RegisterRoutes(api)
	estimateHandler.RegisterRoutes(api)
	slipHandler.RegisterRoutes(api)
	statisticsHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
