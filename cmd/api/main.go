package main

import (
	"fmt"
	"net/http"
	"os"

	"duitku/internal/config"
	"duitku/internal/database"
	"duitku/internal/events"
	"duitku/internal/handlers"
	"duitku/internal/logger"
	"duitku/internal/middleware"
	"duitku/internal/services"
	"duitku/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "duitku/internal/docs" // Import swagger docs
)

// @title           Duitku API
// @version         1.0
// @description     Duitku is a personal finance tracker: record expenses and income, plan monthly budgets per category, and receive threshold alerts as spending approaches the plan.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Websocket hub for notification delivery
	hub := events.NewHub()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	budgetService := services.NewBudgetService(db)
	expenseService := services.NewExpenseService(db)
	incomeService := services.NewIncomeService(db)
	transactionService := services.NewTransactionService(db)
	analysisService := services.NewAnalysisService(db)
	notificationService := services.NewNotificationService(db, appConfig.Alerts)
	alertService := services.NewAlertService(db, appConfig.Alerts, hub)

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(userService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, alertService)
	wsHandler := handlers.NewWSHandler(hub)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.UpdateProfile)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.POST("/with-category", budgetHandler.CreateBudgetWithCategory)
	budgets.POST("/categories", budgetHandler.AddBudgetCategories)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetMonthExpenses)
	expenses.GET("/totals", expenseHandler.GetCategoryTotals)

	// Income routes
	incomes := protected.Group("/incomes")
	incomes.POST("", incomeHandler.CreateIncome)
	incomes.GET("", incomeHandler.GetIncomes)
	incomes.PUT("/:id", incomeHandler.UpdateIncome)
	incomes.DELETE("/:id", incomeHandler.DeleteIncome)

	// Transaction feed
	protected.GET("/transactions", transactionHandler.GetTransactions)

	// Monthly analysis
	protected.GET("/analysis", analysisHandler.GetMonthlyAnalysis)

	// Notification routes
	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.GetWelfareNotifications)
	notifications.GET("/date", notificationHandler.GetWelfareNotificationsByDate)
	notifications.POST("", notificationHandler.CreateNotification)
	notifications.PUT("/:id", notificationHandler.UpdateNotification)
	notifications.DELETE("/:id", notificationHandler.DeleteNotification)
	notifications.GET("/transactions/:userid", notificationHandler.GetTransactionNotifications)
	notifications.POST("/check-budget", notificationHandler.CheckBudget)

	// Websocket subscription for notification events
	protected.GET("/ws", wsHandler.Subscribe)

	log.Infof("Starting Duitku backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
