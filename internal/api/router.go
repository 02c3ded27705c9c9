package api

import (
	"github.com/MR-PROSTER/Expensync/docs"
	"github.com/MR-PROSTER/Expensync/internal/api/handlers"
	"github.com/MR-PROSTER/Expensync/internal/models"
	"github.com/MR-PROSTER/Expensync/pkg/auth"
	"github.com/MR-PROSTER/Expensync/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Document  *handlers.DocumentHandler
	Expense   *handlers.ExpenseHandler
	AI        *handlers.AIHandler
	Chat      *handlers.ChatHandler
	Analytics *handlers.AnalyticsHandler
	Trip      *handlers.TripHandler
}

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	uploadDir string,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Importing docs registers the swagger doc via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Static("/uploads", uploadDir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))
	adminOnly := middleware.RequireRole(appLogger, string(models.RoleAdmin))

	documents := protected.Group("/documents")
	documents.Post("/upload", h.Document.UploadDocument)
	documents.Get("", h.Document.ListDocuments)
	documents.Post("/:id/extract", h.Document.ExtractText)

	expenses := protected.Group("/expenses")
	expenses.Post("", h.Expense.CreateExpense)
	expenses.Get("", h.Expense.ListExpenses)
	expenses.Get("/:id", h.Expense.GetExpense)
	expenses.Post("/:id/approve", adminOnly, h.Expense.ApproveExpense)
	expenses.Post("/:id/reject", adminOnly, h.Expense.RejectExpense)

	trips := protected.Group("/trips")
	trips.Post("", h.Trip.CreateTrip)
	trips.Get("", h.Trip.ListTrips)

	protected.Post("/ocr", h.AI.ParseReceipt)
	protected.Post("/fraud-check", h.AI.FraudCheck)
	protected.Get("/fraud-check/:expense_id", h.AI.GetFraudCheck)

	protected.Post("/chat", h.Chat.Chat)
	protected.Post("/chat/index/delete", h.Chat.DeleteIndex)

	analytics := protected.Group("/analytics")
	analytics.Get("/trip", h.Analytics.TripAnalytics)
	analytics.Post("/trip", h.Analytics.TripAnalytics)
	analytics.Get("/dashboard", h.Analytics.Dashboard)
	analytics.Get("/all", adminOnly, h.Analytics.AllExpensesAnalytics)
	analytics.Post("/all", adminOnly, h.Analytics.AllExpensesAnalytics)

	return app
}
