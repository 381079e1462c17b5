// Package routes defines the API routing configuration. It wires the
// repositories, services and handlers together and registers every route
// with its middleware.
package routes

import (
	"credittransfer/internal/billing"
	"credittransfer/internal/config"
	"credittransfer/internal/events"
	"credittransfer/internal/handlers"
	"credittransfer/internal/messages"
	"credittransfer/internal/middleware"
	"credittransfer/internal/repositories"
	"credittransfer/internal/repositories/cache"
	"credittransfer/internal/services/rules"
	"credittransfer/internal/services/transfer"
	"credittransfer/internal/services/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires the full dependency graph and registers all routes.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheService *cache.CacheService, gateway billing.Gateway, publisher events.Publisher, cfg *config.Config) {
	// Repositories
	ruleStore := repositories.NewRuleStore(db)
	configStore := repositories.NewConfigStore(db)
	txLog := repositories.NewTransactionLog(db)

	// Services, in dependency order
	ruleEngine := rules.NewEngine(ruleStore, cacheService)
	validator := validation.NewService(ruleEngine, configStore, gateway, txLog, cfg)
	catalog := messages.NewCatalog()
	transferService := transfer.NewService(validator, gateway, txLog, publisher, catalog, nil, cfg)

	// Handlers
	transferHandler := handlers.NewTransferHandler(transferService, validator, catalog, cfg)
	ruleHandler := handlers.NewRuleHandler(ruleStore, cacheService)
	healthHandler := handlers.NewHealthHandler(db, cacheService)

	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")
	api.Post("/transfer", transferHandler.TransferCredit)
	api.Post("/transfer/no-pin", transferHandler.TransferCreditWithoutPin)
	api.Post("/transfer/adjustment", transferHandler.TransferCreditWithAdjustmentReason)
	api.Post("/transfer/validate", transferHandler.ValidateTransferInputs)
	api.Get("/denominations", transferHandler.GetDenominations)

	// Rule administration, JWT-guarded
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminOnly)
	admin.Get("/rules", ruleHandler.ListRules)
	admin.Post("/rules", ruleHandler.UpsertRule)
	admin.Delete("/rules/:id", ruleHandler.DeactivateRule)
}
