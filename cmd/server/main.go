package main

import (
	"log"
	"strings"

	"validapro-backend/internal/activity"
	"validapro-backend/internal/admin"
	"validapro-backend/internal/auth"
	"validapro-backend/internal/catalog"
	"validapro-backend/internal/config"
	"validapro-backend/internal/dashboard"
	"validapro-backend/internal/database"
	"validapro-backend/internal/models"
	"validapro-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro interno no servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Rotas públicas
	api.Post("/auth/login", auth.LoginHandler(db, cfg))
	api.Get("/products", catalog.ListProductsHandler(db))

	// Rotas autenticadas
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))

	// Gestão de lojas (somente admin)
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Post("/stores", admin.CreateStoreHandler(db))
	adminRoutes.Get("/stores", admin.ListStoresHandler(db))
	adminRoutes.Put("/stores/:id", admin.UpdateStoreHandler(db))
	adminRoutes.Delete("/stores/:id", admin.DeleteStoreHandler(db))

	// O líder cria os usuários da própria loja
	leaderRoutes := protected.Group("/leader")
	leaderRoutes.Use(auth.RequireRole(models.RoleLeader))
	leaderRoutes.Post("/users", admin.CreateStoreUserHandler(db))

	// Catálogo de produtos
	productRoutes := protected.Group("/products")
	productRoutes.Use(auth.RequireRole(models.RoleAdmin, models.RolePromoter))
	productRoutes.Post("/", catalog.CreateProductHandler(db))
	productRoutes.Get("/search", catalog.SearchProductsHandler(db))
	productRoutes.Post("/import", catalog.ImportProductsHandler(db))

	// Estoque (todos os papéis autenticados)
	protected.Post("/stock", stock.UpsertStockHandler(db))
	protected.Get("/stock", stock.ListStockHandler(db))

	// Log de atividades e painel
	protected.Get("/activity", activity.ListActivityHandler(db))
	protected.Get("/dashboard/summary", dashboard.SummaryHandler(db))

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
