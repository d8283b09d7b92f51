package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logmam/logmam-api/internal/application/analytics"
	"github.com/logmam/logmam-api/internal/application/assistant"
	"github.com/logmam/logmam-api/internal/application/auth"
	"github.com/logmam/logmam-api/internal/application/mutation"
	"github.com/logmam/logmam-api/internal/infrastructure/pdf"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	Mutations *mutation.Service
	Auth      *auth.Service
	Analytics *analytics.Service
	Assistant *assistant.Service
	PDF       *pdf.ReportGenerator
	JWTSecret string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth e entrada por link de compartilhamento (públicas)
	authHandler := NewAuthHandler(deps.Auth)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/share/enter", authHandler.EnterShare)

	// Rotas protegidas (Bearer Token; sessões de convidado são somente leitura)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/share/link", authHandler.ShareLink)

	// Filme stretch
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.Mutations, deps.PDF)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/export", transactionHandler.Export)
	transactions.Post("/", transactionHandler.Create)
	transactions.Put("/:id", transactionHandler.Update)
	transactions.Delete("/:id", transactionHandler.Delete)
	transactions.Delete("/", transactionHandler.Clear)

	// Paletes
	pallets := protected.Group("/pallets")
	palletHandler := NewPalletHandler(deps.Mutations, deps.PDF)
	pallets.Get("/", palletHandler.List)
	pallets.Get("/export", palletHandler.Export)
	pallets.Post("/", palletHandler.Create)
	pallets.Put("/:id", palletHandler.Update)
	pallets.Delete("/:id", palletHandler.Delete)
	pallets.Delete("/", palletHandler.Clear)

	// Ocorrências
	ocorrencias := protected.Group("/ocorrencias")
	ocorrenciaHandler := NewOcorrenciaHandler(deps.Mutations, deps.PDF)
	ocorrencias.Get("/", ocorrenciaHandler.List)
	ocorrencias.Get("/export", ocorrenciaHandler.Export)
	ocorrencias.Post("/", ocorrenciaHandler.Create)
	ocorrencias.Put("/:id", ocorrenciaHandler.Update)
	ocorrencias.Delete("/:id", ocorrenciaHandler.Delete)

	// Usuários
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.Mutations)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Dashboards, busca e notificações
	dashboardHandler := NewDashboardHandler(deps.Analytics, deps.Mutations)
	dashboards := protected.Group("/dashboards")
	dashboards.Get("/stretch", dashboardHandler.Stretch)
	dashboards.Get("/pallets", dashboardHandler.Pallets)
	dashboards.Get("/ocorrencias", dashboardHandler.Ocorrencias)
	dashboards.Get("/general", dashboardHandler.General)
	protected.Get("/search", dashboardHandler.Search)
	protected.Get("/notifications", dashboardHandler.Notifications)

	// Assistente
	assistantHandler := NewAssistantHandler(deps.Assistant)
	protected.Post("/assistant/chat", assistantHandler.Chat)
}
