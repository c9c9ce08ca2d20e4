package rest

import (
	"database/sql"
	"log/slog"

	"github.com/frahmantamala/finance-tracker/internal/auth"
	"github.com/frahmantamala/finance-tracker/internal/budget"
	"github.com/frahmantamala/finance-tracker/internal/category"
	"github.com/frahmantamala/finance-tracker/internal/dashboard"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/internal/transport/middleware"
	"github.com/frahmantamala/finance-tracker/internal/transport/swagger"
	"github.com/frahmantamala/finance-tracker/internal/user"
	"github.com/go-chi/chi"
)

type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Category  *category.Handler
	Expense   *expense.Handler
	Budget    *budget.Handler
	Dashboard *dashboard.Handler
}

// RegisterAllRoutes mounts the JSON API under /api/v1. Everything except auth, health and the
// API document requires a bearer access token. spec may be nil, in which case the document
// and Swagger UI are not served.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, authorizer middleware.Authorizer, spec *swagger.Spec, logger *slog.Logger) {
	base := transport.NewBaseHandler(logger)
	healthHandler := NewHealthHandler(base, db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	if spec != nil {
		router.Get(swagger.DocumentURL, spec.ServeDocument)
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/ping", healthHandler.Ping)

		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", handlers.Auth.Register)
			ar.Post("/login", handlers.Auth.Login)
			ar.Post("/refresh", handlers.Auth.RefreshToken)
			ar.Post("/logout", handlers.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(middleware.RequireAuth(authorizer, base))

			pr.Get("/users/me", handlers.User.GetCurrentUser)

			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", handlers.Category.GetCategories)
				cr.Post("/", handlers.Category.CreateCategory)
				cr.Get("/{id}", handlers.Category.GetCategory)
				cr.Put("/{id}", handlers.Category.UpdateCategory)
				cr.Delete("/{id}", handlers.Category.DeleteCategory)
			})

			pr.Route("/expenses", func(er chi.Router) {
				er.Get("/", handlers.Expense.ListExpenses)
				er.Post("/", handlers.Expense.CreateExpense)
				er.Get("/{id}", handlers.Expense.GetExpense)
				er.Put("/{id}", handlers.Expense.UpdateExpense)
				er.Delete("/{id}", handlers.Expense.DeleteExpense)
			})

			pr.Route("/budgets", func(br chi.Router) {
				br.Get("/", handlers.Budget.ListBudgets)
				br.Post("/", handlers.Budget.CreateBudget)
				br.Get("/{id}", handlers.Budget.GetBudget)
				br.Delete("/{id}", handlers.Budget.DeleteBudget)
			})

			pr.Get("/dashboard", handlers.Dashboard.GetSummary)
		})
	})
}
