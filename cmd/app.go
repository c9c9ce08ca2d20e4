package cmd

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/auth"
	"github.com/frahmantamala/finance-tracker/internal/budget"
	budgetPostgres "github.com/frahmantamala/finance-tracker/internal/budget/postgres"
	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/finance-tracker/internal/category/postgres"
	"github.com/frahmantamala/finance-tracker/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/finance-tracker/internal/dashboard/postgres"
	"github.com/frahmantamala/finance-tracker/internal/database"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	expensePostgres "github.com/frahmantamala/finance-tracker/internal/expense/postgres"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/internal/transport/rest"
	"github.com/frahmantamala/finance-tracker/internal/user"
	userPostgres "github.com/frahmantamala/finance-tracker/internal/user/postgres"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
	"gorm.io/gorm"
)

// Dependencies holds the wired services shared by the server and seed commands.
type Dependencies struct {
	Config *internal.Config
	DB     *gorm.DB
	Logger *slog.Logger

	Users      *userPostgres.UserRepository
	Auth       *auth.Service
	User       *user.Service
	Categories *category.Service
	Expenses   *expense.Service
	Budgets    *budget.Service
	Dashboard  *dashboard.Service
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	loc, err := cfg.App.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Database.Driver == database.DriverSQLite {
		if err := database.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}

	readDB, err := database.SQLX(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize read model: %w", err)
	}

	users := userPostgres.NewUserRepository(db)
	categories := category.NewService(categoryPostgres.NewCategoryRepository(db), lg)
	expenses := expense.NewService(expensePostgres.NewExpenseRepository(db), categories, loc, lg)
	budgets := budget.NewService(budgetPostgres.NewBudgetRepository(db), categories, budget.NewEvaluator(expenses), lg)

	return &Dependencies{
		Config:     cfg,
		DB:         db,
		Logger:     lg,
		Users:      users,
		Auth:       auth.NewService(users, auth.NewJWTTokenGenerator(cfg.Security), cfg.Security.BCryptCost, lg),
		User:       user.NewService(users, lg),
		Categories: categories,
		Expenses:   expenses,
		Budgets:    budgets,
		Dashboard:  dashboard.NewService(dashboardPostgres.NewDashboardRepository(readDB), expenses, budgets, loc, lg),
	}, nil
}

func (d *Dependencies) Handlers() rest.Handlers {
	base := transport.NewBaseHandler(d.Logger)
	return rest.Handlers{
		Auth:      auth.NewHandler(base, d.Auth),
		User:      user.NewHandler(base, d.User),
		Category:  category.NewHandler(base, d.Categories),
		Expense:   expense.NewHandler(base, d.Expenses),
		Budget:    budget.NewHandler(base, d.Budgets),
		Dashboard: dashboard.NewHandler(base, d.Dashboard),
	}
}

func (d *Dependencies) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
