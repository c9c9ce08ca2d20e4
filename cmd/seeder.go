package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/finance-tracker/internal/auth"
	"github.com/frahmantamala/finance-tracker/internal/budget"
	"github.com/frahmantamala/finance-tracker/internal/category"
	budgetDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/budget"
	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const (
	demoUsername = "demo"
	demoPassword = "demo-password"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Create a demo user with categories, three months of expenses and budgets for local development.`,
	Run: func(cmd *cobra.Command, args []string) {
		deps, err := initializeDependencies()
		if err != nil {
			log.Fatalf("failed to initialize dependencies: %v", err)
		}
		defer deps.Close()

		if err := seed(context.Background(), deps); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear the demo user's data before seeding")
}

func seed(ctx context.Context, deps *Dependencies) error {
	userID, created, err := ensureDemoUser(ctx, deps)
	if err != nil {
		return err
	}

	if !created && !clearData {
		fmt.Println("demo user already exists; run with --clear to reseed its data")
		return nil
	}
	if clearData {
		if err := clearUserData(ctx, deps.DB, userID); err != nil {
			return err
		}
		fmt.Println("Cleared existing data for", demoUsername)
	}

	categories := []category.CreateCategoryDTO{
		{Name: "Groceries", Description: "Supermarket and food shopping"},
		{Name: "Transport", Description: "Fuel, tickets and taxis"},
		{Name: "Dining", Description: "Restaurants and takeaway"},
		{Name: "Utilities", Description: "Power, water and internet"},
	}
	ids := make(map[string]int64, len(categories))
	for _, dto := range categories {
		c, err := deps.Categories.Create(ctx, userID, dto)
		if err != nil {
			return fmt.Errorf("create category %s: %w", dto.Name, err)
		}
		ids[c.Name] = c.ID
		fmt.Printf("Seeded category: %s\n", c.Name)
	}

	today := deps.Expenses.Today()
	month := calendar.MonthOf(today)
	for offset := 0; offset < 3; offset++ {
		first := month.FirstDay().AddDate(0, -offset, 0)
		entries := []struct {
			category string
			amount   string
			day      int
			what     string
			method   string
		}{
			{"Groceries", "84.20", 2, "Weekly shop", expense.PaymentMethodDebitCard},
			{"Transport", "45.00", 5, "Monthly pass", expense.PaymentMethodOther},
			{"Dining", "32.50", 9, "Dinner out", expense.PaymentMethodCreditCard},
			{"Groceries", "61.75", 16, "Weekly shop", expense.PaymentMethodDebitCard},
			{"Utilities", "120.00", 20, "Electricity", expense.PaymentMethodBankTransfer},
			{"", "12.00", 24, "Parking", expense.PaymentMethodCash},
		}
		for _, e := range entries {
			date := first.AddDate(0, 0, e.day-1)
			if date.After(today) {
				continue
			}
			amount := decimal.RequireFromString(e.amount)
			dto := expense.CreateExpenseDTO{
				Amount:        &amount,
				Description:   e.what,
				Date:          calendar.FormatDate(date),
				PaymentMethod: e.method,
			}
			if id, ok := ids[e.category]; ok {
				dto.CategoryID = &id
			}
			if _, err := deps.Expenses.Create(ctx, userID, dto); err != nil {
				return fmt.Errorf("create expense %s: %w", e.what, err)
			}
		}
	}
	fmt.Println("Seeded three months of expenses")

	budgets := []struct {
		category string
		amount   string
		month    string
	}{
		{"Groceries", "300.00", month.String()},
		{"Dining", "100.00", month.String()},
		{"Transport", "50.00", ""},
	}
	for _, b := range budgets {
		id := ids[b.category]
		amount := decimal.RequireFromString(b.amount)
		if _, err := deps.Budgets.Create(ctx, userID, budget.CreateBudgetDTO{CategoryID: &id, Amount: &amount, Month: b.month}); err != nil {
			return fmt.Errorf("create budget for %s: %w", b.category, err)
		}
	}
	fmt.Println("Seeded budgets")

	fmt.Printf("Log in as %q with password %q\n", demoUsername, demoPassword)
	return nil
}

func ensureDemoUser(ctx context.Context, deps *Dependencies) (int64, bool, error) {
	existing, err := deps.Users.GetByUsername(ctx, demoUsername)
	if err != nil {
		return 0, false, err
	}
	if existing != nil {
		return existing.ID, false, nil
	}

	u, _, err := deps.Auth.Register(ctx, auth.RegisterDTO{
		Username: demoUsername,
		Email:    "demo@example.com",
		Password: demoPassword,
	})
	if err != nil {
		return 0, false, fmt.Errorf("create demo user: %w", err)
	}
	fmt.Println("Seeded demo user:", demoUsername)
	return u.ID, true, nil
}

func clearUserData(ctx context.Context, db *gorm.DB, userID int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&budgetDatamodel.Budget{}, &expenseDatamodel.Expense{}, &categoryDatamodel.Category{}} {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

