package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/finance-tracker/internal/budget"
	budgetPostgres "github.com/frahmantamala/finance-tracker/internal/budget/postgres"
	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/finance-tracker/internal/category/postgres"
	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/frahmantamala/finance-tracker/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/finance-tracker/internal/dashboard/postgres"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	expensePostgres "github.com/frahmantamala/finance-tracker/internal/expense/postgres"
	"github.com/frahmantamala/finance-tracker/internal/testutil"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("Dashboard Service", func() {
	var (
		ctx        context.Context
		categories *category.Service
		expenses   *expense.Service
		budgets    *budget.Service
		service    *dashboard.Service
		food       *category.Category
		travel     *category.Category
	)

	const (
		alice int64 = 1
		bob   int64 = 2
	)

	reference := calendar.Date(2024, time.June, 15)

	spend := func(userID int64, categoryID *int64, value, date string) *expense.Expense {
		d := decimal.RequireFromString(value)
		exp, err := expenses.Create(ctx, userID, expense.CreateExpenseDTO{
			Amount: &d, Description: "spend " + date, CategoryID: categoryID, Date: date,
		})
		Expect(err).NotTo(HaveOccurred())
		return exp
	}

	BeforeEach(func() {
		ctx = context.Background()
		db, err := testutil.NewSQLiteDB()
		Expect(err).NotTo(HaveOccurred())
		sqlxDB, err := testutil.NewSQLX(db)
		Expect(err).NotTo(HaveOccurred())

		logger := testutil.QuietLogger()
		categories = category.NewService(categoryPostgres.NewCategoryRepository(db), logger)
		expenses = expense.NewService(expensePostgres.NewExpenseRepository(db), categories, time.UTC, logger)
		budgets = budget.NewService(budgetPostgres.NewBudgetRepository(db), categories, budget.NewEvaluator(expenses), logger)
		service = dashboard.NewService(dashboardPostgres.NewDashboardRepository(sqlxDB), expenses, budgets, time.UTC, logger).
			WithClock(func() time.Time { return time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC) })

		food, err = categories.Create(ctx, alice, category.CreateCategoryDTO{Name: "Food"})
		Expect(err).NotTo(HaveOccurred())
		travel, err = categories.Create(ctx, alice, category.CreateCategoryDTO{Name: "Travel"})
		Expect(err).NotTo(HaveOccurred())
	})

	It("returns zeros and empty sections for a user without data", func() {
		summary, err := service.Summary(ctx, bob, reference)
		Expect(err).NotTo(HaveOccurred())
		Expect(money.Format(summary.MonthTotal)).To(Equal("0.00"))
		Expect(summary.Breakdown).To(BeEmpty())
		Expect(summary.Recent).To(BeEmpty())
		Expect(summary.Trend).To(BeEmpty())
		Expect(summary.Budgets).To(BeEmpty())
	})

	Describe("with data", func() {
		var oldest *expense.Expense

		BeforeEach(func() {
			spend(alice, &food.ID, "10.00", "2024-06-01")
			spend(alice, &food.ID, "5.50", "2024-06-15")
			spend(alice, &travel.ID, "15.50", "2024-06-30")
			spend(alice, nil, "3.00", "2024-06-10")
			spend(alice, &food.ID, "7.00", "2024-05-31")
			spend(alice, &food.ID, "1.00", "2024-04-01")
			spend(alice, &food.ID, "1.00", "2024-04-02")
			spend(alice, &food.ID, "1.00", "2024-04-03")
			spend(alice, &food.ID, "1.00", "2023-12-18")
			oldest = spend(alice, &food.ID, "100.00", "2023-12-17")
			spend(alice, &food.ID, "2.00", "2024-07-03")
			spend(bob, nil, "50.00", "2024-06-05")

			for _, dto := range []budget.CreateBudgetDTO{
				{CategoryID: &food.ID, Amount: amount("100.00"), Month: "2024-06"},
				{CategoryID: &food.ID, Amount: amount("40.00"), Month: "2024-05"},
				{CategoryID: &food.ID, Amount: amount("500.00")},
			} {
				_, err := budgets.Create(ctx, alice, dto)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("totals the whole reference month", func() {
			summary, err := service.Summary(ctx, alice, reference)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Month).To(Equal(calendar.NewMonth(2024, time.June)))
			Expect(money.Format(summary.MonthTotal)).To(Equal("34.00"))
		})

		It("breaks the month down by category", func() {
			summary, err := service.Summary(ctx, alice, reference)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Breakdown).To(HaveLen(3))

			Expect(*summary.Breakdown[0].Name).To(Equal("Food"))
			Expect(money.Format(summary.Breakdown[0].Total)).To(Equal("15.50"))
			Expect(*summary.Breakdown[1].Name).To(Equal("Travel"))
			Expect(money.Format(summary.Breakdown[1].Total)).To(Equal("15.50"))
			Expect(summary.Breakdown[2].Name).To(BeNil())
			Expect(summary.Breakdown[2].CategoryID).To(BeNil())
			Expect(money.Format(summary.Breakdown[2].Total)).To(Equal("3.00"))
		})

		It("lists the ten most recent expenses", func() {
			summary, err := service.Summary(ctx, alice, reference)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Recent).To(HaveLen(expense.RecentLimit))
			Expect(summary.Recent[0].Date).To(Equal(calendar.Date(2024, time.July, 3)))
			for _, e := range summary.Recent {
				Expect(e.ID).NotTo(Equal(oldest.ID))
			}
		})

		It("trends the last 180 days by month without an upper bound", func() {
			summary, err := service.Summary(ctx, alice, reference)
			Expect(err).NotTo(HaveOccurred())

			got := map[string]string{}
			months := []string{}
			for _, row := range summary.Trend {
				got[row.Month.String()] = money.Format(row.Total)
				months = append(months, row.Month.String())
			}
			Expect(months).To(Equal([]string{"2023-12", "2024-04", "2024-05", "2024-06", "2024-07"}))
			Expect(got).To(Equal(map[string]string{
				"2023-12": "1.00",
				"2024-04": "3.00",
				"2024-05": "7.00",
				"2024-06": "34.00",
				"2024-07": "2.00",
			}))
		})

		It("includes only budgets for exactly the reference month", func() {
			summary, err := service.Summary(ctx, alice, reference)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Budgets).To(HaveLen(1))
			Expect(money.Format(summary.Budgets[0].Spent)).To(Equal("15.50"))
			Expect(money.Format(summary.Budgets[0].Remaining)).To(Equal("84.50"))
		})

		It("is served over HTTP with today as the default date", func() {
			handler := dashboard.NewHandler(&transport.BaseHandler{Logger: testutil.QuietLogger()}, service)

			w := httptest.NewRecorder()
			handler.GetSummary(w, testutil.NewRequest(http.MethodGet, "/dashboard", nil, alice, nil))
			Expect(w.Code).To(Equal(http.StatusOK))

			var body dashboard.SummaryResponse
			Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
			Expect(body.Date).To(Equal("2024-06-15"))
			Expect(body.MonthTotal).To(Equal("34.00"))
			Expect(body.CategoryBreakdown[2].Category).To(BeNil())
			Expect(body.Budgets).To(HaveLen(1))

			w = httptest.NewRecorder()
			handler.GetSummary(w, testutil.NewRequest(http.MethodGet, "/dashboard?date=2024-05-20", nil, alice, nil))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
			Expect(body.MonthTotal).To(Equal("7.00"))

			w = httptest.NewRecorder()
			handler.GetSummary(w, testutil.NewRequest(http.MethodGet, "/dashboard?date=soon", nil, alice, nil))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
