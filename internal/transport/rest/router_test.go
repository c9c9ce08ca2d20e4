package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/auth"
	"github.com/frahmantamala/finance-tracker/internal/budget"
	budgetPostgres "github.com/frahmantamala/finance-tracker/internal/budget/postgres"
	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/finance-tracker/internal/category/postgres"
	"github.com/frahmantamala/finance-tracker/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/finance-tracker/internal/dashboard/postgres"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	expensePostgres "github.com/frahmantamala/finance-tracker/internal/expense/postgres"
	"github.com/frahmantamala/finance-tracker/internal/testutil"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/internal/transport/rest"
	"github.com/frahmantamala/finance-tracker/internal/transport/swagger"
	"github.com/frahmantamala/finance-tracker/internal/user"
	userPostgres "github.com/frahmantamala/finance-tracker/internal/user/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rest Suite")
}

var _ = Describe("Router", func() {
	var router *chi.Mux

	BeforeEach(func() {
		db, err := testutil.NewSQLiteDB()
		Expect(err).NotTo(HaveOccurred())
		readDB, err := testutil.NewSQLX(db)
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())

		lg := testutil.QuietLogger()
		clock := func() time.Time { return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC) }

		users := userPostgres.NewUserRepository(db)
		authService := auth.NewService(users, auth.NewJWTTokenGenerator(internal.SecurityConfig{
			AccessTokenSecret:    "router-access-secret-router-access-secret",
			RefreshTokenSecret:   "router-refresh-secret-router-refresh-secret",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: time.Hour,
		}), bcrypt.MinCost, lg)
		categories := category.NewService(categoryPostgres.NewCategoryRepository(db), lg)
		expenses := expense.NewService(expensePostgres.NewExpenseRepository(db), categories, time.UTC, lg).WithClock(clock)
		budgets := budget.NewService(budgetPostgres.NewBudgetRepository(db), categories, budget.NewEvaluator(expenses), lg)
		summaries := dashboard.NewService(dashboardPostgres.NewDashboardRepository(readDB), expenses, budgets, time.UTC, lg).WithClock(clock)

		spec, err := swagger.LoadSpec(context.Background(), "../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())

		base := transport.NewBaseHandler(lg)
		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, sqlDB, rest.Handlers{
			Auth:      auth.NewHandler(base, authService),
			User:      user.NewHandler(base, user.NewService(users, lg)),
			Category:  category.NewHandler(base, categories),
			Expense:   expense.NewHandler(base, expenses),
			Budget:    budget.NewHandler(base, budgets),
			Dashboard: dashboard.NewHandler(base, summaries),
		}, authService, spec, lg)
	})

	call := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		var payload bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&payload).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &payload)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder, dst interface{}) {
		ExpectWithOffset(1, json.NewDecoder(w.Body).Decode(dst)).To(Succeed())
	}

	register := func(username string) string {
		w := call(http.MethodPost, "/api/v1/auth/register", "", map[string]string{"username": username, "password": "long-enough"})
		ExpectWithOffset(1, w.Code).To(Equal(http.StatusCreated))
		var body auth.RegisterResponse
		decode(w, &body)
		return body.Tokens.AccessToken
	}

	It("serves health, ping and the API document without a token", func() {
		Expect(call(http.MethodGet, "/api/v1/ping", "", nil).Code).To(Equal(http.StatusOK))
		Expect(call(http.MethodGet, "/api/v1/health", "", nil).Code).To(Equal(http.StatusOK))
		Expect(call(http.MethodGet, "/openapi.yml", "", nil).Code).To(Equal(http.StatusOK))
	})

	It("tags every response with a trace id", func() {
		w := call(http.MethodGet, "/api/v1/ping", "", nil)
		Expect(w.Header().Get("X-Trace-ID")).NotTo(BeEmpty())
	})

	It("rejects protected routes without a valid token", func() {
		Expect(call(http.MethodGet, "/api/v1/categories", "", nil).Code).To(Equal(http.StatusUnauthorized))
		Expect(call(http.MethodGet, "/api/v1/dashboard", "garbage", nil).Code).To(Equal(http.StatusUnauthorized))
	})

	It("logs in and resolves the current user", func() {
		register("alice")

		w := call(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "alice", "password": "long-enough"})
		Expect(w.Code).To(Equal(http.StatusOK))
		var tokens auth.AuthTokens
		decode(w, &tokens)

		w = call(http.MethodGet, "/api/v1/users/me", tokens.AccessToken, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var me user.UserResponse
		decode(w, &me)
		Expect(me.Username).To(Equal("alice"))

		Expect(call(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "alice", "password": "nope-nope"}).Code).
			To(Equal(http.StatusUnauthorized))
	})

	It("runs a month of bookkeeping end to end and keeps users apart", func() {
		alice := register("alice")
		bob := register("bob")

		w := call(http.MethodPost, "/api/v1/categories", alice, map[string]string{"name": "Food"})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var food category.CategoryResponse
		decode(w, &food)

		for _, e := range []map[string]interface{}{
			{"amount": "12.50", "description": "Lunch", "category_id": food.ID, "date": "2024-06-03"},
			{"amount": "7.25", "description": "Coffee beans", "category_id": food.ID, "date": "2024-06-10"},
			{"amount": "30", "description": "Taxi", "date": "2024-05-28"},
		} {
			Expect(call(http.MethodPost, "/api/v1/expenses", alice, e).Code).To(Equal(http.StatusCreated))
		}

		w = call(http.MethodPost, "/api/v1/budgets", alice, map[string]interface{}{"category_id": food.ID, "amount": "50.00", "month": "2024-06"})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var created budget.BudgetResponse
		decode(w, &created)
		Expect(created.Spent).To(Equal("19.75"))
		Expect(created.Remaining).To(Equal("30.25"))

		w = call(http.MethodPost, "/api/v1/budgets", alice, map[string]interface{}{"category_id": food.ID, "amount": "60.00", "month": "2024-06-01"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		w = call(http.MethodGet, "/api/v1/expenses?start_date=2024-06-01&end_date=2024-06-30", alice, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var listed expense.ExpenseListResponse
		decode(w, &listed)
		Expect(listed.Count).To(Equal(2))
		Expect(listed.Total).To(Equal("19.75"))

		w = call(http.MethodGet, "/api/v1/dashboard", alice, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var summary dashboard.SummaryResponse
		decode(w, &summary)
		Expect(summary.MonthTotal).To(Equal("19.75"))
		Expect(summary.RecentExpenses).To(HaveLen(3))
		Expect(summary.MonthlyTrend).To(HaveLen(2))
		Expect(summary.Budgets).To(HaveLen(1))

		foodPath := "/api/v1/categories/" + strconv.FormatInt(food.ID, 10)
		Expect(call(http.MethodGet, foodPath, bob, nil).Code).To(Equal(http.StatusNotFound))
		Expect(call(http.MethodDelete, foodPath, bob, nil).Code).To(Equal(http.StatusNotFound))

		w = call(http.MethodGet, "/api/v1/dashboard", bob, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		decode(w, &summary)
		Expect(summary.MonthTotal).To(Equal("0.00"))

		Expect(call(http.MethodDelete, foodPath, alice, nil).Code).To(Equal(http.StatusNoContent))

		w = call(http.MethodGet, "/api/v1/budgets", alice, nil)
		var remaining budget.BudgetsResponse
		decode(w, &remaining)
		Expect(remaining.Budgets).To(BeEmpty())

		w = call(http.MethodGet, "/api/v1/expenses", alice, nil)
		decode(w, &listed)
		Expect(listed.Count).To(Equal(3))
		for _, e := range listed.Expenses {
			Expect(e.CategoryID).To(BeNil())
		}
	})
})
