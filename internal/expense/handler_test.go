package expense_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/finance-tracker/internal/category/postgres"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	expensePostgres "github.com/frahmantamala/finance-tracker/internal/expense/postgres"
	"github.com/frahmantamala/finance-tracker/internal/testutil"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Expense Handler Integration", func() {
	var (
		handler    *expense.Handler
		categories *category.Service
	)

	const (
		alice int64 = 1
		bob   int64 = 2
	)

	BeforeEach(func() {
		db, err := testutil.NewSQLiteDB()
		Expect(err).NotTo(HaveOccurred())

		slogger := testutil.QuietLogger()
		categories = category.NewService(categoryPostgres.NewCategoryRepository(db), slogger)
		service := expense.NewService(expensePostgres.NewExpenseRepository(db), categories, nil, slogger)
		handler = expense.NewHandler(&transport.BaseHandler{Logger: slogger}, service)
	})

	post := func(userID int64, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.CreateExpense(w, testutil.NewRequest(http.MethodPost, "/expenses", body, userID, nil))
		return w
	}

	It("creates expenses and lists them with a total", func() {
		cat, err := categories.Create(context.Background(), alice, category.CreateCategoryDTO{Name: "Food"})
		Expect(err).NotTo(HaveOccurred())

		w := post(alice, `{"amount": "12.50", "description": "Lunch", "date": "2024-03-02", "category_id": `+strconv.FormatInt(cat.ID, 10)+`}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created expense.ExpenseResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.Amount).To(Equal("12.50"))
		Expect(created.Date).To(Equal("2024-03-02"))
		Expect(created.PaymentMethod).To(Equal("cash"))
		Expect(*created.CategoryID).To(Equal(cat.ID))

		Expect(post(alice, `{"amount": 7.5, "description": "Bus", "date": "2024-03-05"}`).Code).To(Equal(http.StatusCreated))
		Expect(post(bob, `{"amount": "100", "description": "Other", "date": "2024-03-05"}`).Code).To(Equal(http.StatusCreated))

		w = httptest.NewRecorder()
		handler.ListExpenses(w, testutil.NewRequest(http.MethodGet, "/expenses?start_date=2024-03-01&end_date=2024-03-31", nil, alice, nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		var list expense.ExpenseListResponse
		Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
		Expect(list.Count).To(Equal(2))
		Expect(list.Total).To(Equal("20.00"))
		Expect(list.Expenses[0].Description).To(Equal("Bus"))
	})

	It("rejects an amount with three decimal places", func() {
		w := post(alice, `{"amount": "1.500", "description": "x"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring(`"field":"amount"`))
	})

	It("rejects a malformed body", func() {
		Expect(post(alice, `{"amount": `).Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects a bad filter", func() {
		w := httptest.NewRecorder()
		handler.ListExpenses(w, testutil.NewRequest(http.MethodGet, "/expenses?category=abc", nil, alice, nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("hides other users' expenses", func() {
		w := post(bob, `{"amount": "3", "description": "secret"}`)
		var created expense.ExpenseResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		params := map[string]string{"id": strconv.FormatInt(created.ID, 10)}

		w = httptest.NewRecorder()
		handler.GetExpense(w, testutil.NewRequest(http.MethodGet, "/expenses/x", nil, alice, params))
		Expect(w.Code).To(Equal(http.StatusNotFound))

		w = httptest.NewRecorder()
		handler.UpdateExpense(w, testutil.NewRequest(http.MethodPut, "/expenses/x", `{"amount":"1","description":"mine"}`, alice, params))
		Expect(w.Code).To(Equal(http.StatusNotFound))

		w = httptest.NewRecorder()
		handler.DeleteExpense(w, testutil.NewRequest(http.MethodDelete, "/expenses/x", nil, alice, params))
		Expect(w.Code).To(Equal(http.StatusNotFound))

		w = httptest.NewRecorder()
		handler.DeleteExpense(w, testutil.NewRequest(http.MethodDelete, "/expenses/x", nil, bob, params))
		Expect(w.Code).To(Equal(http.StatusNoContent))
	})
})
