package budget_test

import (
	"context"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/budget"
	budgetPostgres "github.com/frahmantamala/finance-tracker/internal/budget/postgres"
	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/finance-tracker/internal/category/postgres"
	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	expensePostgres "github.com/frahmantamala/finance-tracker/internal/expense/postgres"
	"github.com/frahmantamala/finance-tracker/internal/testutil"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("Budget Service", func() {
	var (
		ctx        context.Context
		categories *category.Service
		expenses   *expense.Service
		service    *budget.Service
		food       *category.Category
		bobs       *category.Category
	)

	const (
		alice int64 = 1
		bob   int64 = 2
	)

	amount := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	spend := func(userID int64, categoryID *int64, value, date string) {
		_, err := expenses.Create(ctx, userID, expense.CreateExpenseDTO{
			Amount: amount(value), Description: "spend", CategoryID: categoryID, Date: date,
		})
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		ctx = context.Background()
		db, err := testutil.NewSQLiteDB()
		Expect(err).NotTo(HaveOccurred())

		logger := testutil.QuietLogger()
		categories = category.NewService(categoryPostgres.NewCategoryRepository(db), logger)
		expenses = expense.NewService(expensePostgres.NewExpenseRepository(db), categories, time.UTC, logger)
		service = budget.NewService(
			budgetPostgres.NewBudgetRepository(db),
			categories,
			budget.NewEvaluator(expenses),
			logger,
		)

		food, err = categories.Create(ctx, alice, category.CreateCategoryDTO{Name: "Food"})
		Expect(err).NotTo(HaveOccurred())
		bobs, err = categories.Create(ctx, bob, category.CreateCategoryDTO{Name: "Bob's"})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("stores the month and returns derived fields", func() {
			spend(alice, &food.ID, "40.00", "2024-03-02")
			spend(alice, &food.ID, "15.50", "2024-03-31")
			spend(alice, &food.ID, "99.00", "2024-04-01")
			spend(alice, nil, "12.00", "2024-03-10")
			spend(bob, &bobs.ID, "70.00", "2024-03-10")

			ev, err := service.Create(ctx, alice, budget.CreateBudgetDTO{
				CategoryID: &food.ID, Amount: amount("100.00"), Month: "2024-03-15",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ev.Month).To(Equal(calendar.NewNullMonth(calendar.NewMonth(2024, time.March))))
			Expect(money.Format(ev.Spent)).To(Equal("55.50"))
			Expect(money.Format(ev.Remaining)).To(Equal("44.50"))
		})

		It("rejects a second budget for the same category and month", func() {
			dto := budget.CreateBudgetDTO{CategoryID: &food.ID, Amount: amount("10"), Month: "2024-03"}
			_, err := service.Create(ctx, alice, dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, alice, dto)
			Expect(err).To(MatchError(budget.ErrDuplicateBudget))
			Expect(internal.IsValidation(err)).To(BeTrue())
		})

		// A unique index alone would allow any number of month-less rows because NULLs never
		// compare equal. Treating "no month" as a value makes a second one a duplicate.
		It("allows only one month-less budget per category", func() {
			dto := budget.CreateBudgetDTO{CategoryID: &food.ID, Amount: amount("10")}
			_, err := service.Create(ctx, alice, dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, alice, dto)
			Expect(err).To(MatchError(budget.ErrDuplicateBudget))
		})

		It("allows the same month for different categories", func() {
			travel, err := categories.Create(ctx, alice, category.CreateCategoryDTO{Name: "Travel"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, alice, budget.CreateBudgetDTO{CategoryID: &food.ID, Amount: amount("1"), Month: "2024-03"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(ctx, alice, budget.CreateBudgetDTO{CategoryID: &travel.ID, Amount: amount("1"), Month: "2024-03"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects another user's category", func() {
			_, err := service.Create(ctx, alice, budget.CreateBudgetDTO{CategoryID: &bobs.ID, Amount: amount("10")})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Field).To(Equal("category_id"))
		})

		DescribeTable("validates the payload",
			func(dto func() budget.CreateBudgetDTO, field string) {
				_, err := service.Create(ctx, alice, dto())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
				Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Field).To(Equal(field))
			},
			Entry("missing category", func() budget.CreateBudgetDTO {
				return budget.CreateBudgetDTO{Amount: amount("1")}
			}, "category_id"),
			Entry("missing amount", func() budget.CreateBudgetDTO {
				return budget.CreateBudgetDTO{CategoryID: &food.ID}
			}, "amount"),
			Entry("amount precision", func() budget.CreateBudgetDTO {
				return budget.CreateBudgetDTO{CategoryID: &food.ID, Amount: amount("1.001")}
			}, "amount"),
			Entry("bad month", func() budget.CreateBudgetDTO {
				return budget.CreateBudgetDTO{CategoryID: &food.ID, Amount: amount("1"), Month: "March"}
			}, "month"),
		)
	})

	Describe("reads", func() {
		var march, april, undated *budget.Evaluation

		BeforeEach(func() {
			var err error
			undated, err = service.Create(ctx, alice, budget.CreateBudgetDTO{CategoryID: &food.ID, Amount: amount("300")})
			Expect(err).NotTo(HaveOccurred())
			march, err = service.Create(ctx, alice, budget.CreateBudgetDTO{CategoryID: &food.ID, Amount: amount("100"), Month: "2024-03"})
			Expect(err).NotTo(HaveOccurred())
			april, err = service.Create(ctx, alice, budget.CreateBudgetDTO{CategoryID: &food.ID, Amount: amount("200"), Month: "2024-04"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("lists newest month first with month-less budgets last", func() {
			list, err := service.List(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(3))
			Expect(list[0].ID).To(Equal(april.ID))
			Expect(list[1].ID).To(Equal(march.ID))
			Expect(list[2].ID).To(Equal(undated.ID))
		})

		It("recomputes spending when expenses change", func() {
			spend(alice, &food.ID, "130.00", "2024-03-20")

			ev, err := service.Get(ctx, alice, march.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(money.Format(ev.Spent)).To(Equal("130.00"))
			Expect(money.Format(ev.Remaining)).To(Equal("-30.00"))

			ev, err = service.Get(ctx, alice, undated.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(money.Format(ev.Spent)).To(Equal("0.00"))
		})

		It("matches the reference month exactly", func() {
			list, err := service.ListForMonth(ctx, alice, calendar.NewMonth(2024, time.March))
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ID).To(Equal(march.ID))
		})

		It("hides budgets from other users", func() {
			_, err := service.Get(ctx, bob, march.ID)
			Expect(err).To(MatchError(internal.ErrBudgetNotFound))
			Expect(service.Delete(ctx, bob, march.ID)).To(MatchError(internal.ErrBudgetNotFound))

			list, err := service.List(ctx, bob)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
		})

		It("disappears with its category", func() {
			Expect(categories.Delete(ctx, alice, food.ID)).To(Succeed())
			list, err := service.List(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
		})

		It("deletes", func() {
			Expect(service.Delete(ctx, alice, march.ID)).To(Succeed())
			_, err := service.Get(ctx, alice, march.ID)
			Expect(err).To(MatchError(internal.ErrBudgetNotFound))
		})
	})
})
