package dashboard_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/calendar"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/frahmantamala/finance-tracker/internal/dashboard"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func TestDashboard(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dashboard Suite")
}

func strPtr(s string) *string { return &s }
func idPtr(i int64) *int64    { return &i }

var _ = Describe("Dashboard aggregation", func() {
	Describe("SortBreakdown", func() {
		It("orders by total, then name, with the uncategorised group last", func() {
			rows := []dashboard.CategoryTotal{
				{Total: decimal.RequireFromString("5")},
				{CategoryID: idPtr(2), Name: strPtr("Travel"), Total: decimal.RequireFromString("5")},
				{CategoryID: idPtr(1), Name: strPtr("Food"), Total: decimal.RequireFromString("5")},
				{CategoryID: idPtr(3), Name: strPtr("Rent"), Total: decimal.RequireFromString("900")},
				{CategoryID: idPtr(4), Name: strPtr("Food"), Total: decimal.RequireFromString("5")},
			}
			dashboard.SortBreakdown(rows)

			labels := []string{}
			for _, r := range rows {
				if r.Name == nil {
					labels = append(labels, "<none>")
					continue
				}
				labels = append(labels, *r.Name)
			}
			Expect(labels).To(Equal([]string{"Rent", "Food", "Food", "Travel", "<none>"}))
			Expect(*rows[1].CategoryID).To(Equal(int64(1)))
			Expect(*rows[2].CategoryID).To(Equal(int64(4)))
		})
	})

	Describe("TrendStart", func() {
		It("goes back exactly 180 days regardless of month lengths", func() {
			Expect(dashboard.TrendStart(calendar.Date(2024, time.June, 15))).To(Equal(calendar.Date(2023, time.December, 18)))
			Expect(dashboard.TrendStart(time.Date(2024, time.March, 1, 18, 45, 0, 0, time.UTC))).
				To(Equal(calendar.Date(2023, time.September, 3)))
		})
	})

	Describe("BucketByMonth", func() {
		It("sums per month in ascending order", func() {
			trend := dashboard.BucketByMonth([]dashboard.DatedAmount{
				{Date: calendar.Date(2024, time.March, 3), Amount: decimal.RequireFromString("1.10")},
				{Date: calendar.Date(2023, time.December, 31), Amount: decimal.RequireFromString("4")},
				{Date: calendar.Date(2024, time.March, 30), Amount: decimal.RequireFromString("2.20")},
			})
			Expect(trend).To(HaveLen(2))
			Expect(trend[0].Month).To(Equal(calendar.NewMonth(2023, time.December)))
			Expect(money.Format(trend[0].Total)).To(Equal("4.00"))
			Expect(trend[1].Month).To(Equal(calendar.NewMonth(2024, time.March)))
			Expect(money.Format(trend[1].Total)).To(Equal("3.30"))
		})

		It("returns an empty trend for no amounts", func() {
			Expect(dashboard.BucketByMonth(nil)).To(BeEmpty())
		})
	})
})
