package money_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/money"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func TestMoney(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Money Suite")
}

var _ = Describe("Money", func() {
	Describe("Parse", func() {
		DescribeTable("accepted amounts",
			func(input, expected string) {
				d, err := money.Parse(input)
				Expect(err).NotTo(HaveOccurred())
				Expect(money.Format(d)).To(Equal(expected))
			},
			Entry("whole number", "12", "12.00"),
			Entry("two decimals", "12.34", "12.34"),
			Entry("one decimal", "0.5", "0.50"),
			Entry("largest value", "99999999.99", "99999999.99"),
			Entry("negative amount", "-3.25", "-3.25"),
			Entry("surrounding spaces", "  7.10 ", "7.10"),
		)

		DescribeTable("rejected amounts",
			func(input string, expected error) {
				_, err := money.Parse(input)
				Expect(err).To(MatchError(expected))
			},
			Entry("empty", "", money.ErrInvalidAmount),
			Entry("not a number", "abc", money.ErrInvalidAmount),
			Entry("three decimals", "1.234", money.ErrTooManyDecimalPlaces),
			Entry("trailing zero counts as a decimal place", "1.500", money.ErrTooManyDecimalPlaces),
			Entry("nine whole digits", "123456789", money.ErrTooManyWholeDigits),
			Entry("eleven digits overall", "123456789.12", money.ErrTooManyDigits),
			Entry("exponent notation over the limit", "1e9", money.ErrTooManyWholeDigits),
			Entry("huge exponent", "1e3000000", money.ErrTooManyDigits),
			Entry("huge negative exponent", "1e-3000000", money.ErrTooManyDigits),
			Entry("zero with a huge exponent", "0e3000000", money.ErrTooManyDigits),
			Entry("long coefficient", "123456789012345678901234567890", money.ErrTooManyDigits),
		)

		It("rejects a huge exponent without expanding it", func() {
			start := time.Now()
			_, err := money.Parse("1e3000000")
			Expect(err).To(MatchError(money.ErrTooManyDigits))
			Expect(time.Since(start)).To(BeNumerically("<", 100*time.Millisecond))
		})

		It("accepts exponent notation within the limit", func() {
			d, err := money.Parse("1.5e3")
			Expect(err).NotTo(HaveOccurred())
			Expect(money.Format(d)).To(Equal("1500.00"))
		})
	})

	Describe("cents conversion", func() {
		It("round-trips through integer cents", func() {
			d := decimal.RequireFromString("1234.56")
			cents := money.ToCents(d)
			Expect(cents).To(Equal(int64(123456)))
			Expect(money.FromCents(cents).Equal(d)).To(BeTrue())
		})

		It("keeps negative amounts negative", func() {
			Expect(money.ToCents(decimal.RequireFromString("-0.05"))).To(Equal(int64(-5)))
		})
	})

	Describe("Sum", func() {
		It("returns zero for no amounts", func() {
			Expect(money.Format(money.Sum())).To(Equal("0.00"))
		})

		It("adds exactly", func() {
			total := money.Sum(
				decimal.RequireFromString("0.10"),
				decimal.RequireFromString("0.20"),
				decimal.RequireFromString("0.30"),
			)
			Expect(money.Format(total)).To(Equal("0.60"))
		})
	})
})
