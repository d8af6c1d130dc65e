package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/pkg/collection"
)

// OthersBucket names the bucket that collects every category past the top N.
const OthersBucket = "Others"

var hundred = decimal.NewFromInt(100)

// SalesPoint is one month of completed revenue: {"date": "Mar", "sales": 500}.
type SalesPoint struct {
	Date  string `json:"date"`
	Sales Number `json:"sales"`
}

// CategoryShare is one category bucket as a percentage: {"name", "value"}.
type CategoryShare struct {
	Name  string `json:"name"`
	Value Number `json:"value"`
}

// MonthWindow returns the first instant of each of the n calendar months
// ending with the month of now, oldest first. All times are UTC.
func MonthWindow(now time.Time, n int) []time.Time {
	if n < 1 {
		return nil
	}
	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	months := make([]time.Time, n)
	for i := range months {
		months[i] = current.AddDate(0, i-(n-1), 0)
	}
	return months
}

// monthKey matches the "YYYY-MM" produced by database.MonthExpr.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// FillMonths emits one point per window month, zero where the sparse
// aggregate has no entry.
func FillMonths(months []time.Time, totals []repositories.MonthTotal) []SalesPoint {
	byMonth := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		byMonth[t.Month] = byMonth[t.Month].Add(t.Total)
	}

	return collection.Map(months, func(m time.Time) SalesPoint {
		return SalesPoint{Date: m.Format("Jan"), Sales: NewNumber(byMonth[monthKey(m)])}
	})
}

// BucketTopN keeps the n largest categories and folds the rest into
// OthersBucket, which is left out when it sums to zero. It returns nil when
// the grand total is zero.
func BucketTopN(rows []repositories.CategoryTotal, n int) ([]repositories.CategoryTotal, decimal.Decimal) {
	sorted := append([]repositories.CategoryTotal(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := sorted[i].Total.Cmp(sorted[j].Total); c != 0 {
			return c > 0
		}
		return sorted[i].Name < sorted[j].Name
	})

	grand := collection.Reduce(sorted, decimal.Zero, func(sum decimal.Decimal, r repositories.CategoryTotal) decimal.Decimal {
		return sum.Add(r.Total)
	})
	if !grand.IsPositive() {
		return nil, decimal.Zero
	}

	buckets := append([]repositories.CategoryTotal(nil), collection.Take(sorted, n)...)

	others := collection.Reduce(collection.Skip(sorted, n), decimal.Zero, func(sum decimal.Decimal, r repositories.CategoryTotal) decimal.Decimal {
		return sum.Add(r.Total)
	})
	if others.IsPositive() {
		buckets = append(buckets, repositories.CategoryTotal{Name: OthersBucket, Total: others})
	}
	return buckets, grand
}

// NormalizePercentages converts buckets to percentages of grand rounded to
// one decimal. The rounding residual goes to the last bucket, clamped at
// zero, so the published values sum to exactly 100.
func NormalizePercentages(buckets []repositories.CategoryTotal, grand decimal.Decimal) []CategoryShare {
	if len(buckets) == 0 || !grand.IsPositive() {
		return []CategoryShare{}
	}

	shares := make([]CategoryShare, len(buckets))
	sum := decimal.Zero
	for i, b := range buckets {
		pct := b.Total.Mul(hundred).Div(grand).Round(1)
		shares[i] = CategoryShare{Name: b.Name, Value: NewNumber(pct)}
		sum = sum.Add(pct)
	}

	last := &shares[len(shares)-1]
	adjusted := last.Value.Add(hundred.Sub(sum))
	if adjusted.IsNegative() {
		adjusted = decimal.Zero
	}
	last.Value = NewNumber(adjusted)
	return shares
}
