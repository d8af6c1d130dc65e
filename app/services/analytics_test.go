package services_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/app/services"
)

func cat(name, total string) repositories.CategoryTotal {
	return repositories.CategoryTotal{Name: name, Total: decimal.RequireFromString(total)}
}

func shareSum(shares []services.CategoryShare) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Value.Decimal)
	}
	return sum
}

func TestMonthWindowCrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 27, 15, 0, 0, 0, time.UTC)

	months := services.MonthWindow(now, 6)

	require.Len(t, months, 6)
	assert.Equal(t, time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), months[0])
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), months[5])
}

func TestMonthWindowOnMonthEnd(t *testing.T) {
	now := time.Date(2026, time.March, 31, 23, 0, 0, 0, time.UTC)

	months := services.MonthWindow(now, 2)

	assert.Equal(t, []time.Time{
		time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}, months)
}

func TestFillMonthsGapFills(t *testing.T) {
	window := services.MonthWindow(time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC), 6)

	points := services.FillMonths(window, []repositories.MonthTotal{
		{Month: "2026-03", Total: decimal.NewFromInt(500)},
		{Month: "2025-11", Total: decimal.NewFromInt(999)},
	})

	require.Len(t, points, 6)
	var labels, sales []string
	for _, p := range points {
		labels = append(labels, p.Date)
		sales = append(sales, p.Sales.String())
	}
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, labels)
	assert.Equal(t, []string{"0", "0", "500", "0", "0", "0"}, sales)
}

func TestFillMonthsEmptyAggregate(t *testing.T) {
	points := services.FillMonths(services.MonthWindow(time.Now(), 12), nil)

	require.Len(t, points, 12)
	for _, p := range points {
		assert.True(t, p.Sales.IsZero())
	}
}

func TestCategoryBreakdownTopFourPlusOthers(t *testing.T) {
	buckets, grand := services.BucketTopN([]repositories.CategoryTotal{
		cat("E", "5"), cat("A", "40"), cat("C", "20"), cat("B", "30"), cat("D", "5"),
	}, 4)
	shares := services.NormalizePercentages(buckets, grand)

	want := []struct{ name, value string }{
		{"A", "40"}, {"B", "30"}, {"C", "20"}, {"D", "5"}, {services.OthersBucket, "5"},
	}
	require.Len(t, shares, len(want))
	for i, w := range want {
		assert.Equal(t, w.name, shares[i].Name)
		assert.True(t, decimal.RequireFromString(w.value).Equal(shares[i].Value.Decimal), "%s=%s", w.name, shares[i].Value)
	}
	assert.True(t, shareSum(shares).Equal(decimal.NewFromInt(100)))
}

func TestOthersOmittedWhenRemainderIsZero(t *testing.T) {
	buckets, grand := services.BucketTopN([]repositories.CategoryTotal{
		cat("A", "10"), cat("B", "10"), cat("C", "0"),
	}, 2)

	shares := services.NormalizePercentages(buckets, grand)

	require.Len(t, shares, 2)
	for _, s := range shares {
		assert.NotEqual(t, services.OthersBucket, s.Name)
	}
}

func TestZeroRevenueGivesEmptyBreakdown(t *testing.T) {
	buckets, grand := services.BucketTopN([]repositories.CategoryTotal{cat("A", "0"), cat("B", "0")}, 4)

	assert.Nil(t, buckets)
	assert.Empty(t, services.NormalizePercentages(buckets, grand))
	assert.Empty(t, services.NormalizePercentages(nil, decimal.Zero))
}

func TestResidualGoesToLastBucket(t *testing.T) {
	buckets, grand := services.BucketTopN([]repositories.CategoryTotal{
		cat("A", "1"), cat("B", "1"), cat("C", "1"),
	}, 4)

	shares := services.NormalizePercentages(buckets, grand)

	require.Len(t, shares, 3)
	assert.Equal(t, "33.3", shares[0].Value.String())
	assert.Equal(t, "33.3", shares[1].Value.String())
	assert.Equal(t, "33.4", shares[2].Value.String())
}

func TestResidualClampsAtZero(t *testing.T) {
	shares := services.NormalizePercentages([]repositories.CategoryTotal{
		cat("A", "100.06"), cat("B", "0.04"),
	}, decimal.RequireFromString("100"))

	assert.True(t, shares[1].Value.GreaterThanOrEqual(decimal.Zero))
}

func TestBreakdownPropertiesOnRandomLedgers(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 300; run++ {
		rows := make([]repositories.CategoryTotal, rng.Intn(12))
		for i := range rows {
			cents := rng.Int63n(10_000_00)
			if rng.Intn(5) == 0 {
				cents = 0
			}
			rows[i] = repositories.CategoryTotal{Name: fmt.Sprintf("c%02d", i), Total: decimal.New(cents, -2)}
		}

		buckets, grand := services.BucketTopN(rows, 4)
		shares := services.NormalizePercentages(buckets, grand)

		if !grand.IsPositive() {
			assert.Empty(t, shares)
			continue
		}
		assert.LessOrEqual(t, len(shares), 5)
		clamped := shares[len(shares)-1].Value.IsZero()
		assert.True(t, clamped || shareSum(shares).Equal(decimal.NewFromInt(100)), "run %d: %s", run, shareSum(shares))
		for _, s := range shares {
			assert.False(t, s.Value.IsNegative())
		}
	}
}

func TestNumberEncodesAsBareJSONNumber(t *testing.T) {
	raw, err := json.Marshal(services.SalesPoint{Date: "Mar", Sales: services.NewNumber(decimal.RequireFromString("500.50"))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"Mar","sales":500.5}`, string(raw))

	var back services.SalesPoint
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "500.5", back.Sales.String())
}
