package service

import (
	"testing"
	"time"

	"github.com/MR-PROSTER/Expensync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestCategoryDistribution(t *testing.T) {
	expenses := []*models.Expense{
		{Category: models.CategoryFood, Amount: 10.10, Currency: "USD"},
		{Category: models.CategoryFood, Amount: 20.20, Currency: "USD"},
		{Category: models.CategoryTransport, Amount: 5, Currency: "USD"},
	}

	points := CategoryDistribution(expenses)

	require.Len(t, points, 2)
	assert.Equal(t, "food", points[0].Label)
	assert.InDelta(t, 30.30, points[0].Value, 1e-9)
	assert.Equal(t, "transport", points[1].Label)
}

func TestDailyTrendSortedChronologically(t *testing.T) {
	expenses := []*models.Expense{
		{Amount: 5, TransactionDate: day("2026-03-02")},
		{Amount: 7, TransactionDate: day("2026-03-01")},
		{Amount: 3, TransactionDate: day("2026-03-02")},
	}

	points := DailyTrend(expenses)

	require.Len(t, points, 2)
	assert.Equal(t, "2026-03-01", points[0].Label)
	assert.InDelta(t, 7, points[0].Value, 1e-9)
	assert.Equal(t, "2026-03-02", points[1].Label)
	assert.InDelta(t, 8, points[1].Value, 1e-9)
}

func TestCompareBudget(t *testing.T) {
	expenses := []*models.Expense{
		{Amount: 60.50},
		{Amount: 50.50},
	}

	t.Run("over budget", func(t *testing.T) {
		cmp := compareBudget(100, expenses)
		assert.InDelta(t, 111, cmp.Actual, 1e-9)
		assert.InDelta(t, -11, cmp.Remaining, 1e-9)
		assert.True(t, cmp.OverSpent)
	})

	t.Run("under budget", func(t *testing.T) {
		cmp := compareBudget(200, expenses)
		assert.InDelta(t, 89, cmp.Remaining, 1e-9)
		assert.False(t, cmp.OverSpent)
	})
}

func TestClusterExpenses(t *testing.T) {
	expenses := []*models.Expense{
		{Amount: 5, TransactionDate: day("2026-03-01")},
		{Amount: 6, TransactionDate: day("2026-03-02")},
		{Amount: 7, TransactionDate: day("2026-03-03")},
		{Amount: 100, TransactionDate: day("2026-03-04")},
		{Amount: 110, TransactionDate: day("2026-03-05")},
		{Amount: 1000, TransactionDate: day("2026-03-06")},
	}

	points := ClusterExpenses(expenses, 3)
	require.Len(t, points, 6)

	// the three small amounts land in one cluster, the outlier in its own
	assert.Equal(t, points[0].Cluster, points[1].Cluster)
	assert.Equal(t, points[1].Cluster, points[2].Cluster)
	assert.Equal(t, points[3].Cluster, points[4].Cluster)
	assert.NotEqual(t, points[0].Cluster, points[5].Cluster)
	assert.NotEqual(t, points[3].Cluster, points[5].Cluster)
}

func TestClusterExpensesFewerThanK(t *testing.T) {
	expenses := []*models.Expense{
		{Amount: 5, TransactionDate: day("2026-03-01")},
		{Amount: 500, TransactionDate: day("2026-03-02")},
	}

	points := ClusterExpenses(expenses, 3)
	require.Len(t, points, 2)
	assert.NotEqual(t, points[0].Cluster, points[1].Cluster)
}

func TestClusterExpensesEmpty(t *testing.T) {
	assert.Nil(t, ClusterExpenses(nil, 3))
}
