package dto

type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ClusterPoint tags one expense with its k-means cluster.
type ClusterPoint struct {
	Date    string  `json:"date"`
	Amount  float64 `json:"amount"`
	Cluster int     `json:"cluster"`
}

type BudgetComparison struct {
	Budget    float64 `json:"budget"`
	Actual    float64 `json:"actual"`
	Remaining float64 `json:"remaining"`
	OverSpent bool    `json:"over_spent"`
}

type TripAnalyticsResponse struct {
	TripName            string            `json:"trip_name,omitempty"`
	ExpenseDistribution []SeriesPoint     `json:"expense_distribution"`
	TrendAnalysis       []SeriesPoint     `json:"trend_analysis"`
	BudgetComparison    *BudgetComparison `json:"budget_comparison,omitempty"`
	ExpenseClusters     []ClusterPoint    `json:"expense_clusters"`
	AIInsights          string            `json:"ai_insights,omitempty"`
}

type DashboardResponse struct {
	TotalExpenses    float64            `json:"total_expenses"`
	ExpenseCount     int                `json:"expense_count"`
	CountsByStatus   map[string]int     `json:"counts_by_status"`
	TotalsByCategory map[string]float64 `json:"totals_by_category"`
}
