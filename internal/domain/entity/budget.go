package entity

// BudgetInfo is one AWS budget with its actual and forecasted spend for the
// current period.
type BudgetInfo struct {
	Name     string  `json:"name"`
	Limit    float64 `json:"limit"`
	Actual   float64 `json:"actual"`
	Forecast float64 `json:"forecast,omitempty"`
}

// Utilization is Actual as a percentage of Limit, 0 for an unlimited budget.
func (b BudgetInfo) Utilization() float64 {
	if b.Limit <= 0 {
		return 0
	}
	return b.Actual / b.Limit * 100
}

// OverLimit reports whether actual or forecasted spend exceeds the limit.
func (b BudgetInfo) OverLimit() bool {
	return b.Limit > 0 && (b.Actual > b.Limit || b.Forecast > b.Limit)
}
