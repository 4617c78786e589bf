package repository

import (
	"context"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// CostRepository defines the interface for AWS billing API interactions.
type CostRepository interface {
	// GetDailyCostByTag returns one DailyCost per day of window, grouped by
	// the cost allocation tag tagKey and measured with metric.
	GetDailyCostByTag(ctx context.Context, profile string, window entity.TimeWindow, tagKey, metric string) ([]entity.DailyCost, error)

	GetAccountID(ctx context.Context, profile string) (string, error)
	GetBudgets(ctx context.Context, profile string) ([]entity.BudgetInfo, error)
}
