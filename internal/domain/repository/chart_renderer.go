package repository

import "github.com/diillson/aws-cost-report-go/internal/domain/entity"

// ChartRenderer turns a report view into an encoded image.
type ChartRenderer interface {
	Render(view entity.ReportView) ([]byte, error)
}
