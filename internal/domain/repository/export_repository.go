package repository

import (
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(view entity.ReportView, filename string, outputDir string) (string, error)
	ExportToJSON(view entity.ReportView, filename string, outputDir string) (string, error)
	ExportToPDF(view entity.ReportView, chart []byte, filename string, outputDir string) (string, error)
	SaveImage(image []byte, filename string, outputDir string) (string, error)
}
