package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// reportRow is one (date, project) cell of an exported report.
type reportRow struct {
	Date       string   `json:"date"`
	Project    string   `json:"project"`
	Cost       float64  `json:"cost"`
	FoldChange *float64 `json:"fold_change"`
}

type reportDocument struct {
	Start             string                 `json:"start"`
	End               string                 `json:"end"`
	RollingWindow     int                    `json:"rolling_window"`
	ThresholdFraction float64                `json:"threshold_fraction"`
	Cutoff            float64                `json:"cutoff"`
	Projects          []entity.RankedProject `json:"projects"`
	Rows              []reportRow            `json:"rows"`
}

func flatten(view entity.ReportView) []reportRow {
	rows := make([]reportRow, 0, len(view.Dates)*len(view.Projects))
	for i, d := range view.Dates {
		for j, p := range view.Projects {
			row := reportRow{
				Date:    d.Format(entity.DateLayout),
				Project: p.Name,
				Cost:    view.Costs[i][j],
			}
			if f := view.FoldChange[i][j]; !math.IsNaN(f) && !math.IsInf(f, 0) {
				row.FoldChange = &f
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// --- Funções de Exportação do Relatório de Custos ---

func (r *ExportRepositoryImpl) ExportToCSV(view entity.ReportView, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	headers := []string{"Date", "Project", "Cost (USD)",
		fmt.Sprintf("Fold change over %d-day rolling median", view.RollingWindow)}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	for _, row := range flatten(view) {
		fold := ""
		if row.FoldChange != nil {
			fold = strconv.FormatFloat(*row.FoldChange, 'f', 4, 64)
		}
		record := []string{row.Date, row.Project, strconv.FormatFloat(row.Cost, 'f', 2, 64), fold}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV file: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(view entity.ReportView, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	doc := reportDocument{
		Start:             view.Window.Start.Format(entity.DateLayout),
		End:               view.Window.End.Format(entity.DateLayout),
		RollingWindow:     view.RollingWindow,
		ThresholdFraction: view.ThresholdFraction,
		Cutoff:            view.Cutoff,
		Projects:          view.Projects,
		Rows:              flatten(view),
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(view entity.ReportView, chart []byte, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  Cost report %s", view.Window)), "", 1, "L", true, 0, "")
	pdf.Ln(4)

	if len(chart) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("chart", opts, bytes.NewReader(chart))
		pdf.ImageOptions("chart", 10, pdf.GetY(), 277, 0, true, opts, 0, "")
		pdf.Ln(4)
	}

	if len(view.Projects) > 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.Cell(0, 8, "Daily cost (USD)")
		pdf.Ln(9)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])

		dateWidth := 30.0
		colWidth := (277 - dateWidth) / float64(len(view.Projects))

		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(dateWidth, 7, "Date", "B", 0, "L", false, 0, "")
		for _, p := range view.Projects {
			pdf.CellFormat(colWidth, 7, tr(truncate(p.Name, 24)), "B", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for i, d := range view.Dates {
			pdf.CellFormat(dateWidth, 6, d.Format(entity.DateLayout), "", 0, "L", false, 0, "")
			for j := range view.Projects {
				pdf.CellFormat(colWidth, 6, fmt.Sprintf("$%.2f", view.Costs[i][j]), "", 0, "R", false, 0, "")
			}
			pdf.Ln(-1)
		}

		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(dateWidth, 7, "Total", "T", 0, "L", false, 0, "")
		for _, total := range view.ProjectTotals() {
			pdf.CellFormat(colWidth, 7, fmt.Sprintf("$%.2f", total), "T", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// SaveImage grava a imagem com o nome exato informado, sem timestamp.
func (r *ExportRepositoryImpl) SaveImage(image []byte, filename, outputDir string) (string, error) {
	dir, err := ensureDir(outputDir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, image, 0644); err != nil {
		return "", fmt.Errorf("error writing image file: %w", err)
	}
	return filepath.Abs(path)
}

// --- Funções Auxiliares ---

func ensureDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return dir, nil
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	dir, err := ensureDir(dir)
	if err != nil {
		return "", err
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
