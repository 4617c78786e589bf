package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diillson/aws-cost-report-go/internal/domain/analysis"
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// RendererFactory builds the chart renderer for one run, since the figure
// size and the fold-change panel come from the resolved options.
type RendererFactory func(opts types.ReportOptions) repository.ChartRenderer

// ReportUseCase handles the daily cost report: fetch, build, render and deliver.
type ReportUseCase struct {
	costRepo    repository.CostRepository
	newRenderer RendererFactory
	delivery    repository.DeliveryRepository
	credentials repository.CredentialRepository
	exportRepo  repository.ExportRepository
	console     types.ConsoleInterface
	now         func() time.Time
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	costRepo repository.CostRepository,
	newRenderer RendererFactory,
	delivery repository.DeliveryRepository,
	credentials repository.CredentialRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		costRepo:    costRepo,
		newRenderer: newRenderer,
		delivery:    delivery,
		credentials: credentials,
		exportRepo:  exportRepo,
		console:     console,
		now:         time.Now,
	}
}

// ResolveWindow turns the options into the report window. A zero End is
// today (UTC) and a zero Start is End minus Days.
func (uc *ReportUseCase) ResolveWindow(opts types.ReportOptions) (entity.ReportWindow, error) {
	end := opts.End
	if end.IsZero() {
		end = uc.now()
	}
	end = entity.TruncateDay(end)

	start := opts.Start
	if start.IsZero() {
		if opts.Days <= 0 {
			return entity.ReportWindow{}, fmt.Errorf("%w: days must be positive, got %d", types.ErrInvalidWindow, opts.Days)
		}
		start = end.AddDate(0, 0, -opts.Days)
	}

	rw := entity.ReportWindow{
		Display:      entity.NewTimeWindow(start, end),
		LookbackDays: opts.LookbackDays,
	}
	if err := rw.Validate(); err != nil {
		return entity.ReportWindow{}, fmt.Errorf("%w: %w", types.ErrInvalidWindow, err)
	}
	return rw, nil
}

// UploadFilename is the PNG name for a display window, e.g. usage_20240515.png.
func UploadFilename(display entity.TimeWindow) string {
	return fmt.Sprintf("%s_%s.png", types.DefaultFilenamePrefix, display.End.Format("20060102"))
}

// RunReport executa o pipeline completo. Nothing is posted unless every
// stage before delivery succeeded.
func (uc *ReportUseCase) RunReport(ctx context.Context, opts types.ReportOptions) error {
	rw, err := uc.ResolveWindow(opts)
	if err != nil {
		return err
	}

	// O token é lido antes de qualquer chamada à AWS
	var token string
	if !opts.DryRun {
		token, err = uc.credentials.LoadToken(opts.TokenFile, opts.TokenEnv)
		if err != nil {
			return err
		}
	}

	fetch := rw.FetchWindow()
	status := uc.console.Status(fmt.Sprintf("Fetching %s by tag '%s' for %s...", opts.Metric, opts.TagKey, fetch))
	days, err := uc.costRepo.GetDailyCostByTag(ctx, opts.Profile, fetch, opts.TagKey, opts.Metric)
	if err != nil {
		status.Stop()
		return err
	}

	status.Update("Building cost table...")
	table, err := analysis.BuildCostTable(days, fetch, opts.TagKey, opts.UntaggedLabel)
	if err != nil {
		status.Stop()
		return err
	}

	view := analysis.BuildReportView(table, rw.Display, analysis.ViewOptions{
		ThresholdFraction: opts.ThresholdFraction,
		RollingWindow:     opts.RollingWindow,
	})

	status.Update("Rendering chart...")
	image, err := uc.newRenderer(opts).Render(view)
	status.Stop()
	if err != nil {
		return err
	}

	uc.displaySummary(view, len(table.Projects()))
	uc.exportReports(view, image, opts)

	filename := UploadFilename(rw.Display)
	if opts.DryRun {
		path, err := uc.exportRepo.SaveImage(image, filename, opts.Dir)
		if err != nil {
			return fmt.Errorf("saving chart: %w", err)
		}
		uc.console.LogSuccess("Dry run: chart written to %s", path)
		return nil
	}

	upload := entity.ArtifactUpload{
		Channel:  opts.Channel,
		Filename: filename,
		Title:    rw.Display.End.Format(entity.DateLayout),
		Comment:  uc.buildComment(ctx, opts),
		Content:  image,
	}
	if err := uc.delivery.Upload(ctx, token, upload); err != nil {
		return err
	}

	uc.console.LogSuccess("Uploaded %s to channel %s", filename, opts.Channel)
	return nil
}

// buildComment monta a legenda do upload. Account and budget lookups are
// best effort and never block delivery.
func (uc *ReportUseCase) buildComment(ctx context.Context, opts types.ReportOptions) string {
	lines := []string{opts.Comment}

	accountID, err := uc.costRepo.GetAccountID(ctx, opts.Profile)
	if err != nil {
		uc.console.LogWarning("Could not resolve account id: %s", err)
	} else if accountID != "" {
		lines = append(lines, fmt.Sprintf("Account: %s", accountID))
	}

	if opts.IncludeBudgets {
		budgets, err := uc.costRepo.GetBudgets(ctx, opts.Profile)
		if err != nil {
			uc.console.LogWarning("Could not load budgets: %s", err)
		}
		lines = append(lines, formatBudgetInfo(budgets)...)
	}

	return strings.Join(lines, "\n")
}

// formatBudgetInfo formata as informações do orçamento para a legenda.
func formatBudgetInfo(budgets []entity.BudgetInfo) []string {
	var info []string
	for _, budget := range budgets {
		line := fmt.Sprintf("%s: $%.2f of $%.2f (%.0f%%)", budget.Name, budget.Actual, budget.Limit, budget.Utilization())
		if budget.Forecast > 0 {
			line += fmt.Sprintf(", forecast $%.2f", budget.Forecast)
		}
		if budget.OverLimit() {
			line = ":warning: " + line
		}
		info = append(info, line)
	}
	return info
}

func (uc *ReportUseCase) displaySummary(view entity.ReportView, totalProjects int) {
	if view.IsEmpty() {
		uc.console.LogWarning("No project above %.2f%% of the summed peaks (%d seen); the chart will be empty",
			view.ThresholdFraction*100, totalProjects)
		return
	}

	totals := view.ProjectTotals()
	costs := make([]types.ProjectCost, len(view.Projects))
	for i, p := range view.Projects {
		costs[i] = types.ProjectCost{Project: p.Name, Cost: totals[i], Peak: p.Peak}
	}
	uc.console.DisplayCostBars(fmt.Sprintf("Cost by project, %s", view.Window), costs)

	table := uc.console.CreateTable()
	table.AddColumn("Date")
	for _, name := range view.ProjectNames() {
		table.AddColumn(name)
	}
	table.AddColumn("Total")
	for i, d := range view.Dates {
		cells := []interface{}{d.Format(entity.DateLayout)}
		dayTotal := 0.0
		for _, c := range view.Costs[i] {
			cells = append(cells, fmt.Sprintf("$%.2f", c))
			dayTotal += c
		}
		cells = append(cells, fmt.Sprintf("$%.2f", dayTotal))
		table.AddRow(cells...)
	}
	uc.console.Println(table.Render())

	if hidden := totalProjects - len(view.Projects); hidden > 0 {
		uc.console.LogInfo("%d project(s) below the $%.2f cutoff were left off the chart", hidden, view.Cutoff)
	}
}

// exportReports grava os relatórios locais pedidos. Falhas são apenas logadas.
func (uc *ReportUseCase) exportReports(view entity.ReportView, image []byte, opts types.ReportOptions) {
	if opts.ReportName == "" || len(opts.ReportType) == 0 {
		return
	}
	for _, reportType := range opts.ReportType {
		switch reportType {
		case "csv":
			csvPath, err := uc.exportRepo.ExportToCSV(view, opts.ReportName, opts.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(view, opts.ReportName, opts.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(view, image, opts.ReportName, opts.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("Unknown report type '%s' ignored", reportType)
		}
	}
}
