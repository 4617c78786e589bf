package analysis

import (
	"math"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// ViewOptions controls how a CostTable is reduced to a ReportView.
type ViewOptions struct {
	ThresholdFraction float64
	RollingWindow     int
}

// BuildReportView ranks the projects of table over display, transposes the
// kept rows to [date][project] and attaches the fold change of each cell.
// Display days missing from the table read as zero cost.
func BuildReportView(table *entity.CostTable, display entity.TimeWindow, opts ViewOptions) entity.ReportView {
	ranked, cutoff := RankProjects(PeakCosts(table, display), opts.ThresholdFraction)
	dates := display.Days()

	view := entity.ReportView{
		Window:            display,
		Dates:             dates,
		Projects:          ranked,
		Costs:             make([][]float64, len(dates)),
		FoldChange:        make([][]float64, len(dates)),
		RollingWindow:     opts.RollingWindow,
		ThresholdFraction: opts.ThresholdFraction,
		Cutoff:            cutoff,
	}
	for i := range dates {
		view.Costs[i] = make([]float64, len(ranked))
		view.FoldChange[i] = make([]float64, len(ranked))
	}

	for j, p := range ranked {
		row := table.Row(p.Name)
		folds := FoldChange(row, opts.RollingWindow)
		for i, d := range dates {
			idx, ok := table.DateIndex(d)
			if !ok {
				view.FoldChange[i][j] = math.NaN()
				continue
			}
			view.Costs[i][j] = row[idx]
			view.FoldChange[i][j] = folds[idx]
		}
	}

	return view
}
