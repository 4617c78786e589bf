package analysis

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// PeakCosts returns, for every project of the table, its maximum daily cost
// within display.
func PeakCosts(table *entity.CostTable, display entity.TimeWindow) map[string]float64 {
	var cols []int
	for _, d := range display.Days() {
		if i, ok := table.DateIndex(d); ok {
			cols = append(cols, i)
		}
	}

	peaks := make(map[string]float64, len(table.Projects()))
	for _, p := range table.Projects() {
		if len(cols) == 0 {
			peaks[p] = 0
			continue
		}
		row := table.Row(p)
		window := make([]float64, len(cols))
		for j, i := range cols {
			window[j] = row[i]
		}
		peaks[p] = floats.Max(window)
	}
	return peaks
}

// RankProjects keeps the projects whose peak is strictly greater than
// fraction of the summed peaks, ordered by peak descending then name.
// It also returns the cutoff that was applied.
func RankProjects(peaks map[string]float64, fraction float64) ([]entity.RankedProject, float64) {
	if len(peaks) == 0 {
		return nil, 0
	}

	values := make([]float64, 0, len(peaks))
	for _, v := range peaks {
		values = append(values, v)
	}
	sort.Float64s(values)
	cutoff := floats.Sum(values) * fraction

	ranked := make([]entity.RankedProject, 0, len(peaks))
	for name, peak := range peaks {
		if peak > cutoff {
			ranked = append(ranked, entity.RankedProject{Name: name, Peak: peak})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Peak != ranked[j].Peak {
			return ranked[i].Peak > ranked[j].Peak
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked, cutoff
}
