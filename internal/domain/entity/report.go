package entity

import "time"

// RankedProject is a project kept on the chart together with its peak
// daily cost over the display window.
type RankedProject struct {
	Name string  `json:"name"`
	Peak float64 `json:"peak"`
}

// ReportView is the renderer input. Costs and FoldChange are indexed
// [date][project], following the order of Dates and Projects. A NaN fold
// change marks a day with no usable baseline.
type ReportView struct {
	Window            TimeWindow      `json:"window"`
	Dates             []time.Time     `json:"dates"`
	Projects          []RankedProject `json:"projects"`
	Costs             [][]float64     `json:"costs"`
	FoldChange        [][]float64     `json:"-"`
	RollingWindow     int             `json:"rolling_window"`
	ThresholdFraction float64         `json:"threshold_fraction"`
	Cutoff            float64         `json:"cutoff"`
}

// ProjectNames returns the ranked project labels in rank order.
func (v ReportView) ProjectNames() []string {
	names := make([]string, len(v.Projects))
	for i, p := range v.Projects {
		names[i] = p.Name
	}
	return names
}

// ProjectTotals sums each ranked project's cost over the display window.
func (v ReportView) ProjectTotals() []float64 {
	totals := make([]float64, len(v.Projects))
	for _, row := range v.Costs {
		for j, c := range row {
			totals[j] += c
		}
	}
	return totals
}

// IsEmpty is true when no project passed the threshold.
func (v ReportView) IsEmpty() bool {
	return len(v.Projects) == 0
}
