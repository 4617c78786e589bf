package entity

import (
	"sort"
	"time"
)

// CostTable is a project × date matrix of daily cost. Projects are sorted
// ascending, dates ascending; every (project, date) cell exists and
// defaults to zero. A CostTable is not modified after it is built.
type CostTable struct {
	dates    []time.Time
	projects []string
	index    map[time.Time]int
	cells    map[string][]float64
}

// NewCostTable materialises a table over every day of window from a
// sparse project -> date -> amount mapping. Dates outside window are dropped.
func NewCostTable(window TimeWindow, sparse map[string]map[time.Time]float64) *CostTable {
	dates := window.Days()
	index := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		index[d] = i
	}

	projects := make([]string, 0, len(sparse))
	for p := range sparse {
		projects = append(projects, p)
	}
	sort.Strings(projects)

	cells := make(map[string][]float64, len(projects))
	for _, p := range projects {
		row := make([]float64, len(dates))
		for d, amount := range sparse[p] {
			if i, ok := index[TruncateDay(d)]; ok {
				row[i] = amount
			}
		}
		cells[p] = row
	}

	return &CostTable{
		dates:    dates,
		projects: projects,
		index:    index,
		cells:    cells,
	}
}

// Dates returns a copy of the column dates.
func (t *CostTable) Dates() []time.Time {
	return append([]time.Time(nil), t.dates...)
}

// Projects returns a copy of the row labels.
func (t *CostTable) Projects() []string {
	return append([]string(nil), t.projects...)
}

// Value returns the cost of project on date, zero if either is unknown.
func (t *CostTable) Value(project string, date time.Time) float64 {
	row, ok := t.cells[project]
	if !ok {
		return 0
	}
	i, ok := t.index[TruncateDay(date)]
	if !ok {
		return 0
	}
	return row[i]
}

// Row returns a copy of the per-date costs of project, aligned with Dates.
func (t *CostTable) Row(project string) []float64 {
	row, ok := t.cells[project]
	if !ok {
		return nil
	}
	return append([]float64(nil), row...)
}

// DateIndex returns the column index of date.
func (t *CostTable) DateIndex(date time.Time) (int, bool) {
	i, ok := t.index[TruncateDay(date)]
	return i, ok
}
