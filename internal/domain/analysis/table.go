// Package analysis holds the report math: reshaping Cost Explorer results
// into a cost table, ranking projects and computing fold change over a
// rolling median. Nothing here performs I/O.
package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// tagKeySeparator separates the tag key from its value in a Cost Explorer
// group key, e.g. "project$billing-api".
const tagKeySeparator = "$"

// ProjectLabel extracts the project from the keys of one group. A group
// without the tag, or with an empty tag value, maps to untagged.
func ProjectLabel(keys []string, tagKey, untagged string) string {
	prefix := tagKey + tagKeySeparator
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			if v := strings.TrimPrefix(k, prefix); v != "" {
				return v
			}
			return untagged
		}
	}
	return untagged
}

// BuildCostTable flattens daily Cost Explorer results into a CostTable over
// window. Days outside window are ignored; a repeated (project, date) pair
// keeps the last amount seen.
func BuildCostTable(days []entity.DailyCost, window entity.TimeWindow, tagKey, untagged string) (*entity.CostTable, error) {
	sparse := make(map[string]map[time.Time]float64)

	for _, day := range days {
		date := entity.TruncateDay(day.Date)
		if !window.Contains(date) {
			continue
		}
		for _, group := range day.Groups {
			project := ProjectLabel(group.Keys, tagKey, untagged)
			amount, err := strconv.ParseFloat(strings.TrimSpace(group.Amount), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q for %s on %s: %v",
					types.ErrMalformedCost, group.Amount, project, date.Format(entity.DateLayout), err)
			}
			if sparse[project] == nil {
				sparse[project] = make(map[time.Time]float64)
			}
			sparse[project][date] = amount
		}
	}

	return entity.NewCostTable(window, sparse), nil
}
