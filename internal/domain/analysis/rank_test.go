package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

func TestRankProjects_RelativeThreshold(t *testing.T) {
	peaks := map[string]float64{"a": 100, "b": 50, "c": 1, "d": 0.5}

	ranked, cutoff := RankProjects(peaks, 0.01)

	assert.InDelta(t, 1.515, cutoff, 1e-12)
	assert.Equal(t, []entity.RankedProject{{Name: "a", Peak: 100}, {Name: "b", Peak: 50}}, ranked)
}

func TestRankProjects_PeakEqualToCutoffIsExcluded(t *testing.T) {
	peaks := map[string]float64{"big": 3, "edge": 1}

	ranked, cutoff := RankProjects(peaks, 0.25)

	assert.Equal(t, 1.0, cutoff)
	assert.Equal(t, []entity.RankedProject{{Name: "big", Peak: 3}}, ranked)
}

func TestRankProjects_TiesOrderedByName(t *testing.T) {
	peaks := map[string]float64{"zeta": 5, "alpha": 5, "mid": 7}

	ranked, _ := RankProjects(peaks, 0.01)

	var names []string
	for _, r := range ranked {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"mid", "alpha", "zeta"}, names)
}

func TestRankProjects_Empty(t *testing.T) {
	ranked, cutoff := RankProjects(nil, 0.01)
	assert.Empty(t, ranked)
	assert.Zero(t, cutoff)

	ranked, _ = RankProjects(map[string]float64{"a": 0, "b": 0}, 0.01)
	assert.Empty(t, ranked)
}

func TestPeakCosts_RestrictedToDisplayWindow(t *testing.T) {
	full := entity.NewTimeWindow(day(2024, 3, 1), day(2024, 3, 5))
	display := entity.NewTimeWindow(day(2024, 3, 3), day(2024, 3, 5))
	days := []entity.DailyCost{
		{Date: day(2024, 3, 1), Groups: []entity.TagCost{{Keys: []string{"project$a"}, Amount: "500"}}},
		{Date: day(2024, 3, 3), Groups: []entity.TagCost{{Keys: []string{"project$a"}, Amount: "2"}}},
		{Date: day(2024, 3, 4), Groups: []entity.TagCost{{Keys: []string{"project$a"}, Amount: "3"}}},
	}
	table, err := BuildCostTable(days, full, "project", "NA")
	assert.NoError(t, err)

	assert.Equal(t, map[string]float64{"a": 3}, PeakCosts(table, display))
}
