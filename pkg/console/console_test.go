package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

func TestTable_RenderIncludesHeaderAndRows(t *testing.T) {
	c := NewWriterConsole(&bytes.Buffer{})
	table := c.CreateTable()
	table.AddColumn("Project")
	table.AddColumn("Cost")
	table.AddRow("billing-api", "$12.50")

	out := table.Render()

	assert.Contains(t, out, "Project")
	assert.Contains(t, out, "billing-api")
	assert.Contains(t, out, "$12.50")
}

func TestStatus_WithoutTerminalLogsEachStage(t *testing.T) {
	var buf bytes.Buffer
	c := NewWriterConsole(&buf)

	h := c.Status("Fetching cost data...")
	h.Update("Rendering chart...")
	h.Stop()

	assert.Contains(t, buf.String(), "Fetching cost data...")
	assert.Contains(t, buf.String(), "Rendering chart...")
}

func TestDisplayCostBars(t *testing.T) {
	var buf bytes.Buffer
	c := NewWriterConsole(&buf)

	c.DisplayCostBars("Top projects", []types.ProjectCost{
		{Project: "A", Cost: 70, Peak: 10},
		{Project: "B", Cost: 35, Peak: 5},
	})

	out := buf.String()
	assert.Contains(t, out, "Top projects")
	assert.Contains(t, out, "$70.00")
	assert.Contains(t, out, "$5.00")
}

func TestDisplayCostBars_AllZero(t *testing.T) {
	var buf bytes.Buffer
	c := NewWriterConsole(&buf)

	c.DisplayCostBars("Nothing", []types.ProjectCost{{Project: "A"}})

	assert.Contains(t, buf.String(), "All costs are $0.00")
}
