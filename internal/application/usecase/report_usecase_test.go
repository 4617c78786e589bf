package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

type fakeCostRepo struct {
	days      []entity.DailyCost
	err       error
	accountID string
	budgets   []entity.BudgetInfo
	fetches   []entity.TimeWindow
}

func (f *fakeCostRepo) GetDailyCostByTag(_ context.Context, _ string, window entity.TimeWindow, _, _ string) ([]entity.DailyCost, error) {
	f.fetches = append(f.fetches, window)
	return f.days, f.err
}

func (f *fakeCostRepo) GetAccountID(context.Context, string) (string, error) {
	if f.accountID == "" {
		return "", errors.New("no identity")
	}
	return f.accountID, nil
}

func (f *fakeCostRepo) GetBudgets(context.Context, string) ([]entity.BudgetInfo, error) {
	return f.budgets, nil
}

type fakeRenderer struct {
	views []entity.ReportView
}

func (f *fakeRenderer) Render(view entity.ReportView) ([]byte, error) {
	f.views = append(f.views, view)
	return []byte("png"), nil
}

type fakeDelivery struct {
	uploads []entity.ArtifactUpload
	tokens  []string
	err     error
}

func (f *fakeDelivery) Upload(_ context.Context, token string, upload entity.ArtifactUpload) error {
	f.tokens = append(f.tokens, token)
	f.uploads = append(f.uploads, upload)
	return f.err
}

type fakeCredentials struct {
	token string
	calls int
}

func (f *fakeCredentials) LoadToken(string, string) (string, error) {
	f.calls++
	if f.token == "" {
		return "", types.ErrMissingCredentials
	}
	return f.token, nil
}

type fakeExport struct {
	images map[string][]byte
	csv    int
}

func (f *fakeExport) ExportToCSV(entity.ReportView, string, string) (string, error) {
	f.csv++
	return "report.csv", nil
}

func (f *fakeExport) ExportToJSON(entity.ReportView, string, string) (string, error) {
	return "report.json", nil
}

func (f *fakeExport) ExportToPDF(entity.ReportView, []byte, string, string) (string, error) {
	return "report.pdf", nil
}

func (f *fakeExport) SaveImage(image []byte, filename, _ string) (string, error) {
	if f.images == nil {
		f.images = map[string][]byte{}
	}
	f.images[filename] = image
	return filename, nil
}

type nopStatus struct{}

func (nopStatus) Update(string) {}
func (nopStatus) Stop()         {}

type nopTable struct{}

func (nopTable) AddColumn(string, ...interface{}) {}
func (nopTable) AddRow(...interface{})            {}
func (nopTable) Render() string                   { return "" }

type recordingConsole struct {
	warnings []string
	bars     []types.ProjectCost
}

func (c *recordingConsole) Print(...interface{})              {}
func (c *recordingConsole) Printf(string, ...interface{})     {}
func (c *recordingConsole) Println(...interface{})            {}
func (c *recordingConsole) LogInfo(string, ...interface{})    {}
func (c *recordingConsole) LogError(string, ...interface{})   {}
func (c *recordingConsole) LogSuccess(string, ...interface{}) {}
func (c *recordingConsole) Status(string) types.StatusHandle  { return nopStatus{} }
func (c *recordingConsole) CreateTable() types.TableInterface { return nopTable{} }

func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) DisplayCostBars(_ string, costs []types.ProjectCost) {
	c.bars = costs
}

type harness struct {
	uc       *ReportUseCase
	cost     *fakeCostRepo
	renderer *fakeRenderer
	delivery *fakeDelivery
	creds    *fakeCredentials
	export   *fakeExport
	console  *recordingConsole
}

func newHarness() *harness {
	h := &harness{
		cost:     &fakeCostRepo{accountID: "123456789012"},
		renderer: &fakeRenderer{},
		delivery: &fakeDelivery{},
		creds:    &fakeCredentials{token: "xoxb-test"},
		export:   &fakeExport{},
		console:  &recordingConsole{},
	}
	h.uc = NewReportUseCase(h.cost,
		func(types.ReportOptions) repository.ChartRenderer { return h.renderer },
		h.delivery, h.creds, h.export, h.console)
	h.uc.now = func() time.Time { return time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC) }
	return h
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// everyDay repeats the same per-project costs on every day of window.
func everyDay(window entity.TimeWindow, costs map[string]string) []entity.DailyCost {
	var days []entity.DailyCost
	for _, d := range window.Days() {
		var groups []entity.TagCost
		for name, c := range costs {
			groups = append(groups, entity.TagCost{Keys: []string{"project$" + name}, Amount: c, Unit: "USD"})
		}
		days = append(days, entity.DailyCost{Date: d, Groups: groups})
	}
	return days
}

func TestResolveWindow_DefaultsToLastDaysEndingToday(t *testing.T) {
	h := newHarness()

	rw, err := h.uc.ResolveWindow(types.DefaultReportOptions())
	require.NoError(t, err)

	assert.Equal(t, day(2024, 5, 8), rw.Display.Start)
	assert.Equal(t, day(2024, 5, 15), rw.Display.End)
	assert.Equal(t, day(2024, 4, 8), rw.FetchWindow().Start)
}

func TestResolveWindow_Invalid(t *testing.T) {
	h := newHarness()

	opts := types.DefaultReportOptions()
	opts.Start = day(2024, 5, 20)
	opts.End = day(2024, 5, 10)
	_, err := h.uc.ResolveWindow(opts)
	assert.ErrorIs(t, err, types.ErrInvalidWindow)

	opts = types.DefaultReportOptions()
	opts.Days = 0
	_, err = h.uc.ResolveWindow(opts)
	assert.ErrorIs(t, err, types.ErrInvalidWindow)
}

func TestRunReport_UploadsRankedChart(t *testing.T) {
	h := newHarness()
	opts := types.DefaultReportOptions()
	h.cost.days = everyDay(entity.NewTimeWindow(day(2024, 4, 8), day(2024, 5, 15)),
		map[string]string{"A": "10", "B": "5", "C": "0.01"})

	require.NoError(t, h.uc.RunReport(context.Background(), opts))

	require.Len(t, h.cost.fetches, 1)
	assert.Equal(t, entity.NewTimeWindow(day(2024, 4, 8), day(2024, 5, 15)), h.cost.fetches[0])

	require.Len(t, h.renderer.views, 1)
	assert.Equal(t, []string{"A", "B"}, h.renderer.views[0].ProjectNames())

	require.Len(t, h.delivery.uploads, 1)
	up := h.delivery.uploads[0]
	assert.Equal(t, "xoxb-test", h.delivery.tokens[0])
	assert.Equal(t, types.DefaultChannel, up.Channel)
	assert.Equal(t, "usage_20240515.png", up.Filename)
	assert.Equal(t, "2024-05-15", up.Title)
	assert.Equal(t, "Cost report\nAccount: 123456789012", up.Comment)
	assert.Equal(t, []byte("png"), up.Content)

	require.Len(t, h.console.bars, 2)
	assert.Equal(t, 70.0, h.console.bars[0].Cost)
}

func TestRunReport_BudgetsInComment(t *testing.T) {
	h := newHarness()
	h.cost.accountID = ""
	h.cost.budgets = []entity.BudgetInfo{{Name: "monthly", Limit: 1000, Actual: 420.5, Forecast: 900}}
	opts := types.DefaultReportOptions()
	opts.IncludeBudgets = true

	require.NoError(t, h.uc.RunReport(context.Background(), opts))

	require.Len(t, h.delivery.uploads, 1)
	assert.Equal(t, "Cost report\nmonthly: $420.50 of $1000.00 (42%), forecast $900.00", h.delivery.uploads[0].Comment)
	assert.NotEmpty(t, h.console.warnings)
}

func TestRunReport_EmptyViewStillUploads(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.uc.RunReport(context.Background(), types.DefaultReportOptions()))

	require.Len(t, h.renderer.views, 1)
	assert.True(t, h.renderer.views[0].IsEmpty())
	assert.Len(t, h.delivery.uploads, 1)
}

func TestRunReport_DeliveryFailurePropagates(t *testing.T) {
	h := newHarness()
	h.delivery.err = fmt.Errorf("%w: channel_not_found", types.ErrDeliveryFailed)

	err := h.uc.RunReport(context.Background(), types.DefaultReportOptions())

	assert.ErrorIs(t, err, types.ErrDeliveryFailed)
	assert.Len(t, h.delivery.uploads, 1)
}

func TestRunReport_MissingTokenFailsBeforeFetch(t *testing.T) {
	h := newHarness()
	h.creds.token = ""

	err := h.uc.RunReport(context.Background(), types.DefaultReportOptions())

	assert.ErrorIs(t, err, types.ErrMissingCredentials)
	assert.Empty(t, h.cost.fetches)
	assert.Empty(t, h.delivery.uploads)
}

func TestRunReport_FetchFailureSkipsDelivery(t *testing.T) {
	h := newHarness()
	h.cost.err = fmt.Errorf("%w: AccessDenied", types.ErrFetchFailed)

	err := h.uc.RunReport(context.Background(), types.DefaultReportOptions())

	assert.ErrorIs(t, err, types.ErrFetchFailed)
	assert.Empty(t, h.renderer.views)
	assert.Empty(t, h.delivery.uploads)
}

func TestRunReport_MalformedAmountSkipsDelivery(t *testing.T) {
	h := newHarness()
	h.cost.days = []entity.DailyCost{{
		Date:   day(2024, 5, 14),
		Groups: []entity.TagCost{{Keys: []string{"project$A"}, Amount: "n/a"}},
	}}

	err := h.uc.RunReport(context.Background(), types.DefaultReportOptions())

	assert.ErrorIs(t, err, types.ErrMalformedCost)
	assert.Empty(t, h.delivery.uploads)
}

func TestRunReport_DryRunSavesImage(t *testing.T) {
	h := newHarness()
	h.creds.token = ""
	opts := types.DefaultReportOptions()
	opts.DryRun = true
	opts.ReportName = "costs"
	opts.ReportType = []string{"csv"}

	require.NoError(t, h.uc.RunReport(context.Background(), opts))

	assert.Zero(t, h.creds.calls)
	assert.Empty(t, h.delivery.uploads)
	assert.Equal(t, []byte("png"), h.export.images["usage_20240515.png"])
	assert.Equal(t, 1, h.export.csv)
}
