package types

import "time"

// Defaults used when neither a flag nor the config file sets a value.
const (
	DefaultDays              = 7
	DefaultLookbackDays      = 30
	DefaultRollingWindow     = 30
	DefaultThresholdFraction = 0.01
	DefaultTagKey            = "project"
	DefaultMetric            = "BlendedCost"
	DefaultUntaggedLabel     = "(untagged)"
	DefaultChannel           = "C3V69UYAC"
	DefaultTokenFile         = "slack_token"
	DefaultTokenEnv          = "SLACK_BOT_TOKEN"
	DefaultComment           = "Cost report"
	DefaultFilenamePrefix    = "usage"
	DefaultChartWidthInches  = 10
	DefaultChartHeightInches = 4
	DefaultChartDPI          = 100
)

// ReportOptions is the fully resolved configuration of one report run.
type ReportOptions struct {
	Profile string

	// Start and End bound the displayed window. A zero End means today,
	// a zero Start means End minus Days.
	Start time.Time
	End   time.Time
	Days  int

	LookbackDays      int
	RollingWindow     int
	ThresholdFraction float64
	TagKey            string
	Metric            string
	UntaggedLabel     string
	FoldChange        bool

	Channel        string
	TokenFile      string
	TokenEnv       string
	Comment        string
	IncludeBudgets bool
	DryRun         bool

	ReportName string
	ReportType []string
	Dir        string

	Chart ChartConfig
}

// DefaultReportOptions returns the options of a bare invocation: the last
// seven days, thirty days of lookback and a 1% display cutoff.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		Days:              DefaultDays,
		LookbackDays:      DefaultLookbackDays,
		RollingWindow:     DefaultRollingWindow,
		ThresholdFraction: DefaultThresholdFraction,
		TagKey:            DefaultTagKey,
		Metric:            DefaultMetric,
		UntaggedLabel:     DefaultUntaggedLabel,
		FoldChange:        true,
		Channel:           DefaultChannel,
		TokenFile:         DefaultTokenFile,
		TokenEnv:          DefaultTokenEnv,
		Comment:           DefaultComment,
		Chart: ChartConfig{
			WidthInches:  DefaultChartWidthInches,
			HeightInches: DefaultChartHeightInches,
			DPI:          DefaultChartDPI,
		},
	}
}

// ApplyConfig overlays the non-zero fields of cfg on top of o. Pointer
// fields are applied whenever they are set, zero included.
func (o *ReportOptions) ApplyConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Profile != "" {
		o.Profile = cfg.Profile
	}
	if cfg.Days > 0 {
		o.Days = cfg.Days
	}
	if cfg.LookbackDays != nil {
		o.LookbackDays = *cfg.LookbackDays
	}
	if cfg.RollingWindow > 0 {
		o.RollingWindow = cfg.RollingWindow
	}
	if cfg.ThresholdFraction != nil {
		o.ThresholdFraction = *cfg.ThresholdFraction
	}
	if cfg.TagKey != "" {
		o.TagKey = cfg.TagKey
	}
	if cfg.Metric != "" {
		o.Metric = cfg.Metric
	}
	if cfg.UntaggedLabel != "" {
		o.UntaggedLabel = cfg.UntaggedLabel
	}
	if cfg.Channel != "" {
		o.Channel = cfg.Channel
	}
	if cfg.TokenFile != "" {
		o.TokenFile = cfg.TokenFile
	}
	if cfg.TokenEnv != "" {
		o.TokenEnv = cfg.TokenEnv
	}
	if cfg.Comment != "" {
		o.Comment = cfg.Comment
	}
	if cfg.FoldChange != nil {
		o.FoldChange = *cfg.FoldChange
	}
	if cfg.IncludeBudgets {
		o.IncludeBudgets = true
	}
	if cfg.ReportName != "" {
		o.ReportName = cfg.ReportName
	}
	if len(cfg.ReportType) > 0 {
		o.ReportType = cfg.ReportType
	}
	if cfg.Dir != "" {
		o.Dir = cfg.Dir
	}
	if cfg.Chart.WidthInches > 0 {
		o.Chart.WidthInches = cfg.Chart.WidthInches
	}
	if cfg.Chart.HeightInches > 0 {
		o.Chart.HeightInches = cfg.Chart.HeightInches
	}
	if cfg.Chart.DPI > 0 {
		o.Chart.DPI = cfg.Chart.DPI
	}
}
