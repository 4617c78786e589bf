package types

// Config represents the application configuration that can be loaded from a file.
// Zero values mean "not set" and leave the defaults or flags in place,
// except for the pointer fields, where zero is a valid setting.
type Config struct {
	Profile           string      `json:"profile" yaml:"profile" toml:"profile"`
	Days              int         `json:"days" yaml:"days" toml:"days"`
	LookbackDays      *int        `json:"lookback_days" yaml:"lookback_days" toml:"lookback_days"`
	RollingWindow     int         `json:"rolling_window" yaml:"rolling_window" toml:"rolling_window"`
	ThresholdFraction *float64    `json:"threshold_fraction" yaml:"threshold_fraction" toml:"threshold_fraction"`
	TagKey            string      `json:"tag_key" yaml:"tag_key" toml:"tag_key"`
	Metric            string      `json:"metric" yaml:"metric" toml:"metric"`
	UntaggedLabel     string      `json:"untagged_label" yaml:"untagged_label" toml:"untagged_label"`
	Channel           string      `json:"channel" yaml:"channel" toml:"channel"`
	TokenFile         string      `json:"token_file" yaml:"token_file" toml:"token_file"`
	TokenEnv          string      `json:"token_env" yaml:"token_env" toml:"token_env"`
	Comment           string      `json:"comment" yaml:"comment" toml:"comment"`
	FoldChange        *bool       `json:"fold_change" yaml:"fold_change" toml:"fold_change"`
	IncludeBudgets    bool        `json:"include_budgets" yaml:"include_budgets" toml:"include_budgets"`
	ReportName        string      `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType        []string    `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir               string      `json:"dir" yaml:"dir" toml:"dir"`
	Chart             ChartConfig `json:"chart" yaml:"chart" toml:"chart"`
}

// ChartConfig holds the figure geometry.
type ChartConfig struct {
	WidthInches  float64 `json:"width_inches" yaml:"width_inches" toml:"width_inches"`
	HeightInches float64 `json:"height_inches" yaml:"height_inches" toml:"height_inches"`
	DPI          int     `json:"dpi" yaml:"dpi" toml:"dpi"`
}
