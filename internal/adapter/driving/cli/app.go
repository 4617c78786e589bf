package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/diillson/aws-cost-report-go/internal/application/usecase"
	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/diillson/aws-cost-report-go/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	configRepo    repository.ConfigRepository
	version       string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:   "aws-cost-report",
		Short: "Daily AWS cost report by project, posted to Slack",
		Long: `Fetches daily AWS costs grouped by a cost allocation tag, keeps the
projects that matter, charts them against their rolling median and uploads
the chart to a Slack channel.`,
		Version:       version.FormatVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS Cost Report version: %s\n" .Version}}`)

	defaults := types.DefaultReportOptions()

	// Adiciona flags de linha de comando
	flags := rootCmd.Flags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file (default: ./aws-cost-report.{toml,yaml,yml,json} if present)")
	flags.StringP("profile", "p", "", "AWS profile to use (default: the SDK default chain)")
	flags.String("start", "", "First day of the report, YYYY-MM-DD (default: end minus --days)")
	flags.String("end", "", "Day after the last day of the report, YYYY-MM-DD (default: today, UTC)")
	flags.IntP("days", "t", defaults.Days, "Number of days shown on the chart")
	flags.Int("lookback", defaults.LookbackDays, "Extra days of history fetched for the rolling median")
	flags.Int("rolling-window", defaults.RollingWindow, "Number of days in the rolling median")
	flags.Float64("threshold", defaults.ThresholdFraction, "Drop projects whose peak is at or below this fraction of the summed peaks")
	flags.String("tag-key", defaults.TagKey, "Cost allocation tag that identifies a project")
	flags.String("metric", defaults.Metric, "Cost Explorer metric, e.g. BlendedCost or UnblendedCost")
	flags.String("channel", defaults.Channel, "Slack channel id to post the chart to")
	flags.String("token-file", defaults.TokenFile, "File holding the Slack bot token")
	flags.String("token-env", defaults.TokenEnv, "Environment variable holding the Slack bot token (wins over --token-file)")
	flags.String("comment", defaults.Comment, "Message posted with the chart")
	flags.Bool("no-fold-change", false, "Draw only the cost panel")
	flags.Bool("include-budgets", false, "Add AWS Budgets status to the Slack message")
	flags.Bool("dry-run", false, "Render and save the chart to --dir without posting it")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application. Cancelling ctx aborts in-flight AWS
// and Slack calls.
func (app *CLIApp) Execute(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// SetArgs substitui os argumentos da linha de comando (usado em testes).
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// resolveOptions merges defaults, the config file and explicit flags, in
// increasing order of precedence.
func (app *CLIApp) resolveOptions(cmd *cobra.Command) (types.ReportOptions, error) {
	opts := types.DefaultReportOptions()
	flags := cmd.Flags()

	configFile, _ := flags.GetString("config-file")
	if app.configRepo != nil {
		cfg, err := app.configRepo.LoadConfigFile(configFile)
		if err != nil {
			return opts, err
		}
		opts.ApplyConfig(cfg)
	}

	if flags.Changed("profile") {
		opts.Profile, _ = flags.GetString("profile")
	}
	if flags.Changed("days") {
		opts.Days, _ = flags.GetInt("days")
	}
	if flags.Changed("lookback") {
		opts.LookbackDays, _ = flags.GetInt("lookback")
	}
	if flags.Changed("rolling-window") {
		opts.RollingWindow, _ = flags.GetInt("rolling-window")
	}
	if flags.Changed("threshold") {
		opts.ThresholdFraction, _ = flags.GetFloat64("threshold")
	}
	if flags.Changed("tag-key") {
		opts.TagKey, _ = flags.GetString("tag-key")
	}
	if flags.Changed("metric") {
		opts.Metric, _ = flags.GetString("metric")
	}
	if flags.Changed("channel") {
		opts.Channel, _ = flags.GetString("channel")
	}
	if flags.Changed("token-file") {
		opts.TokenFile, _ = flags.GetString("token-file")
	}
	if flags.Changed("token-env") {
		opts.TokenEnv, _ = flags.GetString("token-env")
	}
	if flags.Changed("comment") {
		opts.Comment, _ = flags.GetString("comment")
	}
	if flags.Changed("no-fold-change") {
		noFold, _ := flags.GetBool("no-fold-change")
		opts.FoldChange = !noFold
	}
	if flags.Changed("include-budgets") {
		opts.IncludeBudgets, _ = flags.GetBool("include-budgets")
	}
	if flags.Changed("report-name") {
		opts.ReportName, _ = flags.GetString("report-name")
	}
	if flags.Changed("report-type") || len(opts.ReportType) == 0 {
		opts.ReportType, _ = flags.GetStringSlice("report-type")
	}
	if flags.Changed("dir") {
		opts.Dir, _ = flags.GetString("dir")
	}
	opts.DryRun, _ = flags.GetBool("dry-run")

	var err error
	if opts.Start, err = parseDateFlag(cmd, "start"); err != nil {
		return opts, err
	}
	if opts.End, err = parseDateFlag(cmd, "end"); err != nil {
		return opts, err
	}

	if opts.Days <= 0 && opts.Start.IsZero() {
		return opts, fmt.Errorf("%w: --days must be positive, got %d", types.ErrInvalidWindow, opts.Days)
	}
	if opts.LookbackDays < 0 || opts.RollingWindow < 0 {
		return opts, fmt.Errorf("%w: --lookback and --rolling-window must not be negative", types.ErrInvalidWindow)
	}
	if opts.ThresholdFraction < 0 || opts.ThresholdFraction >= 1 {
		return opts, fmt.Errorf("--threshold must be in [0, 1), got %g", opts.ThresholdFraction)
	}

	// Converte o diretório para caminho absoluto
	if opts.Dir != "" {
		absDir, err := filepath.Abs(opts.Dir)
		if err != nil {
			return opts, err
		}
		opts.Dir = absDir
	}

	return opts, nil
}

func parseDateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	value, _ := cmd.Flags().GetString(name)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(entity.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --%s %q is not a YYYY-MM-DD date", types.ErrInvalidWindow, name, value)
	}
	return t, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	opts, err := app.resolveOptions(cmd)
	if err != nil {
		return err
	}

	return app.reportUseCase.RunReport(cmd.Context(), opts)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}

// SetConfigRepository sets the repository used to load --config-file.
func (app *CLIApp) SetConfigRepository(configRepo repository.ConfigRepository) {
	app.configRepo = configRepo
}
