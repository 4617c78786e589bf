package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/chart"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/credentials"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/export"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driven/slack"
	"github.com/diillson/aws-cost-report-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-cost-report-go/internal/application/usecase"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/diillson/aws-cost-report-go/pkg/console"
	"github.com/diillson/aws-cost-report-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	costRepo := aws.NewCostRepository()
	deliveryRepo := slack.NewDeliveryRepository()
	tokenRepo := credentials.NewTokenRepository()
	exportRepo := export.NewExportRepository()
	consoleImpl := console.NewConsole()

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	configRepo := config.NewConfigRepository(cwd)

	newRenderer := func(opts types.ReportOptions) repository.ChartRenderer {
		return chart.NewRenderer(chart.Options{
			WidthInches:  opts.Chart.WidthInches,
			HeightInches: opts.Chart.HeightInches,
			DPI:          opts.Chart.DPI,
			FoldChange:   opts.FoldChange,
		})
	}

	// Inicializa o caso de uso
	reportUseCase := usecase.NewReportUseCase(
		costRepo,
		newRenderer,
		deliveryRepo,
		tokenRepo,
		exportRepo,
		consoleImpl,
	)

	app.SetReportUseCase(reportUseCase)
	app.SetConfigRepository(configRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Executa o aplicativo
	if err := app.Execute(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
