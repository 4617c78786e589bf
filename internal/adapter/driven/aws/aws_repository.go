package aws

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/diillson/aws-cost-report-go/pkg/version"
)

// Cost Explorer e Budgets são serviços globais servidos a partir de us-east-1.
const globalRegion = "us-east-1"

type costExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type budgetsAPI interface {
	DescribeBudgets(ctx context.Context, params *budgets.DescribeBudgetsInput, optFns ...func(*budgets.Options)) (*budgets.DescribeBudgetsOutput, error)
}

// CostRepositoryImpl implementa o CostRepository com cache de clientes.
type CostRepositoryImpl struct {
	cfgCache    map[string]aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewCostRepository cria uma nova implementação do CostRepository.
func NewCostRepository() repository.CostRepository {
	return newCostRepository()
}

func newCostRepository() *CostRepositoryImpl {
	return &CostRepositoryImpl{
		cfgCache:    make(map[string]aws.Config),
		clientCache: make(map[string]interface{}),
	}
}

func (r *CostRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	opts := []func(*config.LoadOptions) error{
		config.WithAppID(version.AppID()),
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

func clientCacheKey(profile, region, service string) string {
	return fmt.Sprintf("%s-%s-%s", profile, region, service)
}

func (r *CostRepositoryImpl) getServiceClient(ctx context.Context, profile, region, service string) (interface{}, error) {
	cacheKey := clientCacheKey(profile, region, service)

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	if region != "" {
		regionalCfg.Region = region
	}

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "costexplorer":
		client = costexplorer.NewFromConfig(regionalCfg)
	case "budgets":
		client = budgets.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()

	return client, nil
}

// GetDailyCostByTag consulta o custo diário agrupado por uma tag, seguindo
// a paginação até o fim.
func (r *CostRepositoryImpl) GetDailyCostByTag(ctx context.Context, profile string, window entity.TimeWindow, tagKey, metric string) ([]entity.DailyCost, error) {
	if !window.Start.Before(window.End) {
		return nil, fmt.Errorf("%w: start %s must precede end %s", types.ErrInvalidWindow,
			window.Start.Format(entity.DateLayout), window.End.Format(entity.DateLayout))
	}

	client, err := r.getServiceClient(ctx, profile, globalRegion, "costexplorer")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrFetchFailed, err)
	}
	ceClient := client.(costExplorerAPI)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(window.Start.Format(entity.DateLayout)),
			End:   aws.String(window.End.Format(entity.DateLayout)),
		},
		Granularity: ceTypes.GranularityDaily,
		Metrics:     []string{metric},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeTag, Key: aws.String(tagKey)},
		},
	}

	var days []entity.DailyCost
	for {
		result, err := ceClient.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w (profile %q): %w", types.ErrFetchFailed, profile, err)
		}

		for _, period := range result.ResultsByTime {
			day, err := convertResultByTime(period, metric)
			if err != nil {
				return nil, err
			}
			days = append(days, day)
		}

		if result.NextPageToken == nil || *result.NextPageToken == "" {
			break
		}
		input.NextPageToken = result.NextPageToken
	}

	return days, nil
}

func convertResultByTime(period ceTypes.ResultByTime, metric string) (entity.DailyCost, error) {
	if period.TimePeriod == nil || period.TimePeriod.Start == nil {
		return entity.DailyCost{}, fmt.Errorf("%w: result without time period", types.ErrMalformedResponse)
	}
	date, err := time.Parse(entity.DateLayout, *period.TimePeriod.Start)
	if err != nil {
		return entity.DailyCost{}, fmt.Errorf("%w: bad period start %q: %v", types.ErrMalformedResponse, *period.TimePeriod.Start, err)
	}

	day := entity.DailyCost{Date: date, Groups: make([]entity.TagCost, 0, len(period.Groups))}
	for _, group := range period.Groups {
		value, ok := group.Metrics[metric]
		if !ok || value.Amount == nil {
			return entity.DailyCost{}, fmt.Errorf("%w: group %v on %s has no %s amount",
				types.ErrMalformedResponse, group.Keys, *period.TimePeriod.Start, metric)
		}
		tc := entity.TagCost{
			Keys:   append([]string(nil), group.Keys...),
			Amount: *value.Amount,
		}
		if value.Unit != nil {
			tc.Unit = *value.Unit
		}
		day.Groups = append(day.Groups, tc)
	}
	return day, nil
}

func (r *CostRepositoryImpl) GetAccountID(ctx context.Context, profile string) (string, error) {
	client, err := r.getServiceClient(ctx, profile, globalRegion, "sts")
	if err != nil {
		return "", err
	}
	stsClient := client.(stsAPI)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %q: %w", profile, err)
	}
	if result.Account == nil {
		return "", fmt.Errorf("caller identity for profile %q has no account", profile)
	}
	return *result.Account, nil
}

func (r *CostRepositoryImpl) GetBudgets(ctx context.Context, profile string) ([]entity.BudgetInfo, error) {
	client, err := r.getServiceClient(ctx, profile, globalRegion, "budgets")
	if err != nil {
		return nil, err
	}
	budgetsClient := client.(budgetsAPI)

	accountID, err := r.GetAccountID(ctx, profile)
	if err != nil {
		return nil, err
	}

	result, err := budgetsClient.DescribeBudgets(ctx, &budgets.DescribeBudgetsInput{
		AccountId: aws.String(accountID),
	})
	if err != nil {
		return nil, fmt.Errorf("error describing budgets: %w", err)
	}

	budgetsData := []entity.BudgetInfo{}
	for _, budget := range result.Budgets {
		b := entity.BudgetInfo{Name: aws.ToString(budget.BudgetName)}
		if budget.BudgetLimit != nil {
			b.Limit, _ = strconv.ParseFloat(aws.ToString(budget.BudgetLimit.Amount), 64)
		}
		if budget.CalculatedSpend != nil {
			if budget.CalculatedSpend.ActualSpend != nil {
				b.Actual, _ = strconv.ParseFloat(aws.ToString(budget.CalculatedSpend.ActualSpend.Amount), 64)
			}
			if budget.CalculatedSpend.ForecastedSpend != nil {
				b.Forecast, _ = strconv.ParseFloat(aws.ToString(budget.CalculatedSpend.ForecastedSpend.Amount), 64)
			}
		}
		budgetsData = append(budgetsData, b)
	}

	return budgetsData, nil
}
