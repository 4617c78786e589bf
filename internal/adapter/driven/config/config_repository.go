package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// DefaultConfigBase é o nome procurado no diretório atual quando nenhum
// arquivo é informado.
const DefaultConfigBase = "aws-cost-report"

var defaultExtensions = []string{".toml", ".yaml", ".yml", ".json"}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	searchDir string
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
// Sem arquivo explícito, procura aws-cost-report.{toml,yaml,yml,json} em searchDir.
func NewConfigRepository(searchDir string) repository.ConfigRepository {
	return &ConfigRepositoryImpl{searchDir: searchDir}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
// Com filePath vazio e nenhum arquivo padrão presente, retorna (nil, nil).
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	if filePath == "" {
		found, err := r.findDefault()
		if err != nil || found == "" {
			return nil, err
		}
		filePath = found
	}

	fileExtension := strings.ToLower(filepath.Ext(filePath))

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}

	return &config, nil
}

func (r *ConfigRepositoryImpl) findDefault() (string, error) {
	if r.searchDir == "" {
		return "", nil
	}
	for _, ext := range defaultExtensions {
		candidate := filepath.Join(r.searchDir, DefaultConfigBase+ext)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("error accessing config file: %w", err)
		}
	}
	return "", nil
}

func validateConfig(c *types.Config) error {
	if c.Days < 0 {
		return fmt.Errorf("days must not be negative, got %d", c.Days)
	}
	if c.LookbackDays != nil && *c.LookbackDays < 0 {
		return fmt.Errorf("lookback_days must not be negative, got %d", *c.LookbackDays)
	}
	if c.RollingWindow < 0 {
		return fmt.Errorf("rolling_window must not be negative, got %d", c.RollingWindow)
	}
	if f := c.ThresholdFraction; f != nil && (*f < 0 || *f >= 1) {
		return fmt.Errorf("threshold_fraction must be in [0, 1), got %g", *f)
	}
	for _, t := range c.ReportType {
		switch t {
		case "csv", "json", "pdf":
		default:
			return fmt.Errorf("unsupported report_type %q", t)
		}
	}
	return nil
}
