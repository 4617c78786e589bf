package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// TokenRepositoryImpl implementa o CredentialRepository lendo variável de
// ambiente ou arquivo local.
type TokenRepositoryImpl struct {
	getenv   func(string) string
	readFile func(string) ([]byte, error)
}

// NewTokenRepository cria uma nova implementação do CredentialRepository.
func NewTokenRepository() repository.CredentialRepository {
	return &TokenRepositoryImpl{getenv: os.Getenv, readFile: os.ReadFile}
}

// LoadToken returns the token from envVar when it is set, otherwise the
// trimmed content of the file at path.
func (r *TokenRepositoryImpl) LoadToken(path, envVar string) (string, error) {
	if envVar != "" {
		if token := strings.TrimSpace(r.getenv(envVar)); token != "" {
			return token, nil
		}
	}

	if path == "" {
		return "", types.ErrMissingCredentials
	}

	data, err := r.readFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w (env %s, file %s)", types.ErrMissingCredentials, envVar, path)
	}
	if err != nil {
		return "", fmt.Errorf("error reading token file %s: %w", path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: token file %s is empty", types.ErrMissingCredentials, path)
	}
	return token, nil
}
