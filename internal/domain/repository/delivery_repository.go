package repository

import (
	"context"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
)

// DeliveryRepository posts a rendered report to a messaging channel.
type DeliveryRepository interface {
	Upload(ctx context.Context, token string, upload entity.ArtifactUpload) error
}

// CredentialRepository loads the messaging bot token.
type CredentialRepository interface {
	LoadToken(path, envVar string) (string, error)
}
