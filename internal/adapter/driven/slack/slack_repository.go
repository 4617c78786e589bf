package slack

import (
	"bytes"
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/domain/repository"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// fileUploader é o subconjunto do cliente do Slack usado para o upload.
type fileUploader interface {
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

// DeliveryRepositoryImpl implementa o DeliveryRepository com slack-go.
type DeliveryRepositoryImpl struct {
	newClient func(token string) fileUploader
}

// NewDeliveryRepository cria uma nova implementação do DeliveryRepository.
func NewDeliveryRepository(options ...slack.Option) repository.DeliveryRepository {
	return &DeliveryRepositoryImpl{
		newClient: func(token string) fileUploader {
			return slack.New(token, options...)
		},
	}
}

// Upload posts the artifact to its channel in a single call. Slack errors
// such as invalid_auth or channel_not_found are returned as-is, wrapped in
// ErrDeliveryFailed.
func (r *DeliveryRepositoryImpl) Upload(ctx context.Context, token string, upload entity.ArtifactUpload) error {
	if upload.Channel == "" {
		return fmt.Errorf("%w: no channel configured", types.ErrDeliveryFailed)
	}
	if len(upload.Content) == 0 {
		return fmt.Errorf("%w: empty artifact", types.ErrDeliveryFailed)
	}

	client := r.newClient(token)
	_, err := client.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Reader:         bytes.NewReader(upload.Content),
		FileSize:       len(upload.Content),
		Filename:       upload.Filename,
		Title:          upload.Title,
		InitialComment: upload.Comment,
		Channel:        upload.Channel,
	})
	if err != nil {
		return fmt.Errorf("%w to channel %s: %w", types.ErrDeliveryFailed, upload.Channel, err)
	}
	return nil
}
