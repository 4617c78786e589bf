package types

import "errors"

var (
	ErrInvalidWindow      = errors.New("invalid time window")
	ErrFetchFailed        = errors.New("failed to fetch cost data from AWS Cost Explorer")
	ErrMalformedResponse  = errors.New("unexpected Cost Explorer response")
	ErrMalformedCost      = errors.New("malformed cost amount")
	ErrMissingCredentials = errors.New("slack token not found. Set the token environment variable or create the token file")
	ErrDeliveryFailed     = errors.New("failed to deliver report")
	ErrRenderFailed       = errors.New("failed to render report")
)
