package summarizer

import "errors"

var (
	ErrUnknownMethod  = errors.New("unknown summarization method")
	ErrEmptyResponse  = errors.New("empty response")
	ErrMissingAPIKey  = errors.New("api key not set")
	ErrNoModels       = errors.New("no models loaded in LM Studio")
	ErrUnexpectedBody = errors.New("unexpected response shape")
)
