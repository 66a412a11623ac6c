package http

import (
	"errors"
	"fmt"

	"github.com/jamalishaq/rawhttp/internal/domain"
	"github.com/jamalishaq/rawhttp/internal/usecase"
)

// AdaptUseCaseHandler translates HTTP requests to use case input and back to
// HTTP responses. Domain errors become 4xx responses; any other use case
// error is returned as a handler failure.
func AdaptUseCaseHandler(handler usecase.Handler) Handler {
	return func(req *Request) (*Response, error) {
		if handler == nil {
			return nil, ErrNilHandler
		}

		output, err := handler.Handle(req.Context(), toUseCaseInput(req))
		if err != nil {
			return mapUseCaseError(err)
		}

		contentType := output.ContentType
		if contentType == "" {
			contentType = textContentType
		}
		return NewResponse().
			SetHeader("Content-Type", contentType).
			SetBody(output.Body), nil
	}
}

// toUseCaseInput converts an HTTP request into transport-agnostic use case input.
func toUseCaseInput(req *Request) usecase.RequestInput {
	input := usecase.RequestInput{ContentLength: -1}

	if req != nil {
		input.Method = req.Method
		input.Path = req.Path
		input.Version = req.Version
		input.Headers = req.Headers.Clone()
		input.Body = copyBody(req.Body)
		if n, ok := req.ContentLength(); ok {
			input.ContentLength = n
		}
	}

	return input
}

// copyBody clones request body bytes to preserve adapter/use-case boundaries.
func copyBody(body []byte) []byte {
	if body == nil {
		return nil
	}

	cloned := make([]byte, len(body))
	copy(cloned, body)
	return cloned
}

// mapUseCaseError maps domain errors to HTTP responses and passes anything
// else through as a failure.
func mapUseCaseError(err error) (*Response, error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return textResponse(400, "Bad Request"), nil
	case errors.Is(err, domain.ErrUnauthorized):
		return textResponse(401, "Unauthorized"), nil
	case errors.Is(err, domain.ErrNotFound):
		return textResponse(404, "Not Found"), nil
	default:
		return nil, fmt.Errorf("use case: %w", err)
	}
}
