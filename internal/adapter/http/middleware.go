package http

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dchest/uniuri"

	"github.com/jamalishaq/rawhttp/internal/usecase"
)

const requestIDHeader = "X-Request-Id"

// LoggingMiddleware logs method, path, status code, and request duration.
// Requests without an X-Request-Id header get a generated one, which is
// echoed back on the response.
func LoggingMiddleware(logger usecase.Logger) Middleware {
	return func(next Handler) Handler {
		return func(req *Request) (*Response, error) {
			startedAt := time.Now()
			resp, err := safeInvoke(next, req)
			duration := time.Since(startedAt)

			requestID, correlationID := requestIdentifiers(req)
			if requestID == "" {
				requestID = uniuri.New()
			}

			statusCode := 500
			if err == nil {
				statusCode = resp.status()
				resp.SetHeader(requestIDHeader, requestID)
			}

			logInfo(logger, "http request",
				"method", requestMethod(req),
				"path", requestPath(req),
				"status", statusCode,
				"duration", duration.String(),
				"request_id", requestID,
				"correlation_id", correlationID,
			)
			return resp, err
		}
	}
}

// RecoveryMiddleware turns panics from downstream handlers into handler
// failures wrapping ErrHandlerPanic.
func RecoveryMiddleware(logger usecase.Logger) Middleware {
	return func(next Handler) Handler {
		return func(req *Request) (resp *Response, err error) {
			defer func() {
				if recovered := recover(); recovered != nil {
					requestID, correlationID := requestIdentifiers(req)
					logError(logger, "panic recovered",
						"method", requestMethod(req),
						"path", requestPath(req),
						"panic", recovered,
						"request_id", requestID,
						"correlation_id", correlationID,
					)

					resp, err = nil, fmt.Errorf("%w: %v", ErrHandlerPanic, recovered)
				}
			}()

			return safeInvoke(next, req)
		}
	}
}

// TimeoutMiddleware returns 408 when downstream handling exceeds the timeout.
// A non-positive timeout disables it.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next Handler) Handler {
		return func(req *Request) (*Response, error) {
			if timeout <= 0 {
				return safeInvoke(next, req)
			}

			timeoutCtx, cancel := context.WithTimeout(req.Context(), timeout)
			defer cancel()

			reqWithTimeout := withRequestContext(req, timeoutCtx)
			type result struct {
				resp *Response
				err  error
			}
			resultCh := make(chan result, 1)

			go func() {
				defer func() {
					if recovered := recover(); recovered != nil {
						resultCh <- result{err: fmt.Errorf("%w: %v", ErrHandlerPanic, recovered)}
					}
				}()
				resp, err := safeInvoke(next, reqWithTimeout)
				resultCh <- result{resp: resp, err: err}
			}()

			select {
			case res := <-resultCh:
				return res.resp, res.err
			case <-timeoutCtx.Done():
				if !errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
					return nil, timeoutCtx.Err()
				}
				return textResponse(408, "Request Timeout"), nil
			}
		}
	}
}

// withRequestContext clones req with the provided context.
func withRequestContext(req *Request, ctx context.Context) *Request {
	if req == nil {
		return &Request{Ctx: ctx}
	}
	cloned := *req
	cloned.Ctx = ctx
	return &cloned
}

// safeInvoke executes the next handler and guarantees a response when no
// error is returned.
func safeInvoke(next Handler, req *Request) (*Response, error) {
	if next == nil {
		return nil, ErrNilHandler
	}

	resp, err := next(req)
	if err == nil && resp == nil {
		return nil, ErrNilResponse
	}
	return resp, err
}

// requestMethod extracts the method from the request safely.
func requestMethod(req *Request) string {
	if req == nil {
		return ""
	}
	return req.Method
}

// requestPath extracts the path from the request safely.
func requestPath(req *Request) string {
	if req == nil {
		return ""
	}
	return req.Path
}

// requestIdentifiers extracts request/correlation IDs from headers.
func requestIdentifiers(req *Request) (string, string) {
	if req == nil {
		return "", ""
	}
	return strings.TrimSpace(req.Headers.Get("x-request-id")), strings.TrimSpace(req.Headers.Get("x-correlation-id"))
}
