package services

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ServiceError represents a typed error with an HTTP status code. Err carries the
// underlying cause for logging and is never sent to the client.
type ServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func badRequest(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Message: msg}
}

func notFound(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: msg}
}

func serverError(err error) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Server error", Err: err}
}

// MetricsRecorder publishes counters. *aws.MetricsClient satisfies it and is a no-op when disabled.
type MetricsRecorder interface {
	RecordCount(ctx context.Context, name string, dimensions map[string]string) error
}

type noopMetrics struct{}

func (noopMetrics) RecordCount(context.Context, string, map[string]string) error { return nil }

func metricsOrNoop(m MetricsRecorder) MetricsRecorder {
	if m == nil {
		return noopMetrics{}
	}
	return m
}

const metricsTimeout = 5 * time.Second

// recordCountAsync publishes a counter off the request path with its own deadline.
func recordCountAsync(m MetricsRecorder, logger *zap.Logger, name string, dimensions map[string]string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsTimeout)
		defer cancel()
		if err := m.RecordCount(ctx, name, dimensions); err != nil {
			logger.Warn("Failed to record metric", zap.String("metric", name), zap.Error(err))
		}
	}()
}
