package serviceutil

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"connectrpc.com/otelconnect"
)

// Returns a context that will live until Ctrl+C is pressed or SIGTERM is received.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func NewConnectOtelInterceptor() (*otelconnect.Interceptor, error) {
	otelIntercept, err := otelconnect.NewInterceptor(
		otelconnect.WithTrustRemote(),
		otelconnect.WithoutServerPeerAttributes(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize otel interceptor: %w", err)
	}
	return otelIntercept, nil
}
