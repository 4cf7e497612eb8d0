// Package invoke adapts handler functions to the Lambda entry point.
package invoke

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/smithy-go"
)

// RequestID returns the Lambda request id carried by ctx, or "".
func RequestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return ""
}

// Wrap logs the request id, then runs body. A failure is logged with its stack
// and returned unchanged so the runtime reports the invocation as failed.
// Panics are logged and re-raised.
func Wrap[E, R any](log *slog.Logger, body func(context.Context, E) (R, error)) func(context.Context, E) (R, error) {
	return func(ctx context.Context, event E) (result R, err error) {
		log.InfoContext(ctx, "request ID", slog.String("request_id", RequestID(ctx)))

		defer func() {
			if r := recover(); r != nil {
				log.ErrorContext(ctx, "invocation panicked",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())))
				panic(r)
			}
		}()

		result, err = body(ctx, event)
		if err != nil {
			log.ErrorContext(ctx, "invocation failed", failureAttrs(err)...)
			var zero R
			return zero, err
		}
		return result, nil
	}
}

func failureAttrs(err error) []any {
	attrs := []any{
		slog.String("error", err.Error()),
		slog.String("stack", fmt.Sprintf("%+v", err)),
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		attrs = append(attrs, slog.String("error_code", apiErr.ErrorCode()))
	}
	return attrs
}
