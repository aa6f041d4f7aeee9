// Package recovery provides panic recovery around caller-supplied parsers.
// Ensures a misbehaving filter-text parser can't crash the calling service.
package recovery

import (
	"log/slog"
	"runtime/debug"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Call invokes a function that returns a value and an error, converting a
// panic into a codes.Internal status error and logging the stack trace.
//
// Example:
//
//	expr, err := recovery.Call(logger, "Parse", func() (filter.Expression, error) {
//	    return parser.Parse(text)
//	})
func Call[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()

			logger.Error("Panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(stack),
			)

			var zero T
			result = zero
			err = status.Errorf(codes.Internal, "%s panicked: %v", operation, r)
		}
	}()

	return fn()
}
