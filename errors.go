package filterscope

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Standard errors returned by the filterscope package.
var (
	// ErrInvalidConfig indicates Config validation failed.
	ErrInvalidConfig = errors.New("invalid rewriter config")

	// ErrNoParser indicates textual input was given without a configured
	// Parser.
	ErrNoParser = errors.New("no filter parser configured")
)

// BadRequestError reports invalid caller-supplied filter input. Conversion
// is all-or-nothing, so the first classification error in traversal order
// aborts the rewrite and every BadRequestError carries exactly one reason.
type BadRequestError struct {
	// Reason is the classification error of the first failing field node.
	Reason string
}

// Error returns the classification message with the fixed client-fault
// suffix required by existing callers.
func (e *BadRequestError) Error() string {
	return e.Reason + ": Bad Request"
}

// GRPCStatus classifies the fault as codes.InvalidArgument so gRPC front
// ends propagate it without remapping.
func (e *BadRequestError) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}
