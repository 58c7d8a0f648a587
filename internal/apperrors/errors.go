package apperrors

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned when the request parameters are invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTokenMismatch is returned when amounts of different tokens are combined.
	ErrTokenMismatch = errors.New("token mismatch")

	// ErrPathExceedsLimit is returned when a path cannot carry the requested
	// amount at the current pool state.
	ErrPathExceedsLimit = errors.New("swap amount exceeds maximum for path")

	// ErrCyclicNesting is returned when a pool share token is nested inside itself.
	ErrCyclicNesting = errors.New("cyclic pool nesting")

	// ErrSimulationFailed is returned when the query simulation reverted, failed
	// in transport or returned data that could not be decoded.
	ErrSimulationFailed = errors.New("simulation failed")

	// ErrUnsupportedOperation is returned for an action and pool type combination
	// the builder has no capability for.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrMalformedGraph is returned when a call graph consumes an output
	// reference before it is produced or produces one twice.
	ErrMalformedGraph = errors.New("malformed call graph")
)

// Taxonomy kinds returned by Kind.
const (
	KindTokenMismatch        = "token_mismatch"
	KindPathExceedsLimit     = "path_exceeds_limit"
	KindCyclicNesting        = "cyclic_nesting"
	KindSimulationFailed     = "simulation_failed"
	KindUnsupportedOperation = "unsupported_operation"
	KindMalformedGraph       = "malformed_graph"
	KindInvalidArgument      = "invalid_argument"
	KindInternal             = "internal"
)

// Kind names the taxonomy kind of err, or "internal" when err does not wrap
// any of the known sentinels.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTokenMismatch):
		return KindTokenMismatch
	case errors.Is(err, ErrPathExceedsLimit):
		return KindPathExceedsLimit
	case errors.Is(err, ErrCyclicNesting):
		return KindCyclicNesting
	case errors.Is(err, ErrSimulationFailed):
		return KindSimulationFailed
	case errors.Is(err, ErrUnsupportedOperation):
		return KindUnsupportedOperation
	case errors.Is(err, ErrMalformedGraph):
		return KindMalformedGraph
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	default:
		return KindInternal
	}
}
