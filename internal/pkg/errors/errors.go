package errors

import "errors"

// Custom application errors
var (
	ErrStoreUnavailable  = errors.New("task store is unavailable")              // Transient store read failure; the pass is skipped
	ErrInvalidThreshold  = errors.New("reminder threshold must be positive")    // Threshold <= 0 rejected, previous value kept
	ErrTaskNotFound      = errors.New("task not found")                         // Task not found
	ErrInvalidTask       = errors.New("invalid task")                           // Missing title, bad priority, ...
	ErrInvalidDateTime   = errors.New("invalid date/time format")               // Unparseable deadline from a caller
	ErrInvalidConfig     = errors.New("invalid configuration")                  // Bad environment value
	ErrDatabaseOperation = errors.New("database operation failed")              // Generic database error
	ErrLineAPI           = errors.New("failed to communicate with the LINE API") // Generic LINE API error
	ErrScheduling        = errors.New("scheduling failed")                      // Generic scheduling error
	ErrInternalServer    = errors.New("internal server error")                  // Generic internal error
)
