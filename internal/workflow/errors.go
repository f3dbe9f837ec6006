package workflow

// The workflow reports expected failures as typed errors so the HTTP layer
// can pick status codes without string matching. Unexpected storage errors
// pass through unwrapped and map to 500.

// ValidationError means the input shape is wrong (missing or malformed field).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ReferentialError means a referenced customer or meal plan does not exist.
type ReferentialError struct {
	Message string
}

func (e *ReferentialError) Error() string { return e.Message }

// NotFoundError means the id being operated on resolves to nothing.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError means the create collides with existing state, such as a
// duplicate customer email.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
