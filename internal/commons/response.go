// Package commons holds the response envelope shared by every service
// and controller.
package commons

// Response is the uniform service result: a success flag, a
// human-readable message, the typed payload when one exists, and error
// details when it does not. A failed transfer is the one case that
// carries both Data and Errors.
type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}
