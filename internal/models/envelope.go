package models

// Envelope is the result wrapper returned by every service operation.
// Success responses carry Data (nil for void operations) and usually a
// Message; failure responses carry Error.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Ok builds a successful envelope around data.
func Ok[T any](data T, message string) Envelope[T] {
	return Envelope[T]{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// Fail builds a failed envelope with the given error text.
func Fail[T any](errMsg string) Envelope[T] {
	return Envelope[T]{
		Success: false,
		Error:   errMsg,
	}
}

// Empty is the payload type of operations that return no data.
type Empty = any
