// Package resource models the outcome of a fund data request as seen by
// the presentation layer: a short stream of Results that starts with
// Loading and ends with exactly one Success or Error.
package resource

// Status identifies which variant of a Result is active.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Kind classifies a failed request for the user.
type Kind int

const (
	KindNone Kind = iota
	// KindUnreachable means the upstream could not be reached.
	KindUnreachable
	// KindServerError means the upstream answered with an error status.
	KindServerError
	// KindUnexpected covers everything else, such as malformed payloads.
	KindUnexpected
)

// Message returns the user-facing text for the kind.
func (k Kind) Message() string {
	switch k {
	case KindUnreachable:
		return "Couldn't reach server, check your internet connection."
	case KindServerError:
		return "Oops, something went wrong!"
	case KindUnexpected:
		return "An unexpected error occurred"
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindServerError:
		return "server_error"
	case KindUnexpected:
		return "unexpected"
	default:
		return "none"
	}
}

// Result is one element of a request's stream. Data is only meaningful
// when Status is StatusSuccess; Kind and Message only when it is StatusError.
type Result[T any] struct {
	Status  Status
	Data    T
	Kind    Kind
	Message string
}

// Loading returns the in-flight marker.
func Loading[T any]() Result[T] {
	return Result[T]{Status: StatusLoading}
}

// Success wraps a value.
func Success[T any](data T) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: data}
}

// Failure returns an error Result carrying the kind's message.
func Failure[T any](kind Kind) Result[T] {
	return Result[T]{Status: StatusError, Kind: kind, Message: kind.Message()}
}

func (r Result[T]) IsLoading() bool { return r.Status == StatusLoading }
func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }
func (r Result[T]) IsError() bool   { return r.Status == StatusError }

// Await drains a stream and returns its last Result. A stream that closes
// without emitting anything yields a zero Result in the loading state.
func Await[T any](stream <-chan Result[T]) Result[T] {
	var last Result[T]
	for r := range stream {
		last = r
	}
	return last
}

// Collect drains a stream and returns every Result in order.
func Collect[T any](stream <-chan Result[T]) []Result[T] {
	var all []Result[T]
	for r := range stream {
		all = append(all, r)
	}
	return all
}
