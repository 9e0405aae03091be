package types

import (
	"encoding/json"
	"errors"
)

// Result is either a successful value or a failure. The zero value is a
// failure with no error attached; use Success or Failure to build one.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Success wraps v in a successful Result.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Failure wraps err in a failed Result. A nil err is replaced by a generic
// error so a failure always carries a message.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return Result[T]{err: err}
}

// OK reports whether the result is a success.
func (r Result[T]) OK() bool { return r.ok }

// Value returns the success value and true, or the zero value and false.
func (r Result[T]) Value() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Err returns the failure error, or nil on success.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	if r.err == nil {
		return errors.New("unknown failure")
	}
	return r.err
}

// Message returns the failure text, or "" on success.
func (r Result[T]) Message() string {
	if err := r.Err(); err != nil {
		return err.Error()
	}
	return ""
}

// Unwrap returns the value and error in the conventional Go pair.
func (r Result[T]) Unwrap() (T, error) {
	v, _ := r.Value()
	return v, r.Err()
}

type resultJSON[T any] struct {
	Success bool   `json:"success"`
	Output  *T     `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

// MarshalJSON encodes the result as {"success":true,"output":...} or
// {"success":false,"error":"..."}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.ok {
		v := r.value
		return json.Marshal(resultJSON[T]{Success: true, Output: &v})
	}
	return json.Marshal(resultJSON[T]{Error: r.Message()})
}
