package errx

import (
	"errors"
	"fmt"
)

// Type classifies an error for propagation policy decisions.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeBusiness      Type = "BUSINESS"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// Code identifies a registered error kind within a registry.
type Code string

type definition struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry holds the error codes of one domain package. Each domain
// registers its codes once at package init.
type Registry struct {
	prefix string
	codes  map[Code]definition
}

// NewRegistry creates a registry whose codes are namespaced by prefix.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[Code]definition),
	}
}

// Register adds a code to the registry and returns it for later use with New.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "." + code)
	r.codes[full] = definition{
		errType:    t,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New creates an error for a registered code. Conflict-typed errors are
// marked retryable: the caller may re-fetch and try again.
func (r *Registry) New(code Code) *Error {
	def, ok := r.codes[code]
	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: 500,
		}
	}

	return &Error{
		Code:       code,
		Type:       def.errType,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
		Retryable:  def.errType == TypeConflict,
	}
}

// NewWithCause creates an error for a registered code wrapping an underlying cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	err := r.New(code)
	err.cause = cause
	return err
}

// Error is a typed, detail-carrying error with an HTTP mapping.
type Error struct {
	Code       Code           `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Retryable  bool           `json:"retryable,omitempty"`
	Details    map[string]any `json:"details,omitempty"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetail attaches a key/value pair to the error and returns it for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches multiple key/value pairs at once.
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// ToHTTPResponse renders the error as a JSON-serializable response body.
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"code":    e.Code,
		"type":    e.Type,
		"message": e.Message,
	}
	if e.Retryable {
		resp["retryable"] = true
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Wrap converts an arbitrary error into an *Error of the given type. Already
// typed errors pass through unchanged so codes survive service boundaries.
func Wrap(err error, message string, t Type) *Error {
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	status := 500
	switch t {
	case TypeValidation:
		status = 400
	case TypeNotFound:
		status = 404
	case TypeConflict:
		status = 409
	case TypeExternal:
		status = 502
	}

	return &Error{
		Code:       Code(string(t) + ".WRAPPED"),
		Type:       t,
		Message:    message,
		HTTPStatus: status,
		Retryable:  t == TypeConflict,
		cause:      err,
	}
}

// IsCode reports whether err is an *Error carrying the given code.
func IsCode(err error, code Code) bool {
	var typed *Error
	return errors.As(err, &typed) && typed.Code == code
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, t Type) bool {
	var typed *Error
	return errors.As(err, &typed) && typed.Type == t
}

// IsRetryable reports whether the caller may retry the failed operation.
func IsRetryable(err error) bool {
	var typed *Error
	return errors.As(err, &typed) && typed.Retryable
}
