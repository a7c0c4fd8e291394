package models

import "errors"

// ErrorKindENUMType caller facing error kind
type ErrorKindENUMType string

const (
	// ErrorKindTopicTooLong post topic exceeds MaxTopicLength characters
	ErrorKindTopicTooLong ErrorKindENUMType = "TOPIC_TOO_LONG"
	// ErrorKindContentTooLong post content exceeds MaxContentLength characters
	ErrorKindContentTooLong ErrorKindENUMType = "CONTENT_TOO_LONG"
	// ErrorKindContentEmpty post content is empty
	ErrorKindContentEmpty ErrorKindENUMType = "CONTENT_EMPTY"
	// ErrorKindInvalidText post topic or content is not valid UTF-8
	ErrorKindInvalidText ErrorKindENUMType = "INVALID_TEXT"
	// ErrorKindIdentityCollision a post already exists under the identity
	ErrorKindIdentityCollision ErrorKindENUMType = "IDENTITY_COLLISION"
	// ErrorKindInvalidIdentity the post identity is malformed
	ErrorKindInvalidIdentity ErrorKindENUMType = "INVALID_IDENTITY"
	// ErrorKindUnauthorized the request is not authorized by the author
	ErrorKindUnauthorized ErrorKindENUMType = "UNAUTHORIZED"
	// ErrorKindPostNotFound no post exists under the identity
	ErrorKindPostNotFound ErrorKindENUMType = "POST_NOT_FOUND"
)

// Error a caller facing error. All errors of this type are terminal for the request
// which triggered it.
type Error struct {
	// Kind error kind
	Kind ErrorKindENUMType `json:"kind"`
	// Message fixed human readable message
	Message string `json:"message"`
}

// Error implement error
func (e *Error) Error() string {
	return e.Message
}

// Is errors of the same kind are equivalent
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

var (
	// ErrTopicTooLong post topic exceeds MaxTopicLength characters
	ErrTopicTooLong = &Error{
		Kind:    ErrorKindTopicTooLong,
		Message: "The provided topic should be 50 characters long maximum.",
	}
	// ErrContentTooLong post content exceeds MaxContentLength characters
	ErrContentTooLong = &Error{
		Kind:    ErrorKindContentTooLong,
		Message: "The provided content should be 280 characters long maximum.",
	}
	// ErrContentEmpty post content is empty
	ErrContentEmpty = &Error{
		Kind:    ErrorKindContentEmpty,
		Message: "The provided content should not be empty.",
	}
	// ErrInvalidText post topic or content is not valid UTF-8
	ErrInvalidText = &Error{
		Kind:    ErrorKindInvalidText,
		Message: "The provided topic and content should be valid UTF-8 text.",
	}
	// ErrIdentityCollision a post already exists under the identity
	ErrIdentityCollision = &Error{
		Kind:    ErrorKindIdentityCollision,
		Message: "A post already exists under the provided identity.",
	}
	// ErrInvalidIdentity the post identity is malformed
	ErrInvalidIdentity = &Error{
		Kind:    ErrorKindInvalidIdentity,
		Message: "The provided post identity is not valid.",
	}
	// ErrUnauthorized the request is not authorized by the author
	ErrUnauthorized = &Error{
		Kind:    ErrorKindUnauthorized,
		Message: "The request is not authorized by the provided author.",
	}
	// ErrPostNotFound no post exists under the identity
	ErrPostNotFound = &Error{
		Kind:    ErrorKindPostNotFound,
		Message: "No post exists under the provided identity.",
	}
)

// KindOf get the kind of a caller facing error within the error chain. Returns
// empty string if there is none.
func KindOf(err error) ErrorKindENUMType {
	var known *Error
	if errors.As(err, &known) {
		return known.Kind
	}
	return ""
}

// AsError get the caller facing error within the error chain
func AsError(err error) (*Error, bool) {
	var known *Error
	if errors.As(err, &known) {
		return known, true
	}
	return nil, false
}
