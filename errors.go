package sicontent

import (
	"errors"
	"fmt"
)

var (
	ErrNoEndpoint     = errors.New("sicontent: no endpoint configured")
	ErrDigestMismatch = errors.New("sicontent: digest does not match payload")
)

// Kind classifies a failed operation.
type Kind int

const (
	// KindIO means a local file could not be opened or fully read.
	KindIO Kind = iota + 1
	// KindNetwork means a request could not be sent or its response could
	// not be received.
	KindNetwork
	// KindHash means the digest of a payload could not be established.
	KindHash
	// KindRejected means the content service answered with a status the
	// operation does not accept.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io error"
	case KindNetwork:
		return "network error"
	case KindHash:
		return "hash error"
	case KindRejected:
		return "rejected"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by every Client operation and by the file helpers.
// Rejections carry the status code and the response body verbatim.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == KindRejected {
		return fmt.Sprintf("%s failed (%d): %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// ErrorStatus returns the HTTP status carried by a rejection, or 0.
func ErrorStatus(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindRejected {
		return e.Status
	}
	return 0
}

func ioError(op string, err error) error {
	return &Error{Kind: KindIO, Op: op, Err: err}
}

func networkError(op string, err error) error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

func hashError(op string, err error) error {
	return &Error{Kind: KindHash, Op: op, Err: err}
}

func rejectedError(op string, status int, body string) error {
	return &Error{Kind: KindRejected, Op: op, Status: status, Body: body}
}
