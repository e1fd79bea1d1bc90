package services

// Kind classifies a service failure. Handlers map each kind to one HTTP status.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindUnavailable
)

// Error is a caller-facing failure. Message is safe to return verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func invalid(msg string) error  { return &Error{Kind: KindInvalid, Message: msg} }
func notFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

var (
	errUnauthorized = &Error{Kind: KindUnauthenticated, Message: "Unauthorized"}
	errForbidden    = &Error{Kind: KindForbidden, Message: "Forbidden"}
)
