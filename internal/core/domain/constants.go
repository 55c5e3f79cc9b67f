package domain

import "errors"

// SnapshotPrefix is the key namespace shared with whatever writes snapshot records.
const SnapshotPrefix = "motion::snapshot::"

var (
	ErrEmptyMessage    = errors.New("message has no text")
	ErrSelfMessage     = errors.New("message sent by the bot itself")
	ErrLookup          = errors.New("store lookup failed")
	ErrDelivery        = errors.New("delivery failed")
	ErrIdentity        = errors.New("identity lookup failed")
	ErrUnknownAccount  = errors.New("unknown account")
	ErrCommandNotFound = errors.New("command not found")
)

// ErrorKind returns the log label for an error of the dispatch taxonomy.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrSelfMessage):
		return "input"
	case errors.Is(err, ErrLookup):
		return "lookup"
	case errors.Is(err, ErrDelivery):
		return "delivery"
	case errors.Is(err, ErrIdentity), errors.Is(err, ErrUnknownAccount):
		return "identity"
	default:
		return "unknown"
	}
}
