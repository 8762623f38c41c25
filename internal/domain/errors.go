package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is a stable failure category surfaced to callers. Its numeric
// value is the envelope code and must never change once published.
type ErrorKind int

const (
	KindSuccess ErrorKind = 0

	// business outcomes
	KindInvalidCredentials ErrorKind = 1001
	KindUnauthenticated    ErrorKind = 1002
	KindInvalidParameter   ErrorKind = 1003
	KindTooManyRequests    ErrorKind = 1004
	KindForbidden          ErrorKind = 1005

	// storage outcomes
	KindDuplicateEntry ErrorKind = 2001
	KindInsertFailed   ErrorKind = 2002
	KindSelectFailed   ErrorKind = 2003
	KindDeleteFailed   ErrorKind = 2004
	KindNotFoundEntry  ErrorKind = 2005
	KindUpdateFailed   ErrorKind = 2006

	KindInternal ErrorKind = 5000
)

var kindInfo = map[ErrorKind]struct {
	name    string
	message string
}{
	KindSuccess:            {"Success", ""},
	KindInvalidCredentials: {"InvalidCredentials", "invalid username or password"},
	KindUnauthenticated:    {"Unauthenticated", "login required"},
	KindInvalidParameter:   {"InvalidParameter", "invalid parameter"},
	KindTooManyRequests:    {"TooManyRequests", "too many requests"},
	KindForbidden:          {"Forbidden", "permission denied"},
	KindDuplicateEntry:     {"DuplicateEntry", "duplicate entry"},
	KindInsertFailed:       {"InsertFailed", "insert failed"},
	KindSelectFailed:       {"SelectFailed", "select failed"},
	KindDeleteFailed:       {"DeleteFailed", "delete failed"},
	KindNotFoundEntry:      {"NotFoundEntry", "entry not found"},
	KindUpdateFailed:       {"UpdateFailed", "update failed"},
	KindInternal:           {"Internal", "internal error"},
}

// Kinds lists every published kind, success first.
func Kinds() []ErrorKind {
	return []ErrorKind{
		KindSuccess,
		KindInvalidCredentials, KindUnauthenticated, KindInvalidParameter, KindTooManyRequests, KindForbidden,
		KindDuplicateEntry, KindInsertFailed, KindSelectFailed, KindDeleteFailed, KindNotFoundEntry, KindUpdateFailed,
		KindInternal,
	}
}

func (k ErrorKind) Code() int { return int(k) }

// Message returns the canonical human-readable text of the kind.
func (k ErrorKind) Message() string {
	if info, ok := kindInfo[k]; ok {
		return info.message
	}
	return kindInfo[KindInternal].message
}

func (k ErrorKind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Known reports whether k belongs to the published set.
func (k ErrorKind) Known() bool {
	_, ok := kindInfo[k]
	return ok
}

// Expected reports whether the kind is a business outcome rather than a
// system failure. Expected outcomes are not logged as errors.
func (k ErrorKind) Expected() bool {
	switch k {
	case KindInvalidCredentials, KindUnauthenticated, KindInvalidParameter, KindTooManyRequests, KindForbidden,
		KindDuplicateEntry, KindNotFoundEntry, KindDeleteFailed:
		return true
	}
	return false
}

// Error carries a taxonomy kind plus the operation that produced it.
// Msg is caller-safe; Err is the internal cause and never reaches the envelope.
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.Message()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// PublicMessage is the text safe to hand to callers.
func (e *Error) PublicMessage() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Kind.Message()
}

// E builds an *Error for op with the given kind and optional cause.
func E(kind ErrorKind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// Invalid builds an InvalidParameter error with a caller-visible message.
func Invalid(op, msg string) *Error {
	return &Error{Kind: KindInvalidParameter, Op: op, Msg: msg}
}

// KindOf extracts the taxonomy kind from err. ok is false when err carries none.
func KindOf(err error) (ErrorKind, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind, true
	}
	return KindInternal, false
}

func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func IsInvalidCredentials(err error) bool { return IsKind(err, KindInvalidCredentials) }

func IsUnauthenticated(err error) bool { return IsKind(err, KindUnauthenticated) }

func IsDuplicate(err error) bool { return IsKind(err, KindDuplicateEntry) }

func IsNotFound(err error) bool { return IsKind(err, KindNotFoundEntry) }
