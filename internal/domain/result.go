package domain

import "errors"

// Result is the envelope every endpoint answers with.
// Code is 0 on success; Data only appears on success and Message only on failure.
type Result struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success wraps an optional payload. Passing no payload yields an envelope
// without data.
func Success(payload ...any) Result {
	r := Result{Code: KindSuccess.Code()}
	if len(payload) > 0 {
		r.Data = payload[0]
	}
	return r
}

// Failure builds a failed envelope with an explicit code. A success code or
// one outside the published set is coerced to KindInternal.
func Failure(code int, message string) Result {
	if code == KindSuccess.Code() || !ErrorKind(code).Known() {
		code = KindInternal.Code()
	}
	if message == "" {
		message = ErrorKind(code).Message()
	}
	return Result{Code: code, Message: message}
}

// FailureKind resolves a taxonomy kind to its canonical code and message.
func FailureKind(kind ErrorKind) Result {
	return Failure(kind.Code(), kind.Message())
}

// FromError converts err into a failed envelope. Errors outside the taxonomy
// become KindInternal without leaking their text.
func FromError(err error) Result {
	if err == nil {
		return Success()
	}
	var de *Error
	if errors.As(err, &de) {
		return Failure(de.Kind.Code(), de.PublicMessage())
	}
	return FailureKind(KindInternal)
}

func (r Result) OK() bool { return r.Code == KindSuccess.Code() }
