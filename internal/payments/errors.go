package payments

import "errors"

// Kind classifies payment-subsystem failures so handlers can map them
// to HTTP responses without string matching.
type Kind string

const (
	KindNotPayable          Kind = "not_payable"
	KindMentorNotReady      Kind = "mentor_not_ready"
	KindNotProvisioned      Kind = "not_provisioned"
	KindPaymentNotConfirmed Kind = "payment_not_confirmed"
	KindMalformedSession    Kind = "malformed_session"
	KindInvalidTransition   Kind = "invalid_transition"
	KindUpstream            Kind = "upstream"
	KindSignatureInvalid    Kind = "signature_invalid"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func E(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the Kind from an error chain, or "" for plain errors.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
