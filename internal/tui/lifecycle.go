package tui

import "github.com/oklog/ulid/v2"

// lifecycleStatus is the progression of one outbound request slot.
type lifecycleStatus int

const (
	// statusIdle means the slot has never been started this generation.
	statusIdle lifecycleStatus = iota
	// statusPending means a request is in flight.
	statusPending
	// statusSuccess means the slot holds a decoded value.
	statusSuccess
	// statusFailure means the slot holds a display error string.
	statusFailure
)

// lifecycle is one named request slot owned by a screen model. A slot never
// regresses from a terminal status; it is replaced wholesale by start. The
// token identifies the generation that issued the in-flight request: a
// completion carrying any other token is dropped silently, which is the
// sole defense against out-of-order responses racing a navigation or
// parameter change.
type lifecycle[T any] struct {
	status lifecycleStatus
	value  T
	errMsg string
	token  string
}

// newToken mints an opaque generation token.
func newToken() string {
	return ulid.Make().String()
}

// start replaces the slot with a fresh pending generation and returns its
// token. Any response from a previously issued request for this slot is
// invalidated by the token change.
func (l *lifecycle[T]) start() string {
	tok := newToken()
	*l = lifecycle[T]{status: statusPending, token: tok}
	return tok
}

// resolve applies a completion to the slot. Stale tokens are ignored
// without mutating state. A non-nil err moves the slot to Failure with the
// error's display text; otherwise the slot holds value in Success.
func (l *lifecycle[T]) resolve(token string, value T, err error) {
	if token != l.token || l.status != statusPending {
		return
	}
	if err != nil {
		l.status = statusFailure
		l.errMsg = err.Error()
		return
	}
	l.status = statusSuccess
	l.value = value
}

// idle reports whether the slot was never started.
func (l *lifecycle[T]) idle() bool { return l.status == statusIdle }

// pending reports whether a request is in flight.
func (l *lifecycle[T]) pending() bool { return l.status == statusPending }

// ok reports whether the slot holds a value.
func (l *lifecycle[T]) ok() bool { return l.status == statusSuccess }

// failed reports whether the slot holds an error.
func (l *lifecycle[T]) failed() bool { return l.status == statusFailure }
