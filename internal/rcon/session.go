package rcon

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Target identifies one game-server RCON endpoint. It is owned by the
// caller and passed in per operation; this package never stores it.
type Target struct {
	Host     string
	Password string
	Port     uint16
}

// Result is the outcome of one command sent within a session. A failed
// send is reported here instead of aborting the session, so multi-command
// operations can keep their partial results.
type Result struct {
	Stdout string
	Error  string
	Ok     bool
}

// SendFunc executes one command on the session's connection.
type SendFunc func(command string) Result

// Options bounds the two blocking phases of a session.
type Options struct {
	ConnectTimeout time.Duration
	CommandTimeout time.Duration
}

// Runner opens a session against a target and hands the caller a bound
// send function. The gateway depends on this interface so operations can
// be exercised without sockets.
type Runner interface {
	Run(target Target, fn func(send SendFunc) error) error
}

// Dialer is the production Runner: connection-per-session over TCP.
type Dialer struct {
	Options Options
}

// Run opens a Transport, authenticates, invokes fn with a bound send
// function, and closes the connection regardless of outcome. Commands sent
// through fn are delivered sequentially over the single connection in the
// order requested.
//
// Connect and auth failures are returned before fn runs. Failures of
// individual sends surface as Result{Ok: false} so fn decides whether a
// partial outcome is acceptable.
func (d Dialer) Run(target Target, fn func(send SendFunc) error) error {
	t, err := Dial(target.Host, target.Port, d.Options.ConnectTimeout, d.Options.CommandTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := t.Close(); cerr != nil {
			log.Debug().Err(cerr).Str("host", target.Host).Msg("Error closing RCON connection")
		}
	}()

	if err := t.Authenticate(target.Password); err != nil {
		return err
	}

	return fn(func(command string) Result {
		out, err := t.Send(command)
		if err != nil {
			return Result{Error: err.Error()}
		}
		return Result{Ok: true, Stdout: out}
	})
}
