package rcon

import "errors"

// Sentinel errors for the failure classes callers need to tell apart.
// Wrapped errors carry detail; check with errors.Is.
var (
	// ErrConnect covers DNS failure, TCP refusal, or a timeout before any
	// byte was exchanged.
	ErrConnect = errors.New("rcon: connect failed")

	// ErrAuth means the TCP connection succeeded but the server rejected
	// the password (auth response with request id -1).
	ErrAuth = errors.New("rcon: authentication rejected")

	// ErrProtocol means the peer sent a malformed or unexpected frame,
	// which usually indicates a non-RCON or incompatible server.
	ErrProtocol = errors.New("rcon: protocol violation")

	// ErrCommand covers a timeout or connection drop mid-command, after
	// authentication already succeeded.
	ErrCommand = errors.New("rcon: command failed")
)
