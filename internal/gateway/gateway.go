// Package gateway is the per-feature entry point for everything the
// dashboard does over RCON. Each operation validates its inputs, enforces
// the destination-address policy and per-caller rate limits, opens one or
// more sessions against the target, and shapes the aggregate outcome.
//
// Network failures are reported in results, never retried: an unreachable
// game server must not cause the dashboard to hang or hammer it.
package gateway

import (
	"errors"
	"strings"
	"sync"

	"github.com/mcraftr/craftd/internal/catalog"
	"github.com/mcraftr/craftd/internal/policy"
	"github.com/mcraftr/craftd/internal/rcon"
	"github.com/mcraftr/craftd/internal/storage"
	"github.com/rs/zerolog/log"
)

// Errors rejected synchronously, before any network call.
var (
	// ErrBlockedAddress deliberately carries no detail about which rule
	// matched, to avoid aiding reconnaissance.
	ErrBlockedAddress = errors.New("server address is not allowed")

	// ErrRateLimited means the caller exhausted its command budget.
	ErrRateLimited = errors.New("too many requests, try again later")
)

// ValidationError flags caller-supplied input that failed its format or
// allow-list check.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// RateLimiter is the external budget collaborator.
type RateLimiter interface {
	Allow(bucket, key string) bool
}

// AuditLog is the external persistence collaborator for the audit and chat
// trails. Writes are best-effort; a storage failure never fails an
// operation that already ran on the game server.
type AuditLog interface {
	LogAction(caller, action, target, detail string) error
	LogChat(caller, kind, player, message string) error
}

// ActionResult is the outcome shape shared by all mutating operations.
type ActionResult struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Ok      bool   `json:"ok"`
}

// Gateway holds the collaborators shared by all operations. It keeps no
// per-target state: the ServerTarget arrives with every call and sessions
// never outlive the operation that opened them.
type Gateway struct {
	runner  rcon.Runner
	limiter RateLimiter
	audit   AuditLog
	catalog *catalog.Catalog
}

// New constructs a Gateway. limiter and audit may be nil, disabling rate
// limits and the audit trail respectively.
func New(runner rcon.Runner, limiter RateLimiter, audit AuditLog, cat *catalog.Catalog) *Gateway {
	return &Gateway{
		runner:  runner,
		limiter: limiter,
		audit:   audit,
		catalog: cat,
	}
}

// precheck enforces the address policy and the caller's budget for one
// bucket. It runs before every network-touching operation.
func (g *Gateway) precheck(target *rcon.Target, caller, bucket string) error {
	if policy.IsBlockedHost(target.Host) {
		return ErrBlockedAddress
	}
	if target.Port == 0 {
		target.Port = rcon.DefaultPort
	}
	if g.limiter != nil && !g.limiter.Allow(bucket, caller) {
		return ErrRateLimited
	}

	return nil
}

// runOne opens a dedicated session, sends a single command, and closes.
// Connect and auth failures surface as a failed Result.
func (g *Gateway) runOne(target rcon.Target, command string) rcon.Result {
	var res rcon.Result
	err := g.runner.Run(target, func(send rcon.SendFunc) error {
		res = send(command)
		return nil
	})
	if err != nil {
		return rcon.Result{Error: err.Error()}
	}

	return res
}

// runParallel issues independent commands concurrently, each over its own
// session. Results are returned in command order.
func (g *Gateway) runParallel(target rcon.Target, commands []string) []rcon.Result {
	results := make([]rcon.Result, len(commands))

	var wg sync.WaitGroup
	for i, cmd := range commands {
		wg.Add(1)
		go func(i int, cmd string) {
			defer wg.Done()
			results[i] = g.runOne(target, cmd)
		}(i, cmd)
	}
	wg.Wait()

	return results
}

// runSequential sends commands in order over a single session. Per-command
// failures are reported in the corresponding Result; a session-level
// failure (connect, auth) fails every entry.
func (g *Gateway) runSequential(target rcon.Target, commands []string) []rcon.Result {
	results := make([]rcon.Result, len(commands))

	err := g.runner.Run(target, func(send rcon.SendFunc) error {
		for i, cmd := range commands {
			results[i] = send(cmd)
		}
		return nil
	})
	if err != nil {
		for i := range results {
			results[i] = rcon.Result{Error: err.Error()}
		}
	}

	return results
}

// aggregate folds the results of parallel sub-commands per the
// at-least-one-success rule: the operation succeeds if any sub-command
// did, listing the ones that failed; it fails outright only when all
// failed, carrying the first error.
func aggregate(labels []string, results []rcon.Result) (ok bool, failures []string) {
	succeeded := 0
	for i, res := range results {
		if res.Ok {
			succeeded++
			continue
		}
		failures = append(failures, labels[i]+" failed: "+res.Error)
	}

	return succeeded > 0, failures
}

// failureNote renders partial-failure detail for appending to a success
// message.
func failureNote(failures []string) string {
	if len(failures) == 0 {
		return ""
	}

	return " (" + strings.Join(failures, "; ") + ")"
}

// logAction records an audit entry, best-effort.
func (g *Gateway) logAction(caller, action, target, detail string) {
	if g.audit == nil {
		return
	}
	if err := g.audit.LogAction(caller, action, target, detail); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("Failed to write audit entry")
	}
}

// logChat records a chat entry, best-effort.
func (g *Gateway) logChat(caller, kind, player, message string) {
	if g.audit == nil {
		return
	}
	if err := g.audit.LogChat(caller, kind, player, message); err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("Failed to write chat entry")
	}
}

// Statically assert the storage repository satisfies the collaborator
// contract.
var _ AuditLog = (*storage.Repository)(nil)
