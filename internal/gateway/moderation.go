package gateway

import (
	"github.com/mcraftr/craftd/internal/mcparse"
	"github.com/mcraftr/craftd/internal/ratelimit"
	"github.com/mcraftr/craftd/internal/rcon"
)

// maxReasonLen caps ban and kick reasons.
const maxReasonLen = 255

// BanRequest bans a player by name and, optionally, their last known IP.
type BanRequest struct {
	Player string
	Reason string
	BanIP  bool
}

// Ban issues `ban` and, when requested, `ban-ip` as independent sessions
// against the target. The operation succeeds if at least one sub-command
// did.
func (g *Gateway) Ban(target rcon.Target, caller string, req BanRequest) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if err := requirePlayer(req.Player, "player name"); err != nil {
		return nil, err
	}

	reason := SanitizeText(req.Reason, maxReasonLen)

	banCmd := "ban " + req.Player
	if reason != "" {
		banCmd += " " + reason
	}

	commands := []string{banCmd}
	labels := []string{"ban"}
	if req.BanIP {
		commands = append(commands, "ban-ip "+req.Player)
		labels = append(labels, "ban-ip")
	}

	results := g.runParallel(target, commands)
	ok, failures := aggregate(labels, results)
	if !ok {
		return &ActionResult{Error: results[0].Error}, nil
	}

	msg := "Banned " + req.Player
	if req.BanIP {
		msg += " (+ IP)"
	}
	if reason != "" {
		msg += ": " + reason
	}

	g.logAction(caller, "ban", req.Player, reason)

	return &ActionResult{Ok: true, Message: msg + failureNote(failures)}, nil
}

// PardonRequest lifts a name ban and, optionally, the matching IP ban.
type PardonRequest struct {
	Player   string
	PardonIP bool
}

// Pardon issues `pardon` and, when requested, `pardon-ip` as independent
// sessions, aggregated like Ban.
func (g *Gateway) Pardon(target rcon.Target, caller string, req PardonRequest) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if err := requirePlayer(req.Player, "player name"); err != nil {
		return nil, err
	}

	commands := []string{"pardon " + req.Player}
	labels := []string{"pardon"}
	if req.PardonIP {
		commands = append(commands, "pardon-ip "+req.Player)
		labels = append(labels, "pardon-ip")
	}

	results := g.runParallel(target, commands)
	ok, failures := aggregate(labels, results)
	if !ok {
		return &ActionResult{Error: results[0].Error}, nil
	}

	msg := "Pardoned " + req.Player
	if req.PardonIP {
		msg += " (+ IP)"
	}

	g.logAction(caller, "pardon", req.Player, "")

	return &ActionResult{Ok: true, Message: msg + failureNote(failures)}, nil
}

// Kick disconnects a player with an optional sanitized reason.
func (g *Gateway) Kick(target rcon.Target, caller, player, reason string) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if err := requirePlayer(player, "player name"); err != nil {
		return nil, err
	}

	clean := SanitizeText(reason, maxReasonLen)
	cmd := "kick " + player
	if clean != "" {
		cmd += " " + clean
	}

	res := g.runOne(target, cmd)
	if !res.Ok {
		return &ActionResult{Error: res.Error}, nil
	}

	msg := "Kicked " + player
	if clean != "" {
		msg += ": " + clean
	}

	g.logAction(caller, "kick", player, clean)

	return &ActionResult{Ok: true, Message: msg}, nil
}

// BanListResult carries the decoded ban list plus the raw reply for
// display.
type BanListResult struct {
	Players []string `json:"players"`
	Raw     string   `json:"raw,omitempty"`
	Error   string   `json:"error,omitempty"`
	Ok      bool     `json:"ok"`
}

// BanList fetches and parses `banlist players`.
func (g *Gateway) BanList(target rcon.Target, caller string) (*BanListResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}

	res := g.runOne(target, "banlist players")
	if !res.Ok {
		return &BanListResult{Error: res.Error}, nil
	}

	return &BanListResult{
		Ok:      true,
		Players: mcparse.BanList(res.Stdout),
		Raw:     res.Stdout,
	}, nil
}

// WhitelistResult carries the server whitelist.
type WhitelistResult struct {
	Players []string `json:"players"`
	Error   string   `json:"error,omitempty"`
	Ok      bool     `json:"ok"`
}

// Whitelist fetches and parses `whitelist list`.
func (g *Gateway) Whitelist(target rcon.Target, caller string) (*WhitelistResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}

	res := g.runOne(target, "whitelist list")
	if !res.Ok {
		return &WhitelistResult{Error: res.Error}, nil
	}

	return &WhitelistResult{Ok: true, Players: mcparse.Whitelist(res.Stdout)}, nil
}

// WhitelistChange adds or removes a player from the whitelist. action must
// be "add" or "remove".
func (g *Gateway) WhitelistChange(target rcon.Target, caller, player, action string) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if err := requirePlayer(player, "player name"); err != nil {
		return nil, err
	}
	if action != "add" && action != "remove" {
		return nil, ValidationError(`action must be "add" or "remove"`)
	}

	res := g.runOne(target, "whitelist "+action+" "+player)
	if !res.Ok {
		return &ActionResult{Error: res.Error}, nil
	}

	msg := "Added " + player + " to whitelist"
	if action == "remove" {
		msg = "Removed " + player + " from whitelist"
	}

	g.logAction(caller, "whitelist_"+action, player, "")

	return &ActionResult{Ok: true, Message: msg}, nil
}

// OpPlayer grants or revokes operator status. action must be "op" or
// "deop".
func (g *Gateway) OpPlayer(target rcon.Target, caller, player, action string) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if err := requirePlayer(player, "player name"); err != nil {
		return nil, err
	}
	if action != "op" && action != "deop" {
		return nil, ValidationError(`action must be "op" or "deop"`)
	}

	res := g.runOne(target, action+" "+player)
	if !res.Ok {
		return &ActionResult{Error: res.Error}, nil
	}

	msg := "Made " + player + " an operator"
	if action == "deop" {
		msg = "Removed operator from " + player
	}

	g.logAction(caller, action, player, "")

	return &ActionResult{Ok: true, Message: msg}, nil
}
