package gateway

import (
	"fmt"
	"strings"

	"github.com/mcraftr/craftd/internal/catalog"
	"github.com/mcraftr/craftd/internal/mcparse"
	"github.com/mcraftr/craftd/internal/ratelimit"
	"github.com/mcraftr/craftd/internal/rcon"
)

// maxMessageLen caps broadcast and whisper text.
const maxMessageLen = 256

// GamerulesResult maps each readable rule to its current value. Rules the
// server did not answer are absent.
type GamerulesResult struct {
	Gamerules map[string]string `json:"gamerules"`
	Error     string            `json:"error,omitempty"`
	Ok        bool              `json:"ok"`
}

// Gamerules reads every managed rule over one session, degrading per rule.
func (g *Gateway) Gamerules(target rcon.Target, caller string) (*GamerulesResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}

	commands := make([]string, len(catalog.Gamerules))
	for i, rule := range catalog.Gamerules {
		commands[i] = "gamerule " + rule
	}

	results := g.runSequential(target, commands)

	rules := make(map[string]string)
	for i, res := range results {
		if !res.Ok {
			continue
		}
		if v, ok := mcparse.GameruleValue(res.Stdout); ok {
			rules[catalog.Gamerules[i]] = v
		}
	}

	if len(rules) == 0 && len(results) > 0 && !results[0].Ok {
		return &GamerulesResult{Error: results[0].Error}, nil
	}

	return &GamerulesResult{Ok: true, Gamerules: rules}, nil
}

// SetGamerule toggles one of the managed boolean rules.
func (g *Gateway) SetGamerule(target rcon.Target, caller, rule, value string) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if !catalog.KnownGamerule(rule) {
		return nil, ValidationError("invalid gamerule")
	}
	if value != "true" && value != "false" {
		return nil, ValidationError("value must be true or false")
	}

	res := g.runOne(target, "gamerule "+rule+" "+value)
	if !res.Ok {
		return &ActionResult{Error: res.Error}, nil
	}

	g.logAction(caller, "gamerule", rule, value)

	return &ActionResult{Ok: true, Message: rule + " set to " + value}, nil
}

// DifficultyResult carries the current world difficulty.
type DifficultyResult struct {
	Current string `json:"current,omitempty"`
	Error   string `json:"error,omitempty"`
	Ok      bool   `json:"ok"`
}

// Difficulty reads the current difficulty.
func (g *Gateway) Difficulty(target rcon.Target, caller string) (*DifficultyResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}

	res := g.runOne(target, "difficulty")
	if !res.Ok {
		return &DifficultyResult{Error: res.Error}, nil
	}

	current, _ := mcparse.Difficulty(res.Stdout)
	return &DifficultyResult{Ok: true, Current: current}, nil
}

var difficulties = map[string]struct{}{
	"peaceful": {}, "easy": {}, "normal": {}, "hard": {},
}

// SetDifficulty changes the world difficulty.
func (g *Gateway) SetDifficulty(target rcon.Target, caller, difficulty string) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if _, ok := difficulties[difficulty]; !ok {
		return nil, ValidationError("invalid difficulty")
	}

	res := g.runOne(target, "difficulty "+difficulty)
	if !res.Ok {
		return &ActionResult{Error: res.Error}, nil
	}

	g.logAction(caller, "difficulty", "", difficulty)

	return &ActionResult{Ok: true, Message: "Difficulty set to " + difficulty}, nil
}

var controlCommands = map[string]struct{}{
	"save-all": {}, "stop": {},
}

// ServerControl runs one of the allow-listed server lifecycle commands.
func (g *Gateway) ServerControl(target rcon.Target, caller, command string) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if _, ok := controlCommands[command]; !ok {
		return nil, ValidationError("unknown server command")
	}

	res := g.runOne(target, command)
	if !res.Ok {
		return &ActionResult{Error: res.Error}, nil
	}

	msg := res.Stdout
	if msg == "" {
		msg = "Executed: " + command
	}

	g.logAction(caller, strings.ReplaceAll(command, "-", "_"), "", "")

	return &ActionResult{Ok: true, Message: msg}, nil
}

// RawResult carries the console output of a raw command.
type RawResult struct {
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
	Ok     bool   `json:"ok"`
}

// RawCommand runs an arbitrary console command for the raw-console
// feature. The command is length-capped but otherwise passed through; the
// route layer gates who may call this.
func (g *Gateway) RawCommand(target rcon.Target, caller, command string) (*RawResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}

	cmd := strings.TrimSpace(command)
	if cmd == "" {
		return nil, ValidationError("command cannot be empty")
	}
	if len(cmd) > maxMessageLen {
		return nil, ValidationError("command too long (max 256 chars)")
	}

	res := g.runOne(target, cmd)
	if !res.Ok {
		return &RawResult{Error: res.Error}, nil
	}

	out := res.Stdout
	if out == "" {
		out = "(no output)"
	}

	g.logAction(caller, "cmd", "", cmd)

	return &RawResult{Ok: true, Output: out}, nil
}

// Broadcast sends a sanitized message to every player via `say` and
// records it in the chat log.
func (g *Gateway) Broadcast(target rcon.Target, caller, message string) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketBroadcast); err != nil {
		return nil, err
	}

	clean := SanitizeText(message, maxMessageLen)
	if clean == "" {
		return nil, ValidationError("message cannot be empty")
	}

	res := g.runOne(target, "say "+clean)
	if !res.Ok {
		return &ActionResult{Error: res.Error}, nil
	}

	g.logAction(caller, "broadcast", "", clean)
	g.logChat(caller, "broadcast", "", clean)

	return &ActionResult{Ok: true, Message: "Broadcast sent"}, nil
}

// Whisper sends a sanitized private message to one player via `msg`.
func (g *Gateway) Whisper(target rcon.Target, caller, player, message string) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if err := requirePlayer(player, "player name"); err != nil {
		return nil, err
	}

	clean := SanitizeText(message, maxMessageLen)
	if clean == "" {
		return nil, ValidationError("message cannot be empty")
	}

	res := g.runOne(target, "msg "+player+" "+clean)
	if !res.Ok {
		return &ActionResult{Error: res.Error}, nil
	}

	g.logChat(caller, "msg", player, clean)

	return &ActionResult{Ok: true, Message: "Message sent to " + player}, nil
}

// Teleport moves one player to another.
func (g *Gateway) Teleport(target rcon.Target, caller, from, to string) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if err := requirePlayer(from, `"from" player name`); err != nil {
		return nil, err
	}
	if err := requirePlayer(to, `"to" player name`); err != nil {
		return nil, err
	}
	if from == to {
		return nil, ValidationError("cannot teleport a player to themselves")
	}

	res := g.runOne(target, "tp "+from+" "+to)
	if !res.Ok {
		return &ActionResult{Error: res.Error}, nil
	}

	g.logAction(caller, "tp", from, to)

	return &ActionResult{Ok: true, Message: fmt.Sprintf("Teleported %s to %s", from, to)}, nil
}

// TeleportCoords moves a player to absolute coordinates.
func (g *Gateway) TeleportCoords(target rcon.Target, caller, player string, x, y, z float64) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if err := requirePlayer(player, "player name"); err != nil {
		return nil, err
	}

	cmd := fmt.Sprintf("tp %s %g %g %g", player, x, y, z)
	res := g.runOne(target, cmd)
	if !res.Ok {
		return &ActionResult{Error: res.Error}, nil
	}

	g.logAction(caller, "tp", player, fmt.Sprintf("%g, %g, %g", x, y, z))

	return &ActionResult{Ok: true, Message: fmt.Sprintf("Teleported %s to %g, %g, %g", player, x, y, z)}, nil
}

// Give hands a player a stack of a catalog-validated item. Quantity is
// clamped to [1, 64].
func (g *Gateway) Give(target rcon.Target, caller, player, item string, qty int) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if err := requirePlayer(player, "player name"); err != nil {
		return nil, err
	}
	if g.catalog == nil || !g.catalog.ValidItem(item) {
		return nil, ValidationError("invalid item")
	}

	count := qty
	if count < 1 {
		count = 1
	}
	if count > 64 {
		count = 64
	}

	item = strings.TrimPrefix(item, "minecraft:")
	res := g.runOne(target, fmt.Sprintf("give %s minecraft:%s %d", player, item, count))
	if !res.Ok {
		return &ActionResult{Error: res.Error}, nil
	}

	g.logAction(caller, "give", player, fmt.Sprintf("%dx %s", count, item))

	return &ActionResult{Ok: true, Message: fmt.Sprintf("Gave %dx %s to %s", count, item, player)}, nil
}

// Kit issues every give command of a kit in parallel over independent
// sessions. Unlike Ban, a kit is all-or-nothing to the user: any failed
// give reports the kit as failed with the failing commands listed.
func (g *Gateway) Kit(target rcon.Target, caller, player, kitID string) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if err := requirePlayer(player, "player name"); err != nil {
		return nil, err
	}

	if g.catalog == nil {
		return nil, ValidationError("unknown kit: " + kitID)
	}
	kit, ok := g.catalog.Kit(kitID)
	if !ok {
		return nil, ValidationError("unknown kit: " + kitID)
	}

	commands := make([]string, len(kit.Commands))
	for i, tpl := range kit.Commands {
		commands[i] = strings.ReplaceAll(tpl, "{player}", player)
	}

	results := g.runParallel(target, commands)

	var errs []string
	for _, res := range results {
		if !res.Ok {
			errs = append(errs, res.Error)
		}
	}
	if len(errs) > 0 {
		return &ActionResult{
			Error: fmt.Sprintf("%d command(s) failed: %s", len(errs), strings.Join(errs, "; ")),
		}, nil
	}

	g.logAction(caller, "give", player, kit.Label+" kit")

	return &ActionResult{Ok: true, Message: kit.Label + " kit issued to " + player}, nil
}
