package gateway

import (
	"strings"

	"github.com/mcraftr/craftd/internal/mcparse"
	"github.com/mcraftr/craftd/internal/ratelimit"
	"github.com/mcraftr/craftd/internal/rcon"
)

// QuickCommand enumerates the one-click dashboard actions. A closed enum,
// not a string-keyed table: an unsupported action cannot be constructed
// and dispatch cannot miss at runtime.
type QuickCommand int

const (
	QuickInvalid QuickCommand = iota
	QuickDay
	QuickNight
	QuickClearWeather
	QuickStorm
	QuickCreative
	QuickSurvival
	QuickAdventure
	QuickFly
	QuickHeal
	QuickNightVision
	QuickSpeed
	QuickInvisibility
	QuickJump
	QuickStrength
	QuickHaste
	QuickClearEffects
)

// quickSpec carries the per-command shape: display label, whether a
// player argument is required, and the command templates to run.
type quickSpec struct {
	label     string
	commands  []string
	needsUser bool
	isEffect  bool
}

var quickSpecs = map[QuickCommand]quickSpec{
	QuickDay:          {label: "Day", commands: []string{"time set day"}},
	QuickNight:        {label: "Night", commands: []string{"time set night"}},
	QuickClearWeather: {label: "Clear sky", commands: []string{"weather clear 6000"}},
	QuickStorm:        {label: "Storm", commands: []string{"weather thunder 6000"}},
	QuickCreative:     {label: "Creative", needsUser: true, commands: []string{"gamemode creative {player}"}},
	QuickSurvival:     {label: "Survival", needsUser: true, commands: []string{"gamemode survival {player}"}},
	QuickAdventure:    {label: "Adventure", needsUser: true, commands: []string{"gamemode adventure {player}"}},
	QuickFly:          {label: "Fly", needsUser: true, commands: []string{"fly {player}"}},
	QuickHeal:         {label: "Heal", needsUser: true, commands: []string{"heal {player}", "feed {player}"}},
	QuickNightVision:  {label: "Night Vision", needsUser: true, isEffect: true, commands: []string{"effect give {player} minecraft:night_vision 300 1"}},
	QuickSpeed:        {label: "Speed", needsUser: true, isEffect: true, commands: []string{"effect give {player} minecraft:speed 120 3"}},
	QuickInvisibility: {label: "Invisible", needsUser: true, isEffect: true, commands: []string{"effect give {player} minecraft:invisibility 120 1"}},
	QuickJump:         {label: "Super Jump", needsUser: true, isEffect: true, commands: []string{"effect give {player} minecraft:jump_boost 120 5"}},
	QuickStrength:     {label: "Strength", needsUser: true, isEffect: true, commands: []string{"effect give {player} minecraft:strength 120 2"}},
	QuickHaste:        {label: "Haste", needsUser: true, isEffect: true, commands: []string{"effect give {player} minecraft:haste 120 2"}},
	QuickClearEffects: {label: "Clear FX", needsUser: true, commands: []string{"effect clear {player}"}},
}

var quickNames = map[string]QuickCommand{
	"day":           QuickDay,
	"night":         QuickNight,
	"clear_weather": QuickClearWeather,
	"storm":         QuickStorm,
	"creative":      QuickCreative,
	"survival":      QuickSurvival,
	"adventure":     QuickAdventure,
	"fly":           QuickFly,
	"heal":          QuickHeal,
	"night_vision":  QuickNightVision,
	"speed":         QuickSpeed,
	"invisibility":  QuickInvisibility,
	"jump":          QuickJump,
	"strength":      QuickStrength,
	"haste":         QuickHaste,
	"clear_fx":      QuickClearEffects,
}

// ParseQuickCommand maps a wire name to its enum value.
func ParseQuickCommand(name string) (QuickCommand, bool) {
	cmd, ok := quickNames[name]
	return cmd, ok
}

// RequiresPlayer reports whether the command needs a player argument.
func (q QuickCommand) RequiresPlayer() bool {
	return quickSpecs[q].needsUser
}

// Label returns the display name of the command.
func (q QuickCommand) Label() string {
	return quickSpecs[q].label
}

// QuickResult is the outcome of a quick command. Activated reports, when
// determinable, whether the action turned something on or off (fly toggle,
// effect application).
type QuickResult struct {
	Activated *bool  `json:"activated,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Ok        bool   `json:"ok"`
}

// Quick executes a one-click action. Its commands run sequentially over
// one session; any failed command fails the whole action.
func (g *Gateway) Quick(target rcon.Target, caller string, cmd QuickCommand, player string) (*QuickResult, error) {
	spec, known := quickSpecs[cmd]
	if !known {
		return nil, ValidationError("unknown command")
	}

	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}

	if spec.needsUser {
		if err := requirePlayer(player, "player name"); err != nil {
			return nil, err
		}
	} else if player != "" && !ValidPlayerName(player) {
		return nil, ValidationError("invalid player name")
	}

	commands := make([]string, len(spec.commands))
	for i, tpl := range spec.commands {
		commands[i] = strings.ReplaceAll(tpl, "{player}", player)
	}

	results := g.runSequential(target, commands)

	var errs []string
	var outputs []string
	for _, res := range results {
		if !res.Ok {
			errs = append(errs, res.Error)
		}
		if res.Stdout != "" {
			outputs = append(outputs, res.Stdout)
		}
	}
	if len(errs) > 0 {
		return &QuickResult{Error: strings.Join(errs, "; ")}, nil
	}

	activated := quickActivation(cmd, spec, strings.Join(outputs, " "))

	msg := spec.label
	if player != "" {
		msg += " for " + player
	}
	switch {
	case activated != nil && *activated:
		msg = "Activated: " + msg
	case activated != nil:
		msg = "Deactivated: " + msg
	}

	return &QuickResult{Ok: true, Message: msg, Activated: activated}, nil
}

// quickActivation decides the on/off state a quick command produced. Fly
// is a toggle whose reply wording is the only signal; effects always
// activate; clearing effects always deactivates.
func quickActivation(cmd QuickCommand, spec quickSpec, combined string) *bool {
	switch {
	case cmd == QuickFly:
		lower := strings.ToLower(combined)
		if strings.Contains(lower, "enabled") {
			return boolPtr(true)
		}
		if strings.Contains(lower, "disabled") {
			return boolPtr(false)
		}
		return nil
	case spec.isEffect:
		return boolPtr(true)
	case cmd == QuickClearEffects:
		return boolPtr(false)
	}

	return nil
}

func boolPtr(v bool) *bool { return &v }

// EffectsResult lists the quick-command effect names currently active on a
// player, including "fly" when the mayfly ability is set.
type EffectsResult struct {
	Active []string `json:"active"`
	Error  string   `json:"error,omitempty"`
	Ok     bool     `json:"ok"`
}

// effectIDs pairs quick-command names with the Minecraft effect ids
// looked for in the active_effects dump. The slice fixes the order the
// active list is reported in.
var effectIDs = []struct {
	name string
	id   string
}{
	{"night_vision", "minecraft:night_vision"},
	{"speed", "minecraft:speed"},
	{"invisibility", "minecraft:invisibility"},
	{"jump", "minecraft:jump_boost"},
	{"strength", "minecraft:strength"},
	{"haste", "minecraft:haste"},
}

// Effects reports which dashboard-applied effects are active on a player.
// Both queries run over one session and degrade independently.
func (g *Gateway) Effects(target rcon.Target, caller, player string) (*EffectsResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if err := requirePlayer(player, "player name"); err != nil {
		return nil, err
	}

	results := g.runSequential(target, []string{
		"data get entity " + player + " active_effects",
		"data get entity " + player + " abilities",
	})

	active := []string{}
	if results[0].Ok {
		for _, e := range effectIDs {
			if strings.Contains(results[0].Stdout, `"`+e.id+`"`) {
				active = append(active, e.name)
			}
		}
	}
	if results[1].Ok && mcparse.FlyingEnabled(results[1].Stdout) {
		active = append(active, "fly")
	}

	return &EffectsResult{Ok: true, Active: active}, nil
}
