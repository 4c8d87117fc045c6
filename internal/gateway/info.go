package gateway

import (
	"fmt"

	"github.com/mcraftr/craftd/internal/mcparse"
	"github.com/mcraftr/craftd/internal/ratelimit"
	"github.com/mcraftr/craftd/internal/rcon"
)

// ServerInfo is the dashboard status snapshot. Pointer fields are null in
// JSON when the underlying query failed or did not parse; the snapshot as
// a whole fails only when both the player list and the version query
// failed, which almost always means the server is unreachable.
type ServerInfo struct {
	Online  *int     `json:"online"`
	Max     *int     `json:"max"`
	Players []string `json:"players"`
	Version *string  `json:"version"`
	TPS     *float64 `json:"tps"`
	DayTime *int     `json:"dayTime"`
	Weather *string  `json:"weather"`
	Error   string   `json:"error,omitempty"`
	Ok      bool     `json:"ok"`
}

// Info gathers the status snapshot. The five probes run in parallel over
// independent sessions and each degrades to null on failure.
func (g *Gateway) Info(target rcon.Target, caller string) (*ServerInfo, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}

	results := g.runParallel(target, []string{
		"list",
		"version",
		"tps",
		"time query daytime",
		"weather query",
	})
	list, version, tps, daytime, weather := results[0], results[1], results[2], results[3], results[4]

	if !list.Ok && !version.Ok {
		return &ServerInfo{Error: list.Error}, nil
	}

	info := &ServerInfo{Ok: true, Players: []string{}}

	if list.Ok {
		online, max := mcparse.PlayerCount(list.Stdout)
		info.Online = &online
		info.Max = &max
		if names := mcparse.PlayerNames(list.Stdout); names != nil {
			info.Players = names
		}
	}
	if version.Ok {
		v := mcparse.Version(version.Stdout)
		info.Version = &v
	}
	if tps.Ok {
		if v, ok := mcparse.TPS(tps.Stdout); ok {
			info.TPS = &v
		}
	}
	if daytime.Ok {
		if v, ok := mcparse.DayTime(daytime.Stdout); ok {
			info.DayTime = &v
		}
	}
	if weather.Ok {
		if v, ok := mcparse.Weather(weather.Stdout); ok {
			info.Weather = &v
		}
	}

	return info, nil
}

// PlayerVitals is the per-player detail view. Every field degrades to
// null independently; Ok is false only when none of the core stats came
// back, which means the player is offline or the server rejects data
// queries.
type PlayerVitals struct {
	Health     *float64      `json:"health"`
	Food       *int          `json:"food"`
	XPLevel    *int          `json:"xpLevel"`
	XPProgress *float64      `json:"xpProgress"`
	Gamemode   *string       `json:"gamemode"`
	Position   *mcparse.Vec3 `json:"position"`
	Dimension  *string       `json:"dimension"`
	Ping       *int          `json:"ping"`
	Spawn      *mcparse.Vec3 `json:"spawn"`
	UUID       *string       `json:"uuid"`
	Error      string        `json:"error,omitempty"`
	Ok         bool          `json:"ok"`
}

// Vitals reads a player's live stats. All queries share one session; a
// dead player entity fails each query individually and the per-field
// degradation absorbs it.
func (g *Gateway) Vitals(target rcon.Target, caller, player string) (*PlayerVitals, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if err := requirePlayer(player, "player name"); err != nil {
		return nil, err
	}

	q := func(path string) string {
		return "data get entity " + player + " " + path
	}
	results := g.runSequential(target, []string{
		q("Health"),
		q("foodLevel"),
		q("XpLevel"),
		q("XpP"),
		q("playerGameType"),
		q("Pos"),
		q("Dimension"),
		q("latency"),
		q("SpawnX"),
		q("SpawnY"),
		q("SpawnZ"),
		q("UUID"),
	})

	v := &PlayerVitals{}

	if results[0].Ok {
		if n, ok := mcparse.NBTFloat(results[0].Stdout); ok {
			v.Health = &n
		}
	}
	if results[1].Ok {
		if n, ok := mcparse.NBTInt(results[1].Stdout); ok {
			v.Food = &n
		}
	}
	if results[2].Ok {
		if n, ok := mcparse.NBTInt(results[2].Stdout); ok {
			v.XPLevel = &n
		}
	}
	if results[3].Ok {
		if n, ok := mcparse.NBTFloat(results[3].Stdout); ok {
			v.XPProgress = &n
		}
	}
	if results[4].Ok {
		if mode, ok := mcparse.Gamemode(results[4].Stdout); ok {
			v.Gamemode = &mode
		}
	}
	if results[5].Ok {
		if pos, ok := mcparse.Position(results[5].Stdout); ok {
			v.Position = &pos
		}
	}
	if results[6].Ok {
		if dim, ok := mcparse.Dimension(results[6].Stdout); ok {
			v.Dimension = &dim
		}
	}

	// Paper exposes the latency NBT path; vanilla rejects it and the
	// field stays null.
	if results[7].Ok {
		if n, ok := mcparse.NBTInt(results[7].Stdout); ok {
			v.Ping = &n
		}
	}

	var sx, sy, sz int
	var okX, okY, okZ bool
	if results[8].Ok {
		sx, okX = mcparse.NBTInt(results[8].Stdout)
	}
	if results[9].Ok {
		sy, okY = mcparse.NBTInt(results[9].Stdout)
	}
	if results[10].Ok {
		sz, okZ = mcparse.NBTInt(results[10].Stdout)
	}
	if okX && okY && okZ {
		v.Spawn = &mcparse.Vec3{X: float64(sx), Y: float64(sy), Z: float64(sz)}
	}

	if results[11].Ok {
		if id, ok := mcparse.UUID(results[11].Stdout); ok {
			v.UUID = &id
		}
	}

	if v.Health == nil && v.Food == nil && v.Gamemode == nil && v.Position == nil {
		return &PlayerVitals{Error: player + " is offline or data is unavailable"}, nil
	}

	v.Ok = true
	return v, nil
}

// ConnectionResult is the outcome of a connectivity probe.
type ConnectionResult struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Ok      bool   `json:"ok"`
}

// TestConnection dials, authenticates and runs a single `list` against the
// candidate target. Used by the connection form before credentials are
// saved.
func (g *Gateway) TestConnection(target rcon.Target, caller string) (*ConnectionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}

	res := g.runOne(target, "list")
	if !res.Ok {
		return &ConnectionResult{Error: res.Error}, nil
	}

	online, max := mcparse.PlayerCount(res.Stdout)
	return &ConnectionResult{
		Ok:      true,
		Message: fmt.Sprintf("Connected! %d/%d players online.", online, max),
	}, nil
}
