package mcparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Vec3 is a block or entity position decoded from an NBT list.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Gamemode names indexed by the numeric playerGameType value.
var gamemodes = map[int]string{
	0: "survival",
	1: "creative",
	2: "adventure",
	3: "spectator",
}

// Friendly names for the vanilla dimensions.
var dimensions = map[string]string{
	"minecraft:overworld":  "Overworld",
	"minecraft:the_nether": "Nether",
	"minecraft:the_end":    "The End",
}

// NBTFloat extracts a trailing numeric NBT scalar, tolerating the type
// suffix Minecraft appends to typed literals, e.g.
// "... has the following entity data: 18.0f".
func NBTFloat(raw string) (float64, bool) {
	m := trailingFloatRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NBTInt extracts a trailing integer NBT scalar, e.g.
// "... has the following entity data: 42" or "17s".
func NBTInt(raw string) (int, bool) {
	m := trailingIntRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

var (
	trailingFloatRe = regexp.MustCompile(`(-?[\d.]+)[fdb]?\s*$`)
	trailingIntRe   = regexp.MustCompile(`(-?\d+)[sbL]?\s*$`)
)

// Position decodes an NBT double list such as
// "... entity data: [142.3d, 64.0d, -88.7d]".
func Position(raw string) (Vec3, bool) {
	m := positionRe.FindStringSubmatch(raw)
	if m == nil {
		return Vec3{}, false
	}

	x, errX := strconv.ParseFloat(m[1], 64)
	y, errY := strconv.ParseFloat(m[2], 64)
	z, errZ := strconv.ParseFloat(m[3], 64)
	if errX != nil || errY != nil || errZ != nil {
		return Vec3{}, false
	}

	return Vec3{X: x, Y: y, Z: z}, true
}

var positionRe = regexp.MustCompile(`\[\s*(-?[\d.]+)d?,\s*(-?[\d.]+)d?,\s*(-?[\d.]+)d?\s*\]`)

// Gamemode maps a trailing playerGameType integer to its name. Values
// outside 0-3 are unrecognized.
func Gamemode(raw string) (string, bool) {
	n, ok := NBTInt(raw)
	if !ok {
		return "", false
	}

	name, known := gamemodes[n]
	return name, known
}

// Dimension extracts the dimension id from a quoted NBT string, returning
// a friendly name for the vanilla dimensions and a cleaned-up id for
// modded ones.
func Dimension(raw string) (string, bool) {
	m := dimensionRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	id := m[1]
	if name, ok := dimensions[id]; ok {
		return name, true
	}

	name := strings.TrimPrefix(id, "minecraft:")
	return strings.ReplaceAll(name, "_", " "), true
}

var dimensionRe = regexp.MustCompile(`"(minecraft:[a-z_:]+)"`)

// UUID reconstructs a canonical UUID string from the NBT int-array form
// "[I;-1867949367, -1412099365, -1979710043, -1227887240]". Each element
// is a signed 32-bit integer reinterpreted as unsigned, rendered as eight
// zero-padded hex digits, concatenated, and re-segmented 8-4-4-4-12.
func UUID(raw string) (string, bool) {
	m := uuidRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	var hex strings.Builder
	for _, part := range m[1:] {
		n, err := strconv.ParseInt(part, 10, 32)
		if err != nil {
			return "", false
		}
		hex.WriteString(fmt.Sprintf("%08x", uint32(int32(n))))
	}

	h := hex.String()
	return h[0:8] + "-" + h[8:12] + "-" + h[12:16] + "-" + h[16:20] + "-" + h[20:32], true
}

var uuidRe = regexp.MustCompile(`\[I;\s*(-?\d+),\s*(-?\d+),\s*(-?\d+),\s*(-?\d+)\s*\]`)

// FlyingEnabled reports whether an "abilities" NBT dump has mayfly set.
func FlyingEnabled(raw string) bool {
	return flyingRe.MatchString(raw)
}

var flyingRe = regexp.MustCompile(`mayfly:\s*1b`)
