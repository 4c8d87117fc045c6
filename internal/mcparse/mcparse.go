// Package mcparse turns raw RCON reply text into typed values. Reply
// wording is not a stable contract across Minecraft versions and server
// flavors (vanilla, Paper, Bedrock bridges), so every function here is
// defensive: an unrecognized format yields a zero value and ok=false,
// never an error. Callers degrade the affected field and keep going.
package mcparse

import (
	"regexp"
	"strconv"
	"strings"
)

// PlayerCount extracts online/max counts from the "list" command reply.
// Accepts both known phrasings:
//
//	"There are 3 of a max of 20 players online: ..."  (vanilla/Spigot)
//	"There are 3 out of maximum 20 players online."   (Paper 1.21.4+)
//
// Unparseable text yields 0/0.
func PlayerCount(raw string) (online, max int) {
	m := playerCountRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, 0
	}

	online, _ = strconv.Atoi(m[1])
	max, _ = strconv.Atoi(m[2])
	return online, max
}

var playerCountRe = regexp.MustCompile(`There are (\d+)\s+(?:of a max(?:\s+of)?|out of maximum)\s+(\d+)`)

// PlayerNames extracts the comma-separated name list after the colon of a
// "list" reply. Empty when the server reported no names.
func PlayerNames(raw string) []string {
	return namesAfterColon(raw)
}

// Version extracts a version token from the "version" command reply. Only
// the first line is inspected: Paper appends a "Previous version" line
// whose contents would otherwise shadow the running version.
//
// Recognized forms, in order:
//
//	"This server is running Paper version 1.21.4-232-..."  -> "1.21.4"
//	"... (MC: 1.20.4) ..."                                 -> "1.20.4"
//	"This server is running Minecraft server version X"    -> "X"
//
// Falls back to a truncated first line rather than failing.
func Version(raw string) string {
	firstLine := strings.TrimSpace(strings.SplitN(raw, "\n", 2)[0])

	if m := paperVersionRe.FindStringSubmatch(firstLine); m != nil {
		return m[1]
	}
	if m := mcVersionRe.FindStringSubmatch(firstLine); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := bareVersionRe.FindStringSubmatch(firstLine); m != nil {
		return m[1]
	}

	if len(firstLine) > 60 {
		firstLine = firstLine[:60]
	}
	if firstLine == "" {
		return "Unknown"
	}
	return firstLine
}

var (
	paperVersionRe = regexp.MustCompile(`running Paper version (\d+\.\d+[\d.]*)`)
	mcVersionRe    = regexp.MustCompile(`\(MC:\s*([^)]+)\)`)
	bareVersionRe  = regexp.MustCompile(`version\s+(\S+)`)
)

// TPS extracts the most recent ticks-per-second figure from the Paper
// "tps" reply, e.g. "TPS from last 1m, 5m, 15m: 20.0, 19.98, 19.95".
// The match is anchored past the first colon; matching the whole reply
// would pick up the "1" in "1m". Values are clamped to 20.0.
func TPS(raw string) (float64, bool) {
	m := tpsRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if n > 20 {
		n = 20
	}
	return n, true
}

var tpsRe = regexp.MustCompile(`:\s*([\d.]+)`)

// BanList extracts player names from a "banlist players" reply:
//
//	"There are 2 ban(s):" / "Banned players:" header,
//	then "- Name: reason" or "Name was banned by ..." lines.
//
// "There are no bans" yields an empty list.
func BanList(raw string) []string {
	if raw == "" || strings.Contains(raw, "There are no bans") {
		return nil
	}

	lines := strings.Split(raw, "\n")
	if len(lines) < 2 {
		return nil
	}

	var names []string
	for _, line := range lines[1:] { // skip header line
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if i := strings.IndexAny(name, ": "); i >= 0 {
			name = name[:i]
		}
		if name != "" {
			names = append(names, name)
		}
	}

	return names
}

// Whitelist extracts names from a "whitelist list" reply:
// "There are N whitelisted player(s): name1, name2".
func Whitelist(raw string) []string {
	return namesAfterColon(raw)
}

// GameruleValue extracts the value from a "gamerule <rule>" reply:
// "Gamerule keepInventory is currently set to: false".
func GameruleValue(raw string) (string, bool) {
	m := gameruleRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var gameruleRe = regexp.MustCompile(`set to:\s*(\S+)`)

// Difficulty extracts the current difficulty from "The difficulty is Easy".
func Difficulty(raw string) (string, bool) {
	m := difficultyRe.FindStringSubmatch(strings.ToLower(raw))
	if m == nil {
		return "", false
	}
	return m[1], true
}

var difficultyRe = regexp.MustCompile(`difficulty is\s+(\w+)`)

// DayTime extracts the tick count from a "time query daytime" reply:
// "The time is 13000".
func DayTime(raw string) (int, bool) {
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

// Weather classifies a weather reply by keyword. Only Bedrock bridges
// answer "weather query"; everything else degrades to ok=false.
func Weather(raw string) (string, bool) {
	lower := strings.ToLower(raw)
	for _, w := range []string{"thunder", "rain", "clear"} {
		if strings.Contains(lower, w) {
			return w, true
		}
	}
	return "", false
}

// namesAfterColon splits a comma-separated name list following the last
// colon of a single-line reply.
func namesAfterColon(raw string) []string {
	i := strings.LastIndex(raw, ":")
	if i < 0 || i == len(raw)-1 {
		return nil
	}

	var names []string
	for _, part := range strings.Split(raw[i+1:], ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}

	return names
}
