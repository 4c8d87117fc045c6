package gateway

import (
	"regexp"
	"strings"
)

// playerNameRe matches Minecraft player names: letters, digits and
// underscores, with an optional leading dot for Bedrock/Geyser players.
var playerNameRe = regexp.MustCompile(`^\.?[a-zA-Z0-9_]{1,16}$`)

// ValidPlayerName reports whether name is a well-formed player name.
func ValidPlayerName(name string) bool {
	return playerNameRe.MatchString(name)
}

// requirePlayer validates a player name supplied under the given field
// label.
func requirePlayer(name, field string) error {
	if name == "" {
		return ValidationError("missing " + field)
	}
	if !ValidPlayerName(name) {
		return ValidationError("invalid " + field)
	}

	return nil
}

// SanitizeText strips everything outside printable ASCII (0x20-0x7E),
// including newlines and control characters, trims surrounding space, and
// truncates to max bytes. RCON commands are plain text with no escaping,
// so this is the injection defense for free-text fields interpolated into
// command strings. Sanitizing already-clean text is a no-op.
func SanitizeText(s string, max int) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 0x20 && c <= 0x7e {
			b.WriteByte(c)
		}
	}

	clean := strings.TrimSpace(b.String())
	if len(clean) > max {
		clean = strings.TrimSpace(clean[:max])
	}

	return clean
}
