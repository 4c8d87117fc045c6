package mcparse

import (
	"regexp"
	"strconv"
	"strings"
)

// ItemID extracts the quoted item identifier from an Inventory[n].id query
// reply, e.g. `... entity data: "minecraft:diamond_sword"`.
func ItemID(raw string) (string, bool) {
	m := itemIDRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var itemIDRe = regexp.MustCompile(`"(minecraft:[^"]+)"`)

// ItemCount extracts the stack count from an Inventory[n].count query
// reply. Single items often report no count, so absence defaults to 1.
func ItemCount(raw string) int {
	m := itemCountRe.FindStringSubmatch(raw)
	if m == nil {
		return 1
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 1
	}
	return n
}

var itemCountRe = regexp.MustCompile(`entity data:\s*(\d+)`)

// Enchantments renders an enchantment levels compound, e.g.
// `{"minecraft:sharpness": 3, "minecraft:unbreaking": 2}`, as a display
// string like "Sharpness 3 · Unbreaking 2". Empty when nothing parses.
func Enchantments(raw string) (string, bool) {
	m := enchantBlockRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	var parts []string
	for _, entry := range strings.Split(m[1], ",") {
		em := enchantEntryRe.FindStringSubmatch(entry)
		if em == nil {
			continue
		}
		parts = append(parts, TitleWords(em[1])+" "+em[2])
	}

	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " · "), true
}

var (
	enchantBlockRe = regexp.MustCompile(`\{([^}]+)\}`)
	enchantEntryRe = regexp.MustCompile(`"minecraft:(\w+)":\s*(\d+)`)
)

// ItemLabel turns an item id into a display label:
// "minecraft:iron_sword" -> "Iron Sword".
func ItemLabel(id string) string {
	return TitleWords(strings.TrimPrefix(id, "minecraft:"))
}

// TitleWords capitalizes each underscore-separated word.
func TitleWords(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// EmptySlot reports whether a slot query reply indicates an unoccupied
// inventory slot.
func EmptySlot(raw string) bool {
	return strings.Contains(raw, "Found no elements")
}
