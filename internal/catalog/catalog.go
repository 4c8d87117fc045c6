// Package catalog loads the static data tables shipped with the binary:
// the kit definitions, the item id allow-list used to validate give/clear
// requests, and the gamerule names the dashboard manages.
package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mcraftr/craftd/assets"
)

// Kit is a named bundle of give commands issued together.
type Kit struct {
	ID        string   `toml:"id"`
	Label     string   `toml:"label"`
	Commands  []string `toml:"commands"`
	AdminOnly bool     `toml:"admin_only"`
}

// Catalog holds the loaded data tables.
type Catalog struct {
	kits  map[string]Kit
	items map[string]struct{}
}

// Gamerules lists the rules exposed for reading and toggling.
var Gamerules = []string{
	"keepInventory", "mobGriefing", "doDaylightCycle", "doWeatherCycle",
	"pvp", "doFireTick", "doMobSpawning", "naturalRegeneration",
	"announceAdvancements", "commandBlockOutput", "sendCommandFeedback",
	"showDeathMessages", "doImmediateRespawn", "forgiveDeadPlayers",
	"universalAnger",
}

// KnownGamerule reports whether name is one of the managed rules.
func KnownGamerule(name string) bool {
	for _, r := range Gamerules {
		if r == name {
			return true
		}
	}
	return false
}

// Load parses the embedded kit and item tables.
func Load() (*Catalog, error) {
	var kitFile struct {
		Kits []Kit `toml:"kits"`
	}

	kitData, err := assets.ReadFile("data/kits.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to read kit catalog: %w", err)
	}
	if err := toml.Unmarshal(kitData, &kitFile); err != nil {
		return nil, fmt.Errorf("failed to parse kit catalog: %w", err)
	}

	itemData, err := assets.ReadFile("data/items.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read item catalog: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(itemData, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse item catalog: %w", err)
	}

	c := &Catalog{
		kits:  make(map[string]Kit, len(kitFile.Kits)),
		items: make(map[string]struct{}, len(ids)),
	}
	for _, k := range kitFile.Kits {
		c.kits[k.ID] = k
	}
	for _, id := range ids {
		c.items[id] = struct{}{}
	}

	return c, nil
}

// Kit returns the kit with the given id.
func (c *Catalog) Kit(id string) (Kit, bool) {
	k, ok := c.kits[id]
	return k, ok
}

// Kits returns all kit definitions, ordered by id.
func (c *Catalog) Kits() []Kit {
	out := make([]Kit, 0, len(c.kits))
	for _, k := range c.kits {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ValidItem reports whether id names a known item. Accepts both bare ids
// and ids carrying the minecraft: namespace prefix.
func (c *Catalog) ValidItem(id string) bool {
	_, ok := c.items[strings.TrimPrefix(id, "minecraft:")]
	return ok
}
