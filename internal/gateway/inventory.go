package gateway

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mcraftr/craftd/internal/mcparse"
	"github.com/mcraftr/craftd/internal/ratelimit"
	"github.com/mcraftr/craftd/internal/rcon"
)

// inventorySlots lists every queryable slot: 0-35 for the main grid and
// hotbar, 100-103 for armor, 150 for the offhand.
var inventorySlots = func() []int {
	slots := make([]int, 0, 41)
	for i := 0; i < 36; i++ {
		slots = append(slots, i)
	}
	slots = append(slots, 100, 101, 102, 103, 150)
	return slots
}()

// slotQuery builds the data path for one inventory slot. Slots below 36
// address the list by index; armor and offhand slots only answer the
// Slot-tag match form.
func slotQuery(player string, slot int, path string) string {
	if slot < 36 {
		return fmt.Sprintf("data get entity %s Inventory[%d]%s", player, slot, path)
	}
	return fmt.Sprintf("data get entity %s Inventory[{Slot:%db}]%s", player, slot, path)
}

// SlotName labels a slot number for display.
func SlotName(slot int) string {
	switch {
	case slot >= 0 && slot <= 8:
		return fmt.Sprintf("Hotbar %d", slot+1)
	case slot >= 9 && slot <= 35:
		return fmt.Sprintf("Slot %d", slot)
	case slot == 100:
		return "Boots"
	case slot == 101:
		return "Leggings"
	case slot == 102:
		return "Chestplate"
	case slot == 103:
		return "Helmet"
	case slot == 150:
		return "Offhand"
	}
	return fmt.Sprintf("Slot %d", slot)
}

// InventorySlot is one occupied inventory slot.
type InventorySlot struct {
	Slot         int    `json:"slot"`
	SlotName     string `json:"slotName"`
	ID           string `json:"id"`
	Label        string `json:"label"`
	Count        int    `json:"count"`
	Enchantments string `json:"enchantments,omitempty"`
}

// InventoryResult carries every occupied slot of a player, ordered by slot
// number.
type InventoryResult struct {
	Slots []InventorySlot `json:"slots"`
	Error string          `json:"error,omitempty"`
	Ok    bool            `json:"ok"`
}

// Inventory reads a player's full inventory. Phase one walks every slot
// for id and count over one session; empty and unanswered slots are
// simply omitted, so a single dead slot cannot fail the view. Phase two
// decorates the occupied slots with enchantments, best-effort.
func (g *Gateway) Inventory(target rcon.Target, caller, player string) (*InventoryResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketInventory); err != nil {
		return nil, err
	}
	if err := requirePlayer(player, "player name"); err != nil {
		return nil, err
	}

	idCommands := make([]string, len(inventorySlots))
	countCommands := make([]string, len(inventorySlots))
	for i, slot := range inventorySlots {
		idCommands[i] = slotQuery(player, slot, ".id")
		countCommands[i] = slotQuery(player, slot, ".count")
	}

	idResults := g.runSequential(target, idCommands)

	var occupied []int
	byIndex := make(map[int]InventorySlot)
	for i, res := range idResults {
		if !res.Ok || mcparse.EmptySlot(res.Stdout) {
			continue
		}
		id, ok := mcparse.ItemID(res.Stdout)
		if !ok {
			continue
		}
		slot := inventorySlots[i]
		occupied = append(occupied, i)
		byIndex[i] = InventorySlot{
			Slot:     slot,
			SlotName: SlotName(slot),
			ID:       id,
			Label:    mcparse.ItemLabel(id),
			Count:    1,
		}
	}

	if len(occupied) == 0 {
		if allFailed(idResults) {
			return &InventoryResult{Error: idResults[0].Error}, nil
		}
		return &InventoryResult{Ok: true, Slots: []InventorySlot{}}, nil
	}

	detailCommands := make([]string, 0, len(occupied)*2)
	for _, i := range occupied {
		detailCommands = append(detailCommands,
			countCommands[i],
			slotQuery(player, inventorySlots[i], `.components."minecraft:enchantments".levels`),
		)
	}

	detailResults := g.runSequential(target, detailCommands)
	for j, i := range occupied {
		entry := byIndex[i]
		if res := detailResults[j*2]; res.Ok {
			entry.Count = mcparse.ItemCount(res.Stdout)
		}
		if res := detailResults[j*2+1]; res.Ok {
			if ench, ok := mcparse.Enchantments(res.Stdout); ok {
				entry.Enchantments = ench
			}
		}
		byIndex[i] = entry
	}

	slots := make([]InventorySlot, 0, len(occupied))
	for _, i := range occupied {
		slots = append(slots, byIndex[i])
	}
	sort.Slice(slots, func(a, b int) bool { return slots[a].Slot < slots[b].Slot })

	return &InventoryResult{Ok: true, Slots: slots}, nil
}

// allFailed reports whether every result failed, the signature of a
// session-level failure.
func allFailed(results []rcon.Result) bool {
	for _, res := range results {
		if res.Ok {
			return false
		}
	}
	return len(results) > 0
}

// ClearItem removes an item, or a counted amount of it, from a player's
// inventory. Component and NBT suffixes on the id are stripped before the
// allow-list check.
func (g *Gateway) ClearItem(target rcon.Target, caller, player, item string, count int) (*ActionResult, error) {
	if err := g.precheck(&target, caller, ratelimit.BucketRcon); err != nil {
		return nil, err
	}
	if err := requirePlayer(player, "player name"); err != nil {
		return nil, err
	}

	bare := item
	if i := strings.IndexAny(bare, "[{"); i >= 0 {
		bare = bare[:i]
	}
	if g.catalog == nil || !g.catalog.ValidItem(bare) {
		return nil, ValidationError("invalid item")
	}
	bare = strings.TrimPrefix(bare, "minecraft:")

	cmd := fmt.Sprintf("clear %s minecraft:%s", player, bare)
	msg := fmt.Sprintf("Cleared %s from %s", bare, player)
	if count > 0 {
		if count > 64 {
			count = 64
		}
		cmd = fmt.Sprintf("%s %d", cmd, count)
		msg = fmt.Sprintf("Cleared %dx %s from %s", count, bare, player)
	}

	res := g.runOne(target, cmd)
	if !res.Ok {
		return &ActionResult{Error: res.Error}, nil
	}

	g.logAction(caller, "clear", player, bare)

	return &ActionResult{Ok: true, Message: msg}, nil
}
