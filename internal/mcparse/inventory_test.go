package mcparse

import "testing"

func TestItemID(t *testing.T) {
	raw := `Steve has the following entity data: "minecraft:diamond_sword"`
	if id, ok := ItemID(raw); !ok || id != "minecraft:diamond_sword" {
		t.Errorf("got %q/%v", id, ok)
	}

	if _, ok := ItemID("Found no elements"); ok {
		t.Error("expected parse failure")
	}
}

func TestItemCount(t *testing.T) {
	if got := ItemCount("Steve has the following entity data: 32"); got != 32 {
		t.Errorf("got %d, want 32", got)
	}
	if got := ItemCount("no count in here"); got != 1 {
		t.Errorf("got %d, want default 1", got)
	}
}

func TestEnchantments(t *testing.T) {
	raw := `Steve has the following entity data: {"minecraft:sharpness": 3, "minecraft:unbreaking": 2}`
	got, ok := Enchantments(raw)
	if !ok {
		t.Fatal("expected parse success")
	}
	if want := "Sharpness 3 · Unbreaking 2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if _, ok := Enchantments("Found no elements"); ok {
		t.Error("expected parse failure")
	}
	if _, ok := Enchantments("{}"); ok {
		t.Error("expected parse failure on empty compound")
	}
}

func TestItemLabel(t *testing.T) {
	cases := []struct{ id, want string }{
		{"minecraft:iron_sword", "Iron Sword"},
		{"minecraft:dirt", "Dirt"},
		{"golden_apple", "Golden Apple"},
	}

	for _, tc := range cases {
		if got := ItemLabel(tc.id); got != tc.want {
			t.Errorf("ItemLabel(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestEmptySlot(t *testing.T) {
	if !EmptySlot("Found no elements matching Inventory[5]") {
		t.Error("expected empty slot detected")
	}
	if EmptySlot(`Steve has the following entity data: "minecraft:dirt"`) {
		t.Error("occupied slot misread as empty")
	}
}
