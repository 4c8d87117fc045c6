package mcparse

import "testing"

func TestNBTFloat(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"Steve has the following entity data: 18.0f", 18, true},
		{"Steve has the following entity data: 0.75d", 0.75, true},
		{"Steve has the following entity data: 20", 20, true},
		{"Steve has the following entity data: -2.5f", -2.5, true},
		{"No entity was found", 0, false},
	}

	for _, tc := range cases {
		got, ok := NBTFloat(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NBTFloat(%q) = %v/%v, want %v/%v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNBTInt(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"Steve has the following entity data: 42", 42, true},
		{"Steve has the following entity data: 17s", 17, true},
		{"Steve has the following entity data: 1b", 1, true},
		{"Steve has the following entity data: 123456789L", 123456789, true},
		{"Steve has the following entity data: -64", -64, true},
		{"nothing numeric", 0, false},
	}

	for _, tc := range cases {
		got, ok := NBTInt(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NBTInt(%q) = %d/%v, want %d/%v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPosition(t *testing.T) {
	pos, ok := Position("Steve has the following entity data: [142.3d, 64.0d, -88.7d]")
	if !ok {
		t.Fatal("expected parse success")
	}
	if pos.X != 142.3 || pos.Y != 64 || pos.Z != -88.7 {
		t.Errorf("got %+v", pos)
	}

	if _, ok := Position("No entity was found"); ok {
		t.Error("expected parse failure")
	}
}

func TestGamemode(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"Steve has the following entity data: 0", "survival", true},
		{"Steve has the following entity data: 1", "creative", true},
		{"Steve has the following entity data: 2", "adventure", true},
		{"Steve has the following entity data: 3", "spectator", true},
		{"Steve has the following entity data: 7", "", false},
	}

	for _, tc := range cases {
		got, ok := Gamemode(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Gamemode(%q) = %q/%v, want %q/%v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDimension(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{`Steve has the following entity data: "minecraft:overworld"`, "Overworld", true},
		{`Steve has the following entity data: "minecraft:the_nether"`, "Nether", true},
		{`Steve has the following entity data: "minecraft:the_end"`, "The End", true},
		{`Steve has the following entity data: "minecraft:custom_realm"`, "custom realm", true},
		{"No entity was found", "", false},
	}

	for _, tc := range cases {
		got, ok := Dimension(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Dimension(%q) = %q/%v, want %q/%v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestUUID(t *testing.T) {
	raw := "Steve has the following entity data: [I;-1867949367, -1412099365, -1979710043, -1227887240]"
	got, ok := UUID(raw)
	if !ok {
		t.Fatal("expected parse success")
	}
	if want := "90a95ac9-abd5-12db-8a00-05a5b6cfed78"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if _, ok := UUID("not a uuid"); ok {
		t.Error("expected parse failure")
	}
}

func TestFlyingEnabled(t *testing.T) {
	if !FlyingEnabled("Steve has the following entity data: {invulnerable: 0b, mayfly: 1b, flying: 0b}") {
		t.Error("expected mayfly detected")
	}
	if FlyingEnabled("Steve has the following entity data: {mayfly: 0b}") {
		t.Error("expected mayfly not detected")
	}
}
