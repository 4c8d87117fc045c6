package mcparse

import (
	"reflect"
	"testing"
)

func TestPlayerCount(t *testing.T) {
	cases := []struct {
		raw    string
		online int
		max    int
	}{
		{"There are 3 of a max of 20 players online: Steve, Alex, Notch", 3, 20},
		{"There are 3 of a max 20 players online: Steve, Alex, Notch", 3, 20},
		{"There are 12 out of maximum 100 players online.", 12, 100},
		{"There are 0 of a max of 20 players online:", 0, 20},
		{"unexpected reply", 0, 0},
		{"", 0, 0},
	}

	for _, tc := range cases {
		online, max := PlayerCount(tc.raw)
		if online != tc.online || max != tc.max {
			t.Errorf("PlayerCount(%q) = %d/%d, want %d/%d", tc.raw, online, max, tc.online, tc.max)
		}
	}
}

func TestPlayerNames(t *testing.T) {
	got := PlayerNames("There are 2 of a max of 20 players online: Steve, Alex")
	want := []string{"Steve", "Alex"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := PlayerNames("There are 0 of a max of 20 players online:"); got != nil {
		t.Errorf("empty list: got %v, want nil", got)
	}
}

func TestVersion(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"This server is running Paper version 1.21.4-232-master@7e97b3a (MC: 1.21.4)", "1.21.4"},
		{"This server is running Paper version 1.21.4-232\nPrevious version: 1.21.3-15", "1.21.4"},
		{"This server is running CraftBukkit version 4189-Spigot (MC: 1.20.4)", "1.20.4"},
		{"This server is running Minecraft server version 1.19.2", "1.19.2"},
		{"something unexpected", "something unexpected"},
		{"", "Unknown"},
	}

	for _, tc := range cases {
		if got := Version(tc.raw); got != tc.want {
			t.Errorf("Version(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestVersionTruncatesLongLine(t *testing.T) {
	long := "x"
	for len(long) < 100 {
		long += "x"
	}
	if got := Version(long); len(got) != 60 {
		t.Errorf("got %d chars, want 60", len(got))
	}
}

func TestTPS(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"TPS from last 1m, 5m, 15m: 20.0, 19.98, 19.95", 20, true},
		{"TPS from last 1m, 5m, 15m: 18.5, 19.0, 19.2", 18.5, true},
		{"TPS from last 1m, 5m, 15m: 21.3, 20.0, 20.0", 20, true},
		{"Unknown command", 0, false},
	}

	for _, tc := range cases {
		got, ok := TPS(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("TPS(%q) = %v/%v, want %v/%v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestBanList(t *testing.T) {
	raw := "There are 2 ban(s):\n- Steve: griefing\n- Alex was banned by Server: spam"
	got := BanList(raw)
	want := []string{"Steve", "Alex"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := BanList("There are no bans"); got != nil {
		t.Errorf("no bans: got %v, want nil", got)
	}
	if got := BanList(""); got != nil {
		t.Errorf("empty: got %v, want nil", got)
	}
}

func TestWhitelist(t *testing.T) {
	got := Whitelist("There are 2 whitelisted player(s): Steve, Alex")
	want := []string{"Steve", "Alex"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGameruleValue(t *testing.T) {
	if v, ok := GameruleValue("Gamerule keepInventory is currently set to: false"); !ok || v != "false" {
		t.Errorf("got %q/%v, want false/true", v, ok)
	}
	if _, ok := GameruleValue("Unknown gamerule"); ok {
		t.Error("expected parse failure")
	}
}

func TestDifficulty(t *testing.T) {
	if v, ok := Difficulty("The difficulty is Easy"); !ok || v != "easy" {
		t.Errorf("got %q/%v, want easy/true", v, ok)
	}
	if _, ok := Difficulty("garbage"); ok {
		t.Error("expected parse failure")
	}
}

func TestDayTime(t *testing.T) {
	if v, ok := DayTime("The time is 13000"); !ok || v != 13000 {
		t.Errorf("got %d/%v, want 13000/true", v, ok)
	}
	if _, ok := DayTime("no number here"); ok {
		t.Error("expected parse failure")
	}
}

func TestWeather(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"The weather is clear", "clear", true},
		{"Raining heavily", "rain", true},
		{"Thunderstorm in progress", "thunder", true},
		{"Unknown command", "", false},
	}

	for _, tc := range cases {
		got, ok := Weather(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Weather(%q) = %q/%v, want %q/%v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
