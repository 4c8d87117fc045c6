package gateway

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/mcraftr/craftd/internal/catalog"
	"github.com/mcraftr/craftd/internal/rcon"
)

// stubRunner satisfies rcon.Runner without sockets. Commands answer from
// the responses map, falling back to a default; runErr simulates a
// session-level failure (connect, auth).
type stubRunner struct {
	responses  map[string]rcon.Result
	defaultRes rcon.Result
	runErr     error

	mu       sync.Mutex
	commands []string
}

func (s *stubRunner) Run(_ rcon.Target, fn func(send rcon.SendFunc) error) error {
	if s.runErr != nil {
		return s.runErr
	}

	return fn(func(cmd string) rcon.Result {
		s.mu.Lock()
		s.commands = append(s.commands, cmd)
		s.mu.Unlock()

		if res, ok := s.responses[cmd]; ok {
			return res
		}
		if s.defaultRes.Ok || s.defaultRes.Error != "" {
			return s.defaultRes
		}
		return rcon.Result{Ok: true}
	})
}

func (s *stubRunner) sent(cmd string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.commands {
		if c == cmd {
			return true
		}
	}
	return false
}

type memAudit struct {
	mu      sync.Mutex
	actions []string
	chats   []string
}

func (m *memAudit) LogAction(caller, action, target, detail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, action+":"+target)
	return nil
}

func (m *memAudit) LogChat(caller, kind, player, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats = append(m.chats, kind+":"+message)
	return nil
}

type denyLimiter struct{}

func (denyLimiter) Allow(bucket, key string) bool { return false }

func okOut(s string) rcon.Result { return rcon.Result{Ok: true, Stdout: s} }

var testTarget = rcon.Target{Host: "203.0.113.5", Port: 25575, Password: "pw"}

func TestBanPartialSuccess(t *testing.T) {
	runner := &stubRunner{responses: map[string]rcon.Result{
		"ban Steve griefing": okOut("Banned Steve"),
		"ban-ip Steve":       {Error: "Unknown command"},
	}}
	audit := &memAudit{}
	g := New(runner, nil, audit, nil)

	res, err := g.Ban(testTarget, "tester", BanRequest{Player: "Steve", Reason: "griefing", BanIP: true})
	if err != nil {
		t.Fatalf("ban: %v", err)
	}
	if !res.Ok {
		t.Fatalf("got failure %q, want partial success", res.Error)
	}

	want := "Banned Steve (+ IP): griefing (ban-ip failed: Unknown command)"
	if res.Message != want {
		t.Errorf("got %q, want %q", res.Message, want)
	}
	if len(audit.actions) != 1 || audit.actions[0] != "ban:Steve" {
		t.Errorf("audit entries: %v", audit.actions)
	}
}

func TestBanBothSucceed(t *testing.T) {
	runner := &stubRunner{responses: map[string]rcon.Result{
		"ban Steve griefing": okOut("Banned Steve"),
		"ban-ip Steve":       okOut("Banned IP"),
	}}
	g := New(runner, nil, nil, nil)

	res, err := g.Ban(testTarget, "tester", BanRequest{Player: "Steve", Reason: "griefing", BanIP: true})
	if err != nil {
		t.Fatalf("ban: %v", err)
	}
	if !res.Ok || res.Message != "Banned Steve (+ IP): griefing" {
		t.Fatalf("got %+v", res)
	}
	if !runner.sent("ban Steve griefing") || !runner.sent("ban-ip Steve") {
		t.Errorf("commands sent: %v", runner.commands)
	}
}

func TestBanAllSubCommandsFail(t *testing.T) {
	runner := &stubRunner{runErr: errors.New("connection failed: refused")}
	g := New(runner, nil, nil, nil)

	res, err := g.Ban(testTarget, "tester", BanRequest{Player: "Steve", BanIP: true})
	if err != nil {
		t.Fatalf("ban: %v", err)
	}
	if res.Ok {
		t.Fatal("expected failure when every sub-command fails")
	}
	if !strings.Contains(res.Error, "refused") {
		t.Errorf("got %q, want first error carried through", res.Error)
	}
}

func TestBanRejectsBadPlayerName(t *testing.T) {
	g := New(&stubRunner{}, nil, nil, nil)

	_, err := g.Ban(testTarget, "tester", BanRequest{Player: "Steve; stop"})
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestBlockedTarget(t *testing.T) {
	g := New(&stubRunner{}, nil, nil, nil)

	blocked := rcon.Target{Host: "192.168.1.10", Password: "pw"}
	if _, err := g.Kick(blocked, "tester", "Steve", ""); !errors.Is(err, ErrBlockedAddress) {
		t.Fatalf("got %v, want ErrBlockedAddress", err)
	}
}

func TestRateLimited(t *testing.T) {
	g := New(&stubRunner{}, denyLimiter{}, nil, nil)

	if _, err := g.Kick(testTarget, "tester", "Steve", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}
}

func TestValidPlayerName(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"Steve", true},
		{"x", true},
		{"Player_123", true},
		{".BedrockGamer", true},
		{"abcdefghijklmnop", true},
		{"", false},
		{"abcdefghijklmnopq", false},
		{"Steve Alex", false},
		{"Steve;stop", false},
		{"..Steve", false},
	}

	for _, tc := range cases {
		if got := ValidPlayerName(tc.name); got != tc.valid {
			t.Errorf("ValidPlayerName(%q) = %v, want %v", tc.name, got, tc.valid)
		}
	}
}

func TestSanitizeText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"hello world", "hello world"},
		{"line\nbreak\ttab", "linebreaktab"},
		{"café ünïcode", "caf ncode"},
		{"  padded  ", "padded"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := SanitizeText(tc.in, 255); got != tc.want {
			t.Errorf("SanitizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	long := strings.Repeat("ab ", 200)
	once := SanitizeText(long, 255)
	if len(once) > 255 {
		t.Errorf("got %d bytes, want <= 255", len(once))
	}
	if twice := SanitizeText(once, 255); twice != once {
		t.Errorf("not idempotent: %q vs %q", once, twice)
	}
}

func TestQuickRequiresPlayer(t *testing.T) {
	g := New(&stubRunner{}, nil, nil, nil)

	_, err := g.Quick(testTarget, "tester", QuickHeal, "")
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}

	if _, err := g.Quick(testTarget, "tester", QuickDay, ""); err != nil {
		t.Fatalf("day should not need a player: %v", err)
	}
}

func TestQuickFlyActivation(t *testing.T) {
	runner := &stubRunner{responses: map[string]rcon.Result{
		"fly Steve": okOut("Set fly enabled for Steve"),
	}}
	g := New(runner, nil, nil, nil)

	res, err := g.Quick(testTarget, "tester", QuickFly, "Steve")
	if err != nil {
		t.Fatalf("quick: %v", err)
	}
	if !res.Ok || res.Activated == nil || !*res.Activated {
		t.Fatalf("got %+v, want activated", res)
	}
	if res.Message != "Activated: Fly for Steve" {
		t.Errorf("got message %q", res.Message)
	}
}

func TestEffectsStableOrder(t *testing.T) {
	runner := &stubRunner{responses: map[string]rcon.Result{
		"data get entity Steve active_effects": okOut(
			`Steve has the following entity data: [{id: "minecraft:speed", duration: 110}, {id: "minecraft:night_vision", duration: 290}]`),
		"data get entity Steve abilities": okOut(
			`Steve has the following entity data: {flying: 1b, mayfly: 1b}`),
	}}
	g := New(runner, nil, nil, nil)

	res, err := g.Effects(testTarget, "tester", "Steve")
	if err != nil {
		t.Fatalf("effects: %v", err)
	}
	if !res.Ok {
		t.Fatalf("got %+v, want ok", res)
	}

	want := []string{"night_vision", "speed", "fly"}
	if len(res.Active) != len(want) {
		t.Fatalf("got %v, want %v", res.Active, want)
	}
	for i := range want {
		if res.Active[i] != want[i] {
			t.Fatalf("got %v, want %v", res.Active, want)
		}
	}
}

func TestParseQuickCommand(t *testing.T) {
	if cmd, ok := ParseQuickCommand("night_vision"); !ok || cmd != QuickNightVision {
		t.Errorf("got %v/%v", cmd, ok)
	}
	if _, ok := ParseQuickCommand("rm_rf"); ok {
		t.Error("unknown action should not parse")
	}
}

func TestServerInfoDegradesPerField(t *testing.T) {
	runner := &stubRunner{
		responses: map[string]rcon.Result{
			"list":    okOut("There are 3 of a max of 20 players online: Steve, Alex, Notch"),
			"version": {Error: "timeout"},
		},
		defaultRes: rcon.Result{Error: "Unknown command"},
	}
	g := New(runner, nil, nil, nil)

	info, err := g.Info(testTarget, "tester")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if !info.Ok {
		t.Fatalf("got failure %q, want degraded success", info.Error)
	}
	if info.Online == nil || *info.Online != 3 || info.Max == nil || *info.Max != 20 {
		t.Errorf("counts: %+v", info)
	}
	if len(info.Players) != 3 {
		t.Errorf("players: %v", info.Players)
	}
	if info.Version != nil || info.TPS != nil || info.DayTime != nil || info.Weather != nil {
		t.Errorf("failed probes should be null: %+v", info)
	}
}

func TestServerInfoUnreachable(t *testing.T) {
	runner := &stubRunner{runErr: errors.New("connection failed: refused")}
	g := New(runner, nil, nil, nil)

	info, err := g.Info(testTarget, "tester")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.Ok {
		t.Fatal("expected failure when list and version both fail")
	}
}

func TestVitalsOffline(t *testing.T) {
	runner := &stubRunner{defaultRes: rcon.Result{Error: "No entity was found"}}
	g := New(runner, nil, nil, nil)

	v, err := g.Vitals(testTarget, "tester", "Steve")
	if err != nil {
		t.Fatalf("vitals: %v", err)
	}
	if v.Ok {
		t.Fatal("expected offline report")
	}
	if !strings.Contains(v.Error, "offline") {
		t.Errorf("got %q", v.Error)
	}
}

func TestVitalsPing(t *testing.T) {
	base := map[string]rcon.Result{
		"data get entity Steve Health":  okOut("Steve has the following entity data: 18.0f"),
		"data get entity Steve latency": okOut("Steve has the following entity data: 42"),
	}
	g := New(&stubRunner{responses: base, defaultRes: rcon.Result{Error: "No entity was found"}}, nil, nil, nil)

	v, err := g.Vitals(testTarget, "tester", "Steve")
	if err != nil {
		t.Fatalf("vitals: %v", err)
	}
	if !v.Ok {
		t.Fatalf("got failure %q", v.Error)
	}
	if v.Ping == nil || *v.Ping != 42 {
		t.Errorf("ping: %+v", v.Ping)
	}
}

func TestVitalsPingUnsupported(t *testing.T) {
	// Vanilla servers reject the latency path; everything else still
	// reports and ping stays null.
	runner := &stubRunner{
		responses: map[string]rcon.Result{
			"data get entity Steve latency": {Error: "Found no elements matching latency"},
		},
		defaultRes: okOut("Steve has the following entity data: 20"),
	}
	g := New(runner, nil, nil, nil)

	v, err := g.Vitals(testTarget, "tester", "Steve")
	if err != nil {
		t.Fatalf("vitals: %v", err)
	}
	if !v.Ok {
		t.Fatalf("got failure %q", v.Error)
	}
	if v.Ping != nil {
		t.Errorf("ping should be null, got %d", *v.Ping)
	}
	if v.Food == nil || *v.Food != 20 {
		t.Errorf("food: %+v", v.Food)
	}
}

func TestInventoryOmitsDeadSlot(t *testing.T) {
	runner := &stubRunner{
		responses: map[string]rcon.Result{
			"data get entity Steve Inventory[3].id":    okOut(`Steve has the following entity data: "minecraft:diamond_sword"`),
			"data get entity Steve Inventory[3].count": okOut("Steve has the following entity data: 1"),
			"data get entity Steve Inventory[9].id":    {Error: "timeout"},
		},
		defaultRes: okOut("Found no elements matching the given path"),
	}
	g := New(runner, nil, nil, nil)

	inv, err := g.Inventory(testTarget, "tester", "Steve")
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	if !inv.Ok {
		t.Fatalf("got failure %q", inv.Error)
	}
	if len(inv.Slots) != 1 {
		t.Fatalf("got %d slots, want 1: %+v", len(inv.Slots), inv.Slots)
	}

	slot := inv.Slots[0]
	if slot.Slot != 3 || slot.ID != "minecraft:diamond_sword" || slot.Count != 1 {
		t.Errorf("got %+v", slot)
	}
	if slot.Label != "Diamond Sword" {
		t.Errorf("label: %q", slot.Label)
	}
}

func TestGiveValidatesItem(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	runner := &stubRunner{}
	g := New(runner, nil, nil, cat)

	if _, err := g.Give(testTarget, "tester", "Steve", "suspicious_item", 1); err == nil {
		t.Fatal("unknown item should be rejected")
	}

	res, err := g.Give(testTarget, "tester", "Steve", "minecraft:diamond", 16)
	if err != nil {
		t.Fatalf("give: %v", err)
	}
	if !res.Ok {
		t.Fatalf("got failure %q", res.Error)
	}
	if !runner.sent("give Steve minecraft:diamond 16") {
		t.Errorf("commands sent: %v", runner.commands)
	}
}

func TestKitAllOrNothing(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	kit, ok := cat.Kit("starter")
	if !ok || len(kit.Commands) == 0 {
		t.Fatal("starter kit missing from catalog")
	}

	failing := strings.ReplaceAll(kit.Commands[0], "{player}", "Steve")
	runner := &stubRunner{responses: map[string]rcon.Result{
		failing: {Error: "Unknown item"},
	}}
	g := New(runner, nil, nil, cat)

	res, err := g.Kit(testTarget, "tester", "Steve", "starter")
	if err != nil {
		t.Fatalf("kit: %v", err)
	}
	if res.Ok {
		t.Fatal("kit with a failed give should fail")
	}
	if !strings.Contains(res.Error, "1 command(s) failed") {
		t.Errorf("got %q", res.Error)
	}
}

func TestBroadcastRecordsChat(t *testing.T) {
	audit := &memAudit{}
	g := New(&stubRunner{}, nil, audit, nil)

	res, err := g.Broadcast(testTarget, "tester", "restart soon")
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if !res.Ok {
		t.Fatalf("got failure %q", res.Error)
	}
	if len(audit.chats) != 1 || audit.chats[0] != "broadcast:restart soon" {
		t.Errorf("chat entries: %v", audit.chats)
	}
}

func TestTeleportSelfRejected(t *testing.T) {
	g := New(&stubRunner{}, nil, nil, nil)

	_, err := g.Teleport(testTarget, "tester", "Steve", "Steve")
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}
