package storage

import (
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func TestAuditLogRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.LogAction("10.0.0.1", "ban", "Steve", "griefing"); err != nil {
		t.Fatalf("log action: %v", err)
	}
	if err := repo.LogAction("10.0.0.1", "kick", "Alex", ""); err != nil {
		t.Fatalf("log action: %v", err)
	}

	entries, err := repo.AuditLog(10)
	if err != nil {
		t.Fatalf("audit log: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	for _, e := range entries {
		if e.ID == "" || e.Caller != "10.0.0.1" || e.Timestamp.IsZero() {
			t.Errorf("incomplete entry: %+v", e)
		}
	}
}

func TestAuditLogLimit(t *testing.T) {
	repo := newTestRepo(t)

	for i := 0; i < 5; i++ {
		if err := repo.LogAction("caller", "cmd", "", "list"); err != nil {
			t.Fatalf("log action: %v", err)
		}
	}

	entries, err := repo.AuditLog(3)
	if err != nil {
		t.Fatalf("audit log: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}
}

func TestChatLogRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.LogChat("10.0.0.1", "broadcast", "", "restart soon"); err != nil {
		t.Fatalf("log chat: %v", err)
	}
	if err := repo.LogChat("10.0.0.1", "msg", "Steve", "hello"); err != nil {
		t.Fatalf("log chat: %v", err)
	}

	entries, err := repo.ChatLog(10)
	if err != nil {
		t.Fatalf("chat log: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	var sawBroadcast, sawMsg bool
	for _, e := range entries {
		switch e.Kind {
		case "broadcast":
			sawBroadcast = e.Player == "" && e.Message == "restart soon"
		case "msg":
			sawMsg = e.Player == "Steve" && e.Message == "hello"
		}
	}
	if !sawBroadcast || !sawMsg {
		t.Errorf("entries: %+v", entries)
	}
}
