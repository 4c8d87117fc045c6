package rcon

import (
	"errors"
	"testing"
	"time"
)

func TestDialerRun(t *testing.T) {
	_, host, port := startMockServer(t, "secret", "pong", false)

	d := Dialer{Options: Options{ConnectTimeout: time.Second, CommandTimeout: time.Second}}
	target := Target{Host: host, Port: port, Password: "secret"}

	var results []Result
	err := d.Run(target, func(send SendFunc) error {
		results = append(results, send("ping"), send("ping"))
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for i, res := range results {
		if !res.Ok || res.Stdout != "pong" {
			t.Errorf("result %d: got %+v, want ok pong", i, res)
		}
	}
}

func TestDialerRunAuthFailure(t *testing.T) {
	_, host, port := startMockServer(t, "secret", "", false)

	d := Dialer{Options: Options{ConnectTimeout: time.Second, CommandTimeout: time.Second}}
	target := Target{Host: host, Port: port, Password: "nope"}

	called := false
	err := d.Run(target, func(send SendFunc) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("got %v, want ErrAuth", err)
	}
	if called {
		t.Error("session function ran despite auth failure")
	}
}

func TestDialerRunConnectFailure(t *testing.T) {
	d := Dialer{Options: Options{ConnectTimeout: 200 * time.Millisecond, CommandTimeout: time.Second}}

	err := d.Run(Target{Host: "127.0.0.1", Port: 1, Password: "x"}, func(send SendFunc) error {
		t.Error("session function ran despite connect failure")
		return nil
	})
	if !errors.Is(err, ErrConnect) {
		t.Fatalf("got %v, want ErrConnect", err)
	}
}
