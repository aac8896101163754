package bridge

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// stubAdapter writes an executable shell script standing in for the adapter
// binary.
func stubAdapter(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub adapter")
	}
	path := filepath.Join(t.TempDir(), "adapter.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("writing stub: %v", err)
	}
	return path
}

func TestCalendars(t *testing.T) {
	b := New(stubAdapter(t, `echo '{"status":"ok","data":[{"id":"cal-1","title":"Personal","color":"#1badf8","source":"Local"}]}'`))

	cals, err := b.Calendars(context.Background())
	if err != nil {
		t.Fatalf("Calendars() returned %v", err)
	}
	if len(cals) != 1 || cals[0].ID != "cal-1" || cals[0].Title != "Personal" {
		t.Errorf("got %+v", cals)
	}
}

func TestErrorEnvelopeBecomesError(t *testing.T) {
	b := New(stubAdapter(t, `echo '{"status":"error","message":"Calendar access denied."}'`))

	_, err := b.Calendars(context.Background())
	if err == nil || err.Error() != "Calendar access denied." {
		t.Errorf("got %v", err)
	}
}

func TestMalformedOutput(t *testing.T) {
	b := New(stubAdapter(t, `echo 'segfault at 0x0'`))

	_, err := b.Calendars(context.Background())
	if err == nil || !strings.Contains(err.Error(), "malformed") {
		t.Errorf("got %v", err)
	}
}

func TestTimeout(t *testing.T) {
	b := New(stubAdapter(t, `sleep 5`))
	b.Timeout = 100 * time.Millisecond

	start := time.Now()
	_, err := b.Calendars(context.Background())
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Errorf("got %v", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Error("call did not respect the timeout")
	}
}

func TestSpawnFailure(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := b.Calendars(context.Background())
	if err == nil || !strings.Contains(err.Error(), "daybridge call failed") {
		t.Errorf("got %v", err)
	}
}

func TestEventsArguments(t *testing.T) {
	script := `echo "$@" > "$(dirname "$0")/args.txt"
echo '{"status":"ok","data":[]}'`
	path := stubAdapter(t, script)
	b := New(path)

	if _, err := b.Events(context.Background(), "2026-03-01", "2026-03-01", []string{"a", "b"}); err != nil {
		t.Fatalf("Events() returned %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(filepath.Dir(path), "args.txt"))
	if err != nil {
		t.Fatalf("reading recorded args: %v", err)
	}
	args := strings.TrimSpace(string(raw))
	want := "list-events --from 2026-03-01 --to 2026-03-01 --calendars a,b"
	if args != want {
		t.Errorf("args = %q, want %q", args, want)
	}
}

func TestCreateReminderArguments(t *testing.T) {
	script := `echo "$@" > "$(dirname "$0")/args.txt"
echo '{"status":"ok","data":{"id":"R1","title":"Buy milk","notes":"","dueDate":null,"isCompleted":false,"priority":0,"listId":"L1","listTitle":"Reminders"}}'`
	path := stubAdapter(t, script)
	b := New(path)

	r, err := b.CreateReminder(context.Background(), "L1", "Buy milk", "", "")
	if err != nil {
		t.Fatalf("CreateReminder() returned %v", err)
	}
	if r.ID != "R1" || r.Title != "Buy milk" {
		t.Errorf("got %+v", r)
	}

	raw, err := os.ReadFile(filepath.Join(filepath.Dir(path), "args.txt"))
	if err != nil {
		t.Fatalf("reading recorded args: %v", err)
	}
	args := strings.TrimSpace(string(raw))
	if strings.Contains(args, "--due") || strings.Contains(args, "--notes") {
		t.Errorf("optional flags sent when empty: %q", args)
	}
}

func TestResolvePrefersOverride(t *testing.T) {
	if got := Resolve("/opt/custom/adapter"); got != "/opt/custom/adapter" {
		t.Errorf("got %q", got)
	}
	if got := Resolve(""); got == "" {
		t.Error("empty resolution")
	}
}
