// Package bridge spawns the adapter binary and translates its JSON envelope
// into typed values. Each call is one isolated subprocess invocation with a
// hard timeout; there are no retries and no shared state.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"tableflip.dev/daybridge/pkg/envelope"
	"tableflip.dev/daybridge/pkg/eventkit"
)

// DefaultTimeout bounds every adapter call.
const DefaultTimeout = 10 * time.Second

// Bridge runs adapter subcommands against the binary at Path.
type Bridge struct {
	Path    string
	Timeout time.Duration
}

// New creates a bridge with the default timeout.
func New(path string) *Bridge {
	return &Bridge{Path: path, Timeout: DefaultTimeout}
}

// Resolve picks the adapter binary: the settings override when set, then the
// current executable (adapter and client ship in the same binary), then
// "daybridge" on PATH.
func Resolve(override string) string {
	if override != "" {
		return override
	}
	if self, err := os.Executable(); err == nil {
		return self
	}
	if found, err := exec.LookPath("daybridge"); err == nil {
		return found
	}
	return "daybridge"
}

// run spawns one adapter invocation, captures stdout only, and decodes the
// envelope. The adapter signals failure through the envelope, never through
// its exit code.
func (b *Bridge) run(ctx context.Context, args ...string) (json.RawMessage, error) {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.Path, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("daybridge call timed out after %s", timeout)
		}
		return nil, fmt.Errorf("daybridge call failed: %w", err)
	}

	resp, err := envelope.Parse(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("daybridge returned malformed output: %w", err)
	}
	if resp.Status == envelope.StatusError {
		if resp.Message == "" {
			return nil, errors.New("unknown daybridge error")
		}
		return nil, errors.New(resp.Message)
	}
	return resp.Data, nil
}

func (b *Bridge) call(ctx context.Context, target interface{}, args ...string) error {
	data, err := b.run(ctx, args...)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// Calendars fetches all event calendars.
func (b *Bridge) Calendars(ctx context.Context) ([]eventkit.Calendar, error) {
	var out []eventkit.Calendar
	err := b.call(ctx, &out, "list-calendars")
	return out, err
}

// Events fetches events overlapping the [from, to] day range, optionally
// filtered to a set of calendar ids.
func (b *Bridge) Events(ctx context.Context, from, to string, calendarIDs []string) ([]eventkit.Event, error) {
	args := []string{"list-events", "--from", from, "--to", to}
	if len(calendarIDs) > 0 {
		args = append(args, "--calendars", strings.Join(calendarIDs, ","))
	}
	var out []eventkit.Event
	err := b.call(ctx, &out, args...)
	return out, err
}

// Event fetches a single event by id.
func (b *Bridge) Event(ctx context.Context, id string) (eventkit.Event, error) {
	var out eventkit.Event
	err := b.call(ctx, &out, "get-event", "--id", id)
	return out, err
}

// ReminderLists fetches all reminder lists.
func (b *Bridge) ReminderLists(ctx context.Context) ([]eventkit.ReminderList, error) {
	var out []eventkit.ReminderList
	err := b.call(ctx, &out, "list-reminder-lists")
	return out, err
}

// CreateReminder creates a reminder in the given list. due and notes are
// optional.
func (b *Bridge) CreateReminder(ctx context.Context, listID, title, due, notes string) (eventkit.Reminder, error) {
	args := []string{"create-reminder", "--list", listID, "--title", title}
	if due != "" {
		args = append(args, "--due", due)
	}
	if notes != "" {
		args = append(args, "--notes", notes)
	}
	var out eventkit.Reminder
	err := b.call(ctx, &out, args...)
	return out, err
}
