package reminders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"tableflip.dev/daybridge/pkg/envelope"
	"tableflip.dev/daybridge/pkg/eventkit"
	"tableflip.dev/daybridge/pkg/store"
)

func testStore(t *testing.T) eventkit.Store {
	t.Helper()
	s, err := store.Load(&store.StaticConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("store.Load() returned %v", err)
	}
	return s
}

func parseEnvelope(t *testing.T, buf *bytes.Buffer) envelope.Response {
	t.Helper()
	resp, err := envelope.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("malformed envelope: %v\n%s", err, buf.String())
	}
	return resp
}

func TestCreatePriorityValues(t *testing.T) {
	tests := []struct {
		priority int
		ok       bool
	}{
		{priority: 0, ok: true},
		{priority: 1, ok: true},
		{priority: 5, ok: true},
		{priority: 9, ok: true},
		{priority: 2, ok: false},
		{priority: 4, ok: false},
		{priority: 10, ok: false},
		{priority: -1, ok: false},
	}
	s := testStore(t)
	ctx := context.Background()
	for _, tc := range tests {
		t.Run(fmt.Sprintf("priority=%d", tc.priority), func(t *testing.T) {
			var buf bytes.Buffer
			c := Create{
				Store:    s,
				Out:      &envelope.Writer{Out: &buf},
				Title:    "Water plants",
				Priority: tc.priority,
			}
			if err := c.Do(ctx); err != nil {
				t.Fatalf("Do() returned %v", err)
			}
			resp := parseEnvelope(t, &buf)
			if tc.ok {
				if resp.Status != envelope.StatusOK {
					t.Fatalf("create failed: %s", resp.Message)
				}
				var created eventkit.Reminder
				if err := json.Unmarshal(resp.Data, &created); err != nil {
					t.Fatal(err)
				}
				if created.Priority != tc.priority {
					t.Errorf("priority = %d, want %d", created.Priority, tc.priority)
				}
				return
			}
			if resp.Status != envelope.StatusError || !strings.Contains(resp.Message, "priority") {
				t.Errorf("got %+v", resp)
			}
		})
	}
}

func TestDeleteConfirmsID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	created, err := s.CreateReminder(ctx, eventkit.ReminderDraft{Title: "Water plants"})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	d := Delete{Store: s, Out: &envelope.Writer{Out: &buf}, ID: created.ID}
	if err := d.Do(ctx); err != nil {
		t.Fatalf("Do() returned %v", err)
	}
	resp := parseEnvelope(t, &buf)
	if resp.Status != envelope.StatusOK {
		t.Fatalf("delete failed: %s", resp.Message)
	}
	var confirm map[string]string
	if err := json.Unmarshal(resp.Data, &confirm); err != nil {
		t.Fatal(err)
	}
	if confirm["deleted"] != created.ID {
		t.Errorf(`data = %s, want {"deleted": %q}`, resp.Data, created.ID)
	}

	if _, err := s.Reminder(ctx, created.ID); !eventkit.IsNotFound(err) {
		t.Errorf("reminder still present: %v", err)
	}
}
