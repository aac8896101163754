package events

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

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

func mustISO(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad fixture %q: %v", s, err)
	}
	return tm
}

func parseEnvelope(t *testing.T, buf *bytes.Buffer) envelope.Response {
	t.Helper()
	resp, err := envelope.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("malformed envelope: %v\n%s", err, buf.String())
	}
	return resp
}

func TestCreateThenList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	var buf bytes.Buffer
	out := &envelope.Writer{Out: &buf}

	c := Create{
		Store:     s,
		Out:       out,
		Title:     "Standup",
		StartDate: "2026-03-02T10:00:00Z",
		EndDate:   "2026-03-02T10:30:00Z",
	}
	if err := c.Do(ctx); err != nil {
		t.Fatalf("Do() returned %v", err)
	}
	resp := parseEnvelope(t, &buf)
	if resp.Status != envelope.StatusOK {
		t.Fatalf("create failed: %s", resp.Message)
	}
	var created eventkit.Event
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("decoding created event: %v", err)
	}
	if created.CalendarID != store.DefaultCalendarID {
		t.Errorf("calendar = %q", created.CalendarID)
	}

	// The three-day range keeps the check independent of the local zone.
	buf.Reset()
	l := List{Store: s, Out: out, From: "2026-03-01", To: "2026-03-03"}
	if err := l.Do(ctx); err != nil {
		t.Fatalf("Do() returned %v", err)
	}
	resp = parseEnvelope(t, &buf)
	if resp.Status != envelope.StatusOK {
		t.Fatalf("list failed: %s", resp.Message)
	}
	if !strings.Contains(string(resp.Data), "Standup") {
		t.Errorf("event missing from %s", resp.Data)
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	var buf bytes.Buffer
	c := Create{
		Store:     testStore(t),
		Out:       &envelope.Writer{Out: &buf},
		StartDate: "2026-03-02T10:00:00Z",
		EndDate:   "2026-03-02T10:30:00Z",
	}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("Do() returned %v", err)
	}
	resp := parseEnvelope(t, &buf)
	if resp.Status != envelope.StatusError || !strings.Contains(resp.Message, "title") {
		t.Errorf("got %+v", resp)
	}
}

func TestListRejectsBadDates(t *testing.T) {
	var buf bytes.Buffer
	l := List{
		Store: testStore(t),
		Out:   &envelope.Writer{Out: &buf},
		From:  "03/02/2026",
		To:    "2026-03-03",
	}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Do() returned %v", err)
	}
	resp := parseEnvelope(t, &buf)
	if resp.Status != envelope.StatusError {
		t.Errorf("got %+v", resp)
	}
}

func TestGetMissingEvent(t *testing.T) {
	var buf bytes.Buffer
	g := Get{Store: testStore(t), Out: &envelope.Writer{Out: &buf}, ID: "nope"}
	if err := g.Do(context.Background()); err != nil {
		t.Fatalf("Do() returned %v", err)
	}
	resp := parseEnvelope(t, &buf)
	if resp.Status != envelope.StatusError || !strings.Contains(resp.Message, "not found") {
		t.Errorf("got %+v", resp)
	}
}

func TestPermissionDeniedEnvelope(t *testing.T) {
	s, err := store.Load(&store.StaticConfig{Path: t.TempDir(), DenyCalendars: true})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	l := List{Store: s, Out: &envelope.Writer{Out: &buf}, From: "2026-03-01", To: "2026-03-01"}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Do() returned %v", err)
	}
	resp := parseEnvelope(t, &buf)
	if resp.Status != envelope.StatusError || !strings.Contains(resp.Message, "access denied") {
		t.Errorf("got %+v", resp)
	}
}

func TestUpdateAppliesOnlySetFields(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	created, err := s.CreateEvent(ctx, eventkit.EventDraft{
		Title: "Standup",
		Start: mustISO(t, "2026-03-02T10:00:00Z"),
		End:   mustISO(t, "2026-03-02T10:30:00Z"),
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	title := "Standup (moved)"
	u := Update{Store: s, Out: &envelope.Writer{Out: &buf}, ID: created.ID, Title: &title}
	if err := u.Do(ctx); err != nil {
		t.Fatalf("Do() returned %v", err)
	}
	resp := parseEnvelope(t, &buf)
	if resp.Status != envelope.StatusOK {
		t.Fatalf("update failed: %s", resp.Message)
	}
	var updated eventkit.Event
	if err := json.Unmarshal(resp.Data, &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Title != title || updated.StartDate != created.StartDate {
		t.Errorf("got %+v", updated)
	}
}

func TestDeleteConfirmsID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	created, err := s.CreateEvent(ctx, eventkit.EventDraft{
		Title: "Standup",
		Start: mustISO(t, "2026-03-02T10:00:00Z"),
		End:   mustISO(t, "2026-03-02T10:30:00Z"),
	})
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

	if _, err := s.Event(ctx, created.ID); !eventkit.IsNotFound(err) {
		t.Errorf("event still present: %v", err)
	}
}
