// Package caldav implements the calendar store over a CalDAV server
// (iCloud by default): events as VEVENTs, reminder lists as VTODO
// collections.
package caldav

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-webdav/caldav"

	"tableflip.dev/daybridge/pkg/eventkit"
)

// DefaultURL is Apple's iCloud CalDAV endpoint.
const DefaultURL = "https://caldav.icloud.com"

// Options carries the connection settings for the backend.
type Options struct {
	URL      string
	Username string
	Password string
}

// Store is an eventkit.Store backed by a CalDAV server. Calendar and
// reminder-list ids are collection paths; event and reminder ids are object
// paths, so every record can be fetched directly.
type Store struct {
	opts   Options
	client *caldav.Client

	calendars []caldav.Calendar // discovery cache for one invocation
}

// New creates a CalDAV store. The connection is established lazily.
func New(opts Options) *Store {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	return &Store{opts: opts}
}

// RequestAccess verifies credentials are present and usable. CalDAV has no
// grant dialog; a missing or rejected login is this backend's permission
// denial.
func (s *Store) RequestAccess(ctx context.Context, scope eventkit.Scope) error {
	if s.opts.Username == "" || s.opts.Password == "" {
		return &eventkit.PermissionError{Scope: scope}
	}
	if _, err := s.connect(); err != nil {
		return &eventkit.PermissionError{Scope: scope}
	}
	return nil
}

func (s *Store) connect() (*caldav.Client, error) {
	if s.client != nil {
		return s.client, nil
	}
	httpClient := &http.Client{
		Transport: &basicAuthTransport{
			username: s.opts.Username,
			password: s.opts.Password,
		},
		Timeout: 30 * time.Second,
	}
	client, err := caldav.NewClient(httpClient, s.opts.URL)
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}

type basicAuthTransport struct {
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	return http.DefaultTransport.RoundTrip(req)
}

// discover finds all collections under the user's calendar home set.
func (s *Store) discover(ctx context.Context) ([]caldav.Calendar, error) {
	if s.calendars != nil {
		return s.calendars, nil
	}
	client, err := s.connect()
	if err != nil {
		return nil, err
	}
	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return nil, err
	}
	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return nil, err
	}
	s.calendars = cals
	return cals, nil
}

func supports(cal caldav.Calendar, comp string) bool {
	// An empty component set advertises nothing either way; treat it as an
	// event calendar.
	if len(cal.SupportedComponentSet) == 0 {
		return comp == "VEVENT"
	}
	for _, c := range cal.SupportedComponentSet {
		if strings.EqualFold(c, comp) {
			return true
		}
	}
	return false
}

func (s *Store) eventCalendars(ctx context.Context) ([]caldav.Calendar, error) {
	all, err := s.discover(ctx)
	if err != nil {
		return nil, err
	}
	cals := make([]caldav.Calendar, 0, len(all))
	for _, cal := range all {
		if supports(cal, "VEVENT") {
			cals = append(cals, cal)
		}
	}
	return cals, nil
}

func (s *Store) todoCalendars(ctx context.Context) ([]caldav.Calendar, error) {
	all, err := s.discover(ctx)
	if err != nil {
		return nil, err
	}
	cals := make([]caldav.Calendar, 0, len(all))
	for _, cal := range all {
		if supports(cal, "VTODO") {
			cals = append(cals, cal)
		}
	}
	return cals, nil
}

// Calendars lists event calendars. CalDAV discovery carries no display
// color, so every calendar reports the placeholder.
func (s *Store) Calendars(ctx context.Context) ([]eventkit.Calendar, error) {
	cals, err := s.eventCalendars(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]eventkit.Calendar, 0, len(cals))
	for _, cal := range cals {
		out = append(out, eventkit.Calendar{
			ID:     cal.Path,
			Title:  cal.Name,
			Color:  eventkit.PlaceholderColor,
			Source: s.opts.URL,
		})
	}
	return out, nil
}

// ReminderLists lists VTODO collections.
func (s *Store) ReminderLists(ctx context.Context) ([]eventkit.ReminderList, error) {
	cals, err := s.todoCalendars(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]eventkit.ReminderList, 0, len(cals))
	for _, cal := range cals {
		out = append(out, eventkit.ReminderList{
			ID:    cal.Path,
			Title: cal.Name,
			Color: eventkit.PlaceholderColor,
		})
	}
	return out, nil
}

func (s *Store) calendarByID(ctx context.Context, id string) (caldav.Calendar, bool, error) {
	cals, err := s.eventCalendars(ctx)
	if err != nil {
		return caldav.Calendar{}, false, err
	}
	for _, cal := range cals {
		if cal.Path == id {
			return cal, true, nil
		}
	}
	return caldav.Calendar{}, false, nil
}

func objectPath(collection, uid string) string {
	if !strings.HasSuffix(collection, "/") {
		collection += "/"
	}
	return collection + uid + ".ics"
}

// collectionOf returns the parent collection of an object path.
func collectionOf(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}
	return path[:idx+1]
}
