package store

import (
	"context"
	"encoding/json"
	"sort"

	"tableflip.dev/daybridge/pkg/eventkit"
)

// The reminders fetch is callback-shaped, mirroring the native framework's
// fetchReminders API. Reminders adapts it into a single resolution point
// with the caller's context as the deadline; exactly one delivery happens
// per fetch.

type remindersResult struct {
	reminders []eventkit.Reminder
	err       error
}

func (p *local) Reminders(ctx context.Context, listID string, incompleteOnly bool) ([]eventkit.Reminder, error) {
	// An empty list id means every list.
	if listID != "" {
		if _, ok := p.reminderList(listID); !ok {
			return nil, &eventkit.NotFoundError{Kind: "Reminder list", ID: listID}
		}
	}

	ch := make(chan remindersResult, 1)
	go p.fetchReminders(ctx, listID, func(reminders []eventkit.Reminder, err error) {
		ch <- remindersResult{reminders: reminders, err: err}
	})

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, res.err
		}
		if !incompleteOnly {
			return res.reminders, nil
		}
		kept := make([]eventkit.Reminder, 0, len(res.reminders))
		for _, r := range res.reminders {
			if !r.IsCompleted {
				kept = append(kept, r)
			}
		}
		return kept, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fetchReminders walks the reminder records and delivers the matching set to
// cb exactly once.
func (p *local) fetchReminders(ctx context.Context, listID string, cb func([]eventkit.Reminder, error)) {
	all := make([]eventkit.Reminder, 0)
	for k := range p.d.KeysPrefix(kindReminder+"/", ctx.Done()) {
		val, err := p.d.Read(k)
		if err != nil {
			continue
		}
		var r eventkit.Reminder
		if err := json.Unmarshal(val, &r); err != nil {
			continue
		}
		if listID == "" || r.ListID == listID {
			all = append(all, r)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Title == all[j].Title {
			return all[i].ID < all[j].ID
		}
		return all[i].Title < all[j].Title
	})
	cb(all, nil)
}
