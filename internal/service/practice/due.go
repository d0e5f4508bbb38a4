package practice

import (
	"sort"
	"time"

	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/domain/srs"
)

// DueItem pairs a due item with its review state (nil when the item has
// never been reviewed) and the mastery rank used for ordering.
type DueItem struct {
	Item  domain.Item
	State *domain.ReviewState
	Rank  int
}

// BuildDueSet filters, deduplicates, and orders due-set candidates into the
// sequence a session will snapshot. Never-reviewed items come first so new
// material is front-loaded ahead of reinforcement, followed by the rest in
// ascending mastery rank. Both groups break ties on the pool-qualified ref,
// keeping the sequence deterministic and sessions reproducible.
//
// Eligibility is enforced here regardless of what the store returned: an
// item is due when it has no state or its next review time is at or before
// now. maxItems caps the result when positive.
func BuildDueSet(
	items []domain.Item,
	states map[domain.ItemRef]*domain.ReviewState,
	registry *srs.Registry,
	now time.Time,
	maxItems int,
) []DueItem {
	seen := make(map[domain.ItemRef]bool, len(items))
	due := make([]DueItem, 0, len(items))

	for _, item := range items {
		ref := item.Ref()
		if seen[ref] {
			continue
		}
		seen[ref] = true

		state := states[ref]
		if state != nil && state.NextReviewAt.After(now) {
			continue
		}

		rank := 0
		if state != nil {
			rank = registry.ForState(state).Rank(state)
		}

		due = append(due, DueItem{Item: item, State: state, Rank: rank})
	}

	sort.Slice(due, func(i, j int) bool {
		iNew := due[i].State == nil
		jNew := due[j].State == nil
		if iNew != jNew {
			return iNew
		}
		if !iNew && due[i].Rank != due[j].Rank {
			return due[i].Rank < due[j].Rank
		}
		return due[i].Item.Ref() < due[j].Item.Ref()
	})

	if maxItems > 0 && len(due) > maxItems {
		due = due[:maxItems]
	}

	return due
}
