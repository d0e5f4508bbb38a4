package exercise

import (
	"math/rand"

	"github.com/parla-app/parla-api/internal/domain"
)

// shuffleItems applies a Fisher-Yates shuffle, giving every permutation
// equal probability. The rng is injected so selection stays deterministic
// under test.
func shuffleItems(rng *rand.Rand, items []domain.Item) {
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// dedupeEligible filters a pool down to items that can serve as distractors
// for target: the target itself is excluded, as is any ref already seen.
func dedupeEligible(pool []domain.Item, target domain.Item, seen map[domain.ItemRef]bool) []domain.Item {
	eligible := make([]domain.Item, 0, len(pool))
	for _, it := range pool {
		ref := it.Ref()
		if ref == target.Ref() || seen[ref] {
			continue
		}
		seen[ref] = true
		eligible = append(eligible, it)
	}
	return eligible
}

// PickDistractors selects up to count plausible wrong answers for target.
// The restricted pool (typically items sharing the target's topic) is drawn
// from first; the fallback pool pads the remainder. Both pools are shuffled
// before selection so repeated calls vary. When fewer than count eligible
// items exist the result is simply shorter; entries are never fabricated or
// duplicated, and the target never appears among them.
func PickDistractors(
	rng *rand.Rand,
	target domain.Item,
	restricted []domain.Item,
	fallback []domain.Item,
	count int,
) []domain.Item {
	if count <= 0 {
		return nil
	}

	seen := make(map[domain.ItemRef]bool, len(restricted)+len(fallback))
	primary := dedupeEligible(restricted, target, seen)
	padding := dedupeEligible(fallback, target, seen)

	shuffleItems(rng, primary)
	shuffleItems(rng, padding)

	picked := make([]domain.Item, 0, count)
	for _, it := range primary {
		if len(picked) == count {
			break
		}
		picked = append(picked, it)
	}
	for _, it := range padding {
		if len(picked) == count {
			break
		}
		picked = append(picked, it)
	}

	return picked
}

// BuildOptions combines the target with its distractors and shuffles the
// result, so the correct answer's position is uniformly random.
func BuildOptions(rng *rand.Rand, target domain.Item, distractors []domain.Item) []domain.Item {
	options := make([]domain.Item, 0, len(distractors)+1)
	options = append(options, target)
	options = append(options, distractors...)
	shuffleItems(rng, options)
	return options
}
