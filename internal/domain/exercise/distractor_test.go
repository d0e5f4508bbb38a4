package exercise

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
)

func personalItem(target string) *domain.PersonalItem {
	return &domain.PersonalItem{
		ItemCore: domain.ItemCore{
			ID:          uuid.New(),
			Target:      target,
			Translation: target + " (en)",
		},
		OwnerID: uuid.New(),
	}
}

func itemPool(n int, prefix string) []domain.Item {
	pool := make([]domain.Item, n)
	for i := range pool {
		pool[i] = personalItem(prefix + string(rune('a'+i)))
	}
	return pool
}

func TestPickDistractors(t *testing.T) {
	t.Parallel() // Enable parallel execution
	rng := rand.New(rand.NewSource(42))

	t.Run("target never appears among its own distractors", func(t *testing.T) {
		target := personalItem("target")
		pool := append(itemPool(5, "r"), target)

		for i := 0; i < 50; i++ {
			picked := PickDistractors(rng, target, pool, nil, 3)
			for _, it := range picked {
				if it.Ref() == target.Ref() {
					t.Fatal("Expected target to be excluded from distractors")
				}
			}
		}
	})

	t.Run("no duplicate refs in the result", func(t *testing.T) {
		target := personalItem("target")
		shared := personalItem("shared")
		restricted := []domain.Item{shared, personalItem("r1")}
		fallback := []domain.Item{shared, personalItem("f1"), personalItem("f2")}

		picked := PickDistractors(rng, target, restricted, fallback, 4)

		seen := make(map[domain.ItemRef]bool)
		for _, it := range picked {
			if seen[it.Ref()] {
				t.Fatalf("Duplicate distractor ref %s", it.Ref())
			}
			seen[it.Ref()] = true
		}
	})

	t.Run("restricted pool is exhausted before the fallback", func(t *testing.T) {
		target := personalItem("target")
		restricted := itemPool(2, "r")
		fallback := itemPool(5, "f")

		picked := PickDistractors(rng, target, restricted, fallback, 4)

		if len(picked) != 4 {
			t.Fatalf("Expected 4 distractors, got %d", len(picked))
		}
		restrictedRefs := map[domain.ItemRef]bool{
			restricted[0].Ref(): true,
			restricted[1].Ref(): true,
		}
		found := 0
		for _, it := range picked {
			if restrictedRefs[it.Ref()] {
				found++
			}
		}
		if found != 2 {
			t.Errorf("Expected both restricted items to be used, found %d", found)
		}
	})

	t.Run("too few eligible items degrades the count", func(t *testing.T) {
		target := personalItem("target")
		restricted := itemPool(1, "r")

		picked := PickDistractors(rng, target, restricted, nil, 3)

		if len(picked) != 1 {
			t.Errorf("Expected 1 distractor, got %d", len(picked))
		}
	})

	t.Run("empty pools yield an empty result", func(t *testing.T) {
		target := personalItem("target")

		picked := PickDistractors(rng, target, nil, nil, 3)

		if len(picked) != 0 {
			t.Errorf("Expected no distractors, got %d", len(picked))
		}
	})

	t.Run("zero count yields nothing", func(t *testing.T) {
		target := personalItem("target")

		if picked := PickDistractors(rng, target, itemPool(3, "r"), nil, 0); picked != nil {
			t.Errorf("Expected nil, got %v", picked)
		}
	})
}

func TestBuildOptions(t *testing.T) {
	t.Parallel() // Enable parallel execution
	rng := rand.New(rand.NewSource(7))

	target := personalItem("target")
	distractors := itemPool(3, "d")

	options := BuildOptions(rng, target, distractors)

	if len(options) != 4 {
		t.Fatalf("Expected 4 options, got %d", len(options))
	}

	count := 0
	for _, it := range options {
		if it.Ref() == target.Ref() {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected the target to appear exactly once, got %d", count)
	}
}

func TestBuildOptionsPositionUniform(t *testing.T) {
	t.Parallel() // Enable parallel execution
	rng := rand.New(rand.NewSource(1))

	target := personalItem("target")
	distractors := itemPool(3, "d")

	// Over many shuffles the correct answer should land in every position
	// at roughly equal frequency. With 4000 trials over 4 positions the
	// expected count is 1000; a band of ±150 keeps the test stable for any
	// fixed seed while still catching positional bias.
	const trials = 4000
	positions := make([]int, 4)
	for i := 0; i < trials; i++ {
		options := BuildOptions(rng, target, distractors)
		for pos, it := range options {
			if it.Ref() == target.Ref() {
				positions[pos]++
			}
		}
	}

	for pos, count := range positions {
		if count < 850 || count > 1150 {
			t.Errorf("Position %d: expected ~1000 occurrences, got %d", pos, count)
		}
	}
}
