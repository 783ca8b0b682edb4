package registry

import (
	"testing"

	"pgregory.net/rapid"
)

// drawEntities builds a registry population from a small key alphabet so
// that equal entities and multiple matches are common.
func drawEntities(t *rapid.T) []*stub {
	n := rapid.IntRange(0, 12).Draw(t, "n")
	entities := make([]*stub, n)
	for i := range entities {
		key := rapid.SampledFrom([]string{"a", "b", "c", "d"}).Draw(t, "key")
		matches := rapid.Bool().Draw(t, "matches")
		if matches {
			entities[i] = always(key)
		} else {
			entities[i] = never(key)
		}
	}
	return entities
}

func TestProperty_RemoveLeavesNoEqualEntities(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		entities := drawEntities(t)
		reg := newRegistry(entities...)
		target := rapid.SampledFrom([]string{"a", "b", "c", "d", "z"}).Draw(t, "target")

		reg.Remove(always(target))

		var want []*stub
		for _, e := range entities {
			if e.key != target {
				want = append(want, e)
			}
		}
		got := reg.Registered()
		if len(got) != len(want) {
			t.Fatalf("len = %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("index %d: order of surviving entities changed", i)
			}
		}
	})
}

func TestProperty_ReplaceKeepsPositions(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		entities := drawEntities(t)
		reg := newRegistry(entities...)
		target := rapid.SampledFrom([]string{"a", "b", "c", "d"}).Draw(t, "target")
		replacement := tagged(never(target), "replacement")

		err := reg.Replace(replacement)

		firstIdx := -1
		for i, e := range entities {
			if e.key == target {
				firstIdx = i
				break
			}
		}
		if firstIdx < 0 {
			if err == nil {
				t.Fatal("expected NotRegistered error")
			}
			return
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := reg.Registered()
		if len(got) != len(entities) {
			t.Fatalf("len = %d, want %d", len(got), len(entities))
		}
		for i := range entities {
			want := entities[i]
			if i == firstIdx {
				want = replacement
			}
			if got[i] != want {
				t.Fatalf("index %d changed unexpectedly", i)
			}
		}
	})
}

func TestProperty_FindConsumesOnlyOnAmbiguity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		entities := drawEntities(t)
		reg := newRegistry(entities...)

		var matching []int
		for i, e := range entities {
			if e.match("") {
				matching = append(matching, i)
			}
		}

		match, found, reasons := reg.Find("")
		got := reg.Registered()

		switch len(matching) {
		case 0:
			if found {
				t.Fatal("found a match in a registry without matching entities")
			}
			if len(reasons) != len(entities) {
				t.Fatalf("reasons = %d, want %d", len(reasons), len(entities))
			}
			if len(got) != len(entities) {
				t.Fatal("registry changed on no-match")
			}
		case 1:
			if !found || match != entities[matching[0]] {
				t.Fatal("single match not returned")
			}
			if len(reasons) != len(entities)-1 {
				t.Fatalf("reasons = %d, want %d", len(reasons), len(entities)-1)
			}
			if len(got) != len(entities) {
				t.Fatal("single match must not be consumed")
			}
		default:
			first, second := matching[0], matching[1]
			if !found || match != entities[first] {
				t.Fatal("earliest match not returned")
			}
			// Non-matching entities scanned before the second match.
			if want := second - 1; len(reasons) != want {
				t.Fatalf("reasons = %d, want %d", len(reasons), want)
			}
			if len(got) != len(entities)-1 {
				t.Fatalf("len = %d, want %d", len(got), len(entities)-1)
			}
			for i, e := range got {
				src := i
				if i >= first {
					src = i + 1
				}
				if e != entities[src] {
					t.Fatalf("index %d: unexpected entity after consumption", i)
				}
			}
		}
	})
}
