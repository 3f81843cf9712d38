package content

import (
	"sort"
	"strings"
	"testing"
)

func TestVariationPickIsStable(t *testing.T) {
	t.Parallel()

	v := Variation{Seed: 7}
	first := v.Pick(Closings, "carta-apresentacao-enfermeiro")
	for i := 0; i < 10; i++ {
		if got := v.Pick(Closings, "carta-apresentacao-enfermeiro"); got != first {
			t.Fatalf("expected %q, got %q", first, got)
		}
	}

	if got := v.Pick(nil, "anything"); got != "" {
		t.Fatalf("expected empty pick from empty pool, got %q", got)
	}
}

func TestVariationPickSpreadsAcrossKeys(t *testing.T) {
	t.Parallel()

	v := Variation{Seed: 1}
	seen := make(map[string]struct{})
	for _, key := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		seen[v.Pick(Connectors, key)] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("expected different keys to select different phrases, got %d distinct", len(seen))
	}
}

func TestVariationShuffleIsPermutation(t *testing.T) {
	t.Parallel()

	v := Variation{Seed: 3}
	shuffled := v.Shuffle(Tips, "guia-dicas")
	if len(shuffled) != len(Tips) {
		t.Fatalf("expected %d items, got %d", len(Tips), len(shuffled))
	}

	again := v.Shuffle(Tips, "guia-dicas")
	if strings.Join(shuffled, "|") != strings.Join(again, "|") {
		t.Fatalf("expected identical shuffles for identical seed and key")
	}

	sortedShuffled := append([]string(nil), shuffled...)
	sortedOriginal := append([]string(nil), Tips...)
	sort.Strings(sortedShuffled)
	sort.Strings(sortedOriginal)
	if strings.Join(sortedShuffled, "|") != strings.Join(sortedOriginal, "|") {
		t.Fatalf("expected shuffle to keep the same elements")
	}

	if Tips[0] != "Personalize sempre a carta para cada candidatura" {
		t.Fatalf("expected the pool to be left untouched")
	}
}

func TestVariationPhrasesFillsEveryVariable(t *testing.T) {
	t.Parallel()

	phrases := Variation{Seed: 1}.Phrases("carta-apresentacao-enfermeiro", "Enfermeiro")
	for _, key := range []string{"intro", "connector", "closing", "benefits", "tips"} {
		if strings.TrimSpace(phrases[key]) == "" {
			t.Fatalf("expected %s to be filled", key)
		}
	}
	if strings.Contains(phrases["intro"], "{profession}") {
		t.Fatalf("expected intro placeholder to be resolved, got %q", phrases["intro"])
	}
	if strings.Count(phrases["tips"], "<li>") != 4 {
		t.Fatalf("expected four tips, got %q", phrases["tips"])
	}
}
