package content

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExcerptExtractsVisibleText(t *testing.T) {
	t.Parallel()

	fragment := "<h2>Carta para Enfermeiro</h2><script>var x = 1;</script><p>Uma   carta <strong>bem</strong> feita.</p>"
	got := Excerpt(fragment, 160)
	if got != "Carta para Enfermeiro Uma carta bem feita." {
		t.Fatalf("unexpected excerpt %q", got)
	}
}

func TestExcerptTruncatesAtWordBoundary(t *testing.T) {
	t.Parallel()

	fragment := "<p>Destacar-se no mercado de trabalho português requer uma carta de apresentação profissional</p>"
	got := Excerpt(fragment, 40)
	if utf8.RuneCountInString(got) > 40 {
		t.Fatalf("expected at most 40 runes, got %d (%q)", utf8.RuneCountInString(got), got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if strings.Contains(got, "portug...") {
		t.Fatalf("expected cut at a word boundary, got %q", got)
	}
}

func TestFormatPopulation(t *testing.T) {
	t.Parallel()

	if got := FormatPopulation(nil); got != UnknownPopulation {
		t.Fatalf("expected %q for missing population, got %q", UnknownPopulation, got)
	}

	population := int64(547733)
	got := FormatPopulation(&population)
	if got == "547733" {
		t.Fatalf("expected digit grouping, got %q", got)
	}
	if !strings.HasPrefix(got, "547") || !strings.HasSuffix(got, "733") {
		t.Fatalf("unexpected formatted population %q", got)
	}
}

func TestSalaryDefault(t *testing.T) {
	t.Parallel()

	if got := Salary("  "); got != DefaultSalary {
		t.Fatalf("expected default salary, got %q", got)
	}
	if got := Salary("€900 - €1.200"); got != "€900 - €1.200" {
		t.Fatalf("expected salary passthrough, got %q", got)
	}
	if got := JoinSkills([]string{"Comunicação", " ", "Empatia"}); got != "Comunicação, Empatia" {
		t.Fatalf("unexpected skills %q", got)
	}
}
