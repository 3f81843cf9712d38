package content

import "testing"

func TestRenderSubstitutesKnownTokens(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		template  string
		variables map[string]string
		expected  string
	}{
		{
			name:      "single token",
			template:  "Carta {profession}",
			variables: map[string]string{"profession": "Enfermeiro"},
			expected:  "Carta Enfermeiro",
		},
		{
			name:      "repeated token",
			template:  "{city} - {city}",
			variables: map[string]string{"city": "Porto"},
			expected:  "Porto - Porto",
		},
		{
			name:      "unknown token kept",
			template:  "{x} {y}",
			variables: map[string]string{"x": "1"},
			expected:  "1 {y}",
		},
		{
			name:      "empty variables",
			template:  "{profession} em {city}",
			variables: nil,
			expected:  "{profession} em {city}",
		},
		{
			name:      "substituted value not rescanned",
			template:  "{a}",
			variables: map[string]string{"a": "{b}", "b": "nope"},
			expected:  "{b}",
		},
		{
			name:      "empty template",
			template:  "",
			variables: map[string]string{"a": "1"},
			expected:  "",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Render(tc.template, tc.variables); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	variables := map[string]string{"profession": "Pedreiro", "city": "Braga", "salary": "€900"}
	template := "{profession} em {city} ganha {salary}"

	first := Render(template, variables)
	for i := 0; i < 20; i++ {
		if got := Render(template, variables); got != first {
			t.Fatalf("expected stable output %q, got %q", first, got)
		}
	}
}
