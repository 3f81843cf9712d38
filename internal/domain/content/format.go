package content

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSalary is shown when a profession carries no salary text.
const DefaultSalary = "Salário competitivo"

// UnknownPopulation is shown when a city carries no population figure.
const UnknownPopulation = "N/A"

var portuguese = message.NewPrinter(language.EuropeanPortuguese)

// FormatPopulation groups digits the way pt-PT readers expect.
func FormatPopulation(population *int64) string {
	if population == nil {
		return UnknownPopulation
	}
	return portuguese.Sprintf("%d", *population)
}

// Salary returns the salary text or the default wording.
func Salary(text string) string {
	if strings.TrimSpace(text) == "" {
		return DefaultSalary
	}
	return strings.TrimSpace(text)
}

// JoinSkills renders a skill list as a comma separated sentence fragment.
func JoinSkills(skills []string) string {
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, ", ")
}
