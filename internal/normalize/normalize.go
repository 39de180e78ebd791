package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

// Name folds a player name for case-insensitive lookups. Collapses inner
// whitespace so " Van  Barneveld " and "van barneveld" match.
func Name(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return cases.Fold().String(name)
}

// Display trims a name for storage without losing its casing.
func Display(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
