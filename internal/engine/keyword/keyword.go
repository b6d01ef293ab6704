// Package keyword assigns an emergency category by keyword membership.
package keyword

import (
	"strings"

	"github.com/emberhq/calltriage/internal/model"
)

// keywordSet pairs a category with the substrings that select it.
type keywordSet struct {
	category model.Category
	words    []string
}

// sets is evaluated in order; the first match wins. A message mentioning
// both a fire and an injury routes to Fire because Fire is checked first.
var sets = []keywordSet{
	{model.Fire, []string{"fire", "burn", "smoke", "gas"}},
	{model.Crime, []string{"gun", "shot", "stab", "rob", "fight"}},
	{model.Medical, []string{"collapse", "unconscious", "injury", "bleeding", "ambulance"}},
}

// Classify maps text to a category. Matching is case-insensitive substring
// containment, not whole-word: "robbed" matches "rob". Total — unmatched
// text falls through to Other.
func Classify(text string) model.Category {
	text = strings.ToLower(text)
	for _, set := range sets {
		for _, word := range set.words {
			if strings.Contains(text, word) {
				return set.category
			}
		}
	}
	return model.Other
}
