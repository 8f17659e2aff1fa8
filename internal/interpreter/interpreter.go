// internal/interpreter/interpreter.go

// Package interpreter turns a free-text chat utterance into a structured
// (business type, location) pair, or flags that the user must clarify.
// Parsing is deterministic, makes no external calls, and never fails: an
// ambiguous query comes back as data, not as an error.
package interpreter

import (
	"regexp"
	"strings"
)

// ParsedQuery is the structured form of one user utterance. Empty fields
// mean the corresponding part could not be extracted.
type ParsedQuery struct {
	BusinessType       string `json:"businessType"`
	Location           string `json:"location"`
	NeedsClarification bool   `json:"needsClarification"`
}

// connectorPattern matches "<business> in|at|near <location>".
var connectorPattern = regexp.MustCompile(`(?i)^(.+?)\s+(in|at|near)\s+(.+)$`)

// Parse extracts a business type and location from text.
//
// The primary pattern splits on an "in/at/near" connector. When that fails,
// the query is scanned against the known-city table and everything before
// the matched city becomes the business type candidate. Both candidates are
// then cleaned: leading filler phrases and trailing prepositions are
// stripped from the business type, and the location is title-cased.
func Parse(text string) ParsedQuery {
	trimmed := strings.TrimSpace(text)
	lowered := strings.ToLower(trimmed)

	var businessType, location string

	if m := connectorPattern.FindStringSubmatch(trimmed); m != nil {
		businessType = m[1]
		location = m[3]
	} else {
		// Offsets into lowered are not valid in trimmed: case folding can
		// change byte length. Slice the same string the index came from.
		for _, city := range knownCities {
			idx := strings.Index(lowered, city)
			if idx < 0 {
				continue
			}
			location = city
			businessType = lowered[:idx]
			break
		}
	}

	businessType = cleanBusinessType(businessType)
	location = cleanLocation(location)

	return ParsedQuery{
		BusinessType:       businessType,
		Location:           location,
		NeedsClarification: businessType == "" || location == "",
	}
}

// cleanBusinessType strips leading filler phrases and trailing prepositions,
// case-insensitively, until the candidate is stable.
func cleanBusinessType(s string) string {
	s = strings.TrimSpace(s)

	for changed := true; changed; {
		changed = false
		lowered := strings.ToLower(s)
		for _, filler := range fillerPrefixes {
			if lowered == filler {
				return ""
			}
			if strings.HasPrefix(lowered, filler+" ") {
				s = strings.TrimSpace(s[len(filler)+1:])
				changed = true
				break
			}
		}
	}

	for changed := true; changed; {
		changed = false
		lowered := strings.ToLower(s)
		for _, prep := range trailingPrepositions {
			if lowered == prep {
				return ""
			}
			if strings.HasSuffix(lowered, " "+prep) {
				s = strings.TrimSpace(s[:len(s)-len(prep)-1])
				changed = true
				break
			}
		}
	}

	return strings.TrimSpace(s)
}

// cleanLocation drops a leading preposition and title-cases every
// whitespace-separated word.
func cleanLocation(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	lowered := strings.ToLower(s)
	for _, prep := range trailingPrepositions {
		if lowered == prep {
			return ""
		}
		if strings.HasPrefix(lowered, prep+" ") {
			s = strings.TrimSpace(s[len(prep)+1:])
			break
		}
	}

	return titleCase(s)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
