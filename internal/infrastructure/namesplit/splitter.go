// Package namesplit segments free-text display names from Piazza exports into
// personal and family name components.
package namesplit

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"modsoc/internal/domain/piazza"
)

var honorifics = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "miss": true, "mx": true,
	"dr": true, "prof": true, "professor": true, "sir": true, "rev": true,
}

var suffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true,
	"phd": true, "md": true, "esq": true,
}

// particles attach to the family name that follows them ("van Beethoven").
var particles = map[string]bool{
	"van": true, "von": true, "de": true, "da": true, "del": true,
	"der": true, "di": true, "la": true, "le": true, "du": true,
}

// Splitter implements piazza.NameSplitter.
type Splitter struct {
	policy *bluemonday.Policy
}

var _ piazza.NameSplitter = (*Splitter)(nil)

func New() *Splitter {
	return &Splitter{policy: bluemonday.StrictPolicy()}
}

// Split returns the first personal name, any further personal names as the middle
// name and the family name as the last name. Case is preserved. Both
// "First Middle Last" and "Last, First Middle" forms are accepted, and quoted or
// parenthesized nicknames are ignored.
func (s *Splitter) Split(raw string) piazza.SplitName {
	clean := html.UnescapeString(s.policy.Sanitize(raw))

	var family []string
	if idx := strings.Index(clean, ","); idx != -1 {
		head, tail := clean[:idx], clean[idx+1:]
		tailTokens := strings.Fields(tail)
		if len(tailTokens) > 0 && !allSuffixes(tailTokens) {
			family = trim(dropNicknames(strings.Fields(head)))
			clean = tail
		} else {
			clean = head
		}
	}

	tokens := trim(dropNicknames(strings.Fields(clean)))
	if family != nil {
		if len(tokens) == 0 {
			return piazza.SplitName{Last: strings.Join(family, " ")}
		}
		return piazza.SplitName{
			First:  tokens[0],
			Middle: strings.Join(tokens[1:], " "),
			Last:   strings.Join(family, " "),
		}
	}

	switch len(tokens) {
	case 0:
		return piazza.SplitName{}
	case 1:
		return piazza.SplitName{First: tokens[0]}
	}

	lastStart := len(tokens) - 1
	for lastStart > 1 && particles[strings.ToLower(tokens[lastStart-1])] {
		lastStart--
	}

	return piazza.SplitName{
		First:  tokens[0],
		Middle: strings.Join(tokens[1:lastStart], " "),
		Last:   strings.Join(tokens[lastStart:], " "),
	}
}

// trim drops leading honorifics and trailing suffixes unless nothing would remain.
func trim(tokens []string) []string {
	start, end := 0, len(tokens)
	for start < end && honorifics[normalize(tokens[start])] {
		start++
	}
	for end > start && suffixes[normalize(tokens[end-1])] {
		end--
	}
	if start == end {
		return tokens
	}
	return tokens[start:end]
}

// dropNicknames removes quoted or parenthesized spans such as `"Jack"` or
// "(Bill Jr)" unless nothing would remain.
func dropNicknames(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	var closer string
	for _, t := range tokens {
		if closer != "" {
			if strings.HasSuffix(t, closer) {
				closer = ""
			}
			continue
		}
		switch {
		case strings.HasPrefix(t, `"`):
			closer = `"`
		case strings.HasPrefix(t, "("):
			closer = ")"
		default:
			kept = append(kept, t)
			continue
		}
		if len(t) > 1 && strings.HasSuffix(t, closer) {
			closer = ""
		}
	}
	if len(kept) == 0 {
		return tokens
	}
	return kept
}

func allSuffixes(tokens []string) bool {
	for _, t := range tokens {
		if !suffixes[normalize(t)] {
			return false
		}
	}
	return true
}

func normalize(token string) string {
	return strings.ToLower(strings.Trim(token, ".,"))
}
