package parse

import (
	"regexp"
	"strings"
)

// ParsedName is the result of splitting a full-name phrase
type ParsedName struct {
	GivenNames []string
	Surname    string
	MaidenName string
	Aliases    []string
}

var (
	nicknameRe   = regexp.MustCompile(`["\x{201C}]([^"\x{201D}]+)["\x{201D}]`)
	parentheseRe = regexp.MustCompile(`\(([^)]*)\)`)
	neeContentRe = regexp.MustCompile(`(?i)^n[ée]e\.?[:\s]+(.+)$`)
	neeInlineRe  = regexp.MustCompile(`(?i)\bn[ée]e\.?\s+(.+)$`)
	suffixRe     = regexp.MustCompile(`(?i)[,\s]+(jr|sr|ii|iii|iv)\.?\s*$`)
)

// ParseName splits a full-name phrase into given names, surname, maiden
// name and aliases. Quoted nicknames and parentheticals are consumed from
// a working copy before the remaining words are split.
func ParseName(full string) ParsedName {
	var parsed ParsedName
	work := strings.TrimSpace(full)
	if work == "" {
		return parsed
	}

	// Quoted nicknames: John "Jack" Smith
	work = nicknameRe.ReplaceAllStringFunc(work, func(m string) string {
		inner := strings.Trim(m, `"`+"“”")
		if inner = strings.TrimSpace(inner); inner != "" {
			parsed.Aliases = append(parsed.Aliases, inner)
		}
		return " "
	})

	// Parentheticals: "(née Jones)" is a maiden name, anything else an alias
	work = parentheseRe.ReplaceAllStringFunc(work, func(m string) string {
		inner := strings.TrimSpace(strings.Trim(m, "()"))
		if inner == "" {
			return " "
		}
		if nm := neeContentRe.FindStringSubmatch(inner); nm != nil {
			if parsed.MaidenName == "" {
				parsed.MaidenName = strings.TrimSpace(nm[1])
			}
		} else {
			parsed.Aliases = append(parsed.Aliases, inner)
		}
		return " "
	})

	// Unparenthesized maiden name: "Mary Smith née Jones"
	if nm := neeInlineRe.FindStringSubmatch(work); nm != nil {
		if parsed.MaidenName == "" {
			parsed.MaidenName = strings.TrimSpace(strings.Trim(nm[1], " .,"))
		}
		work = neeInlineRe.ReplaceAllString(work, " ")
	}

	// Generational suffixes can stack ("John Smith Jr., III")
	for {
		stripped := suffixRe.ReplaceAllString(work, "")
		if stripped == work {
			break
		}
		work = stripped
	}

	tokens := strings.Fields(strings.ReplaceAll(work, ",", " "))
	switch len(tokens) {
	case 0:
	case 1:
		parsed.GivenNames = tokens
	default:
		parsed.GivenNames = tokens[:len(tokens)-1]
		parsed.Surname = tokens[len(tokens)-1]
	}
	return parsed
}
