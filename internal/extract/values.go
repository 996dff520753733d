package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/okkonen/kinship/internal/dom"
	"github.com/okkonen/kinship/internal/model"
	"github.com/okkonen/kinship/internal/parse"
)

var (
	datePlaceRe     = regexp.MustCompile(`(?i)^(.*?)\s+(?:in|at)\s+(.+)$`)
	residenceYearRe = regexp.MustCompile(`\b(\d{4})\b`)
)

// splitDatePlace separates "3 Mar 1902 in Boston" into the date phrase and
// the place. Phrases without an in/at separator are all date.
func splitDatePlace(value string) (datePart, place string) {
	if m := datePlaceRe.FindStringSubmatch(value); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return strings.TrimSpace(value), ""
}

// parseEventDate parses a life-event value into a date fragment with an
// optional place
func parseEventDate(value string) model.DateFragment {
	datePart, place := splitDatePlace(value)
	frag := parse.ParseDateFragment(datePart)
	frag.Raw = strings.TrimSpace(value)
	frag.Place = place
	return frag
}

// splitList breaks a multi-valued label value into entries. Semicolons are
// the primary delimiter; commas are only used when no semicolon appears.
func splitList(value string) []string {
	sep := ";"
	if !strings.Contains(value, ";") {
		sep = ","
	}
	var out []string
	for _, part := range strings.Split(value, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// nextElementSibling returns the next element node among the parent's children
func nextElementSibling(n *dom.Node) *dom.Node {
	if n.Parent == nil {
		return nil
	}
	seen := false
	for _, c := range n.Parent.Children {
		if c == n {
			seen = true
			continue
		}
		if seen && c.Type == dom.ElementNode {
			return c
		}
	}
	return nil
}

// parseResidence reads one residence entry: an optional 4-digit year, the
// rest is the place
func parseResidence(entry string) model.Residence {
	res := model.Residence{Raw: strings.TrimSpace(entry)}
	if m := residenceYearRe.FindStringSubmatch(entry); m != nil {
		res.Year, _ = strconv.Atoi(m[1])
	}
	place := residenceYearRe.ReplaceAllString(entry, " ")
	res.Place = strings.Trim(strings.Join(strings.Fields(place), " "), " ,.;:-")
	return res
}
