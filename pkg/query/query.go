// Package query turns a raw launcher query string into the named
// arguments the command handlers consume. Tokenization never fails:
// unrecognized tokens are simply ignored.
package query

import (
	"regexp"
	"strconv"
	"strings"
)

// Arguments holds everything extracted from one query. Built fresh per
// query and discarded after dispatch.
type Arguments struct {
	Description string
	Project     string // raw @ value when it was not numeric
	ProjectID   int    // numeric @ value, 0 when absent
	Tags        []string
	Start       string
	Stop        string
	Duration    string
	Refresh     bool
}

var descPattern = regexp.MustCompile(`"([^"]+)"`)

// Parse splits a raw query into whitespace tokens and extracts the
// sigil-prefixed arguments. A double-quoted description is lifted out
// first so sigils inside it are not reinterpreted. The returned tokens
// are the raw whitespace split; the first one selects the command.
func Parse(raw string) ([]string, Arguments) {
	var args Arguments

	scan := raw
	if m := descPattern.FindStringSubmatch(raw); m != nil {
		args.Description = m[1]
		scan = strings.Replace(raw, m[0], "", 1)
	}

	tokens := strings.Fields(raw)
	scanTokens := strings.Fields(scan)
	if len(tokens) == 0 {
		return tokens, args
	}

	// The first raw token fills the command slot and never carries a
	// sigil. Skip it in the scan unless the quoted description already
	// swallowed it, as in a query led by the description itself.
	if len(scanTokens) > 0 && scanTokens[0] == tokens[0] {
		scanTokens = scanTokens[1:]
	}

	for i, tok := range scanTokens {
		next := ""
		if i+1 < len(scanTokens) {
			next = scanTokens[i+1]
		}

		switch {
		case strings.HasPrefix(tok, "#"):
			args.Tags = splitList(tok[1:])
		case strings.HasPrefix(tok, "@"):
			value := tok[1:]
			if id, err := strconv.Atoi(value); err == nil {
				args.ProjectID = id
			} else {
				args.Project = value
			}
		case len(tok) > 1 && strings.HasPrefix(tok, ">") && strings.HasSuffix(tok, "<"):
			args.Duration = tok[1 : len(tok)-1]
		case strings.HasPrefix(tok, ">"):
			args.Start = withMeridiem(tok[1:], next)
		case strings.HasPrefix(tok, "<"):
			args.Stop = withMeridiem(tok[1:], next)
		case tok == "refresh":
			args.Refresh = true
		}
	}

	return tokens, args
}

// withMeridiem appends a bare trailing AM/PM token to a time value.
func withMeridiem(value, next string) string {
	if next == "AM" || next == "PM" {
		return value + " " + next
	}
	return value
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
