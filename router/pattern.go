package router

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Route registration with a pattern that is neither a string nor a
// *regexp.Regexp, or with a nil handler.
var ErrInvalidPattern = errors.New("pattern must be a string or *regexp.Regexp and handler must not be nil")

type patternKind int

const (
	exactPattern patternKind = iota
	globPattern
	regexPattern
)

// matcher is the compiled form of a route pattern. Exact strings compare
// directly, glob strings ("role_*") compile each * into a greedy (.+)
// group anchored to the full input, custom regexps are used as-is.
type matcher struct {
	kind      patternKind
	literal   string
	re        *regexp.Regexp
	wildcards int
}

func compile(pattern interface{}) (*matcher, error) {
	switch p := pattern.(type) {
	case string:
		if !strings.Contains(p, "*") {
			return &matcher{kind: exactPattern, literal: p}, nil
		}
		parts := strings.Split(p, "*")
		var sb strings.Builder
		sb.WriteString("^")
		for i, part := range parts {
			if i > 0 {
				sb.WriteString("(.+)")
			}
			sb.WriteString(regexp.QuoteMeta(part))
		}
		sb.WriteString("$")
		re, err := regexp.Compile(sb.String())
		if err != nil {
			return nil, fmt.Errorf("can't compile wildcard pattern %q: %w", p, err)
		}
		return &matcher{kind: globPattern, re: re, wildcards: len(parts) - 1}, nil
	case *regexp.Regexp:
		if p == nil {
			return nil, ErrInvalidPattern
		}
		return &matcher{kind: regexPattern, re: p}, nil
	default:
		return nil, ErrInvalidPattern
	}
}

// match tests the customID against the compiled pattern. On a hit it
// returns the extracted parameters: named capture groups for regexps,
// synthesized "wildcard"/"wildcard1..N" keys for glob strings.
func (m *matcher) match(input string) (map[string]string, bool) {
	switch m.kind {
	case exactPattern:
		if input != m.literal {
			return nil, false
		}
		return map[string]string{}, true
	case globPattern:
		sub := m.re.FindStringSubmatch(input)
		if sub == nil {
			return nil, false
		}
		params := make(map[string]string, m.wildcards+1)
		for i := 1; i < len(sub); i++ {
			params[fmt.Sprintf("wildcard%d", i)] = sub[i]
		}
		params["wildcard"] = sub[1]
		return params, true
	default:
		sub := m.re.FindStringSubmatch(input)
		if sub == nil {
			return nil, false
		}
		params := map[string]string{}
		for i, name := range m.re.SubexpNames() {
			if i == 0 || i >= len(sub) || name == "" {
				continue
			}
			params[name] = sub[i]
		}
		return params, true
	}
}
