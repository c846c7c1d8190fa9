// Package placeholder implements the positional $1..$n substitution
// syntax used in request body templates.
package placeholder

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/nattoujam/tcurl/internal/errdef"
)

var tokenPattern = regexp.MustCompile(`\$(\d+)`)

// Extract returns the distinct placeholder indices found in body in
// ascending order. `$0` and zero-padded forms like `$01` are returned
// as parsed, so validation can reject them explicitly.
func Extract(body string) []int {
	matches := tokenPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(matches))
	var indices []int
	for _, match := range matches {
		idx, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// Arity returns the number of arguments a body requires: the highest
// placeholder index, or zero for a body without placeholders.
func Arity(body string) int {
	indices := Extract(body)
	if len(indices) == 0 {
		return 0
	}
	return indices[len(indices)-1]
}

// Substitute replaces each $k token with args[k-1]. Replacement is a
// single pass over the body: no recursion, no escaping for a literal
// $1. len(args) must equal Arity(body).
func Substitute(body string, args []string) (string, error) {
	want := Arity(body)
	if len(args) != want {
		return "", errdef.New(
			errdef.CodeArity,
			"expected %d argument(s), got %d",
			want,
			len(args),
		)
	}
	if want == 0 {
		return body, nil
	}
	return tokenPattern.ReplaceAllStringFunc(body, func(token string) string {
		idx, err := strconv.Atoi(strings.TrimPrefix(token, "$"))
		if err != nil || idx < 1 || idx > len(args) {
			return token
		}
		return args[idx-1]
	}), nil
}
