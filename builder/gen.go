// SPDX-License-Identifier: MIT
// Package: fourd/builder
//
// gen.go - textual generator specs for command-line fixtures.
//
// Grammar (case-insensitive kind, ':'-separated arguments):
//
//	complete:N   cycle:N   path:N   star:N   wheel:N
//	grid:RxC     bipartite:AxB
//	sparse:N:P   regular:N:D
//	platonic:NAME[:center]

package builder

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseGenerator turns a generator spec such as "grid:4x6" into a
// Constructor. Parameter ranges are checked later by the constructor itself;
// ParseGenerator only rejects malformed text with ErrOptionViolation.
func ParseGenerator(spec string) (Constructor, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	kind := strings.ToLower(parts[0])
	args := parts[1:]

	bad := func(why string) (Constructor, error) {
		return nil, fmt.Errorf("ParseGenerator(%q): %s: %w", spec, why, ErrOptionViolation)
	}

	switch kind {
	case "complete", "cycle", "path", "star", "wheel":
		if len(args) != 1 {
			return bad("want one size argument")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return bad("size is not an integer")
		}
		return map[string]func(int) Constructor{
			"complete": Complete,
			"cycle":    Cycle,
			"path":     Path,
			"star":     Star,
			"wheel":    Wheel,
		}[kind](n), nil

	case "grid", "bipartite":
		if len(args) != 1 {
			return bad("want AxB")
		}
		a, b, ok := parseDims(args[0])
		if !ok {
			return bad("want AxB")
		}
		if kind == "grid" {
			return Grid(a, b), nil
		}
		return CompleteBipartite(a, b), nil

	case "sparse":
		if len(args) != 2 {
			return bad("want N:P")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return bad("size is not an integer")
		}
		p, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return bad("probability is not a number")
		}
		return RandomSparse(n, p), nil

	case "regular":
		if len(args) != 2 {
			return bad("want N:D")
		}
		n, errN := strconv.Atoi(args[0])
		d, errD := strconv.Atoi(args[1])
		if errN != nil || errD != nil {
			return bad("size and degree must be integers")
		}
		return RandomRegular(n, d), nil

	case "platonic":
		if len(args) < 1 || len(args) > 2 {
			return bad("want NAME[:center]")
		}
		name, err := ParsePlatonic(args[0])
		if err != nil {
			return nil, err
		}
		withCenter := false
		if len(args) == 2 {
			if !strings.EqualFold(args[1], "center") {
				return bad("second argument must be \"center\"")
			}
			withCenter = true
		}
		return PlatonicSolid(name, withCenter), nil
	}

	return bad("unknown kind")
}

// parseDims splits "4x6" into (4, 6).
func parseDims(s string) (int, int, bool) {
	lhs, rhs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, false
	}
	a, errA := strconv.Atoi(lhs)
	b, errB := strconv.Atoi(rhs)

	return a, b, errA == nil && errB == nil
}
