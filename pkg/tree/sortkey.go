package tree

import (
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
)

// CompareSortKeys orders dotted sort keys segment by segment, comparing
// numeric segments as numbers. A key sorts before every key it prefixes.
func CompareSortKeys(a, b string) int {
	if a == b {
		return 0
	}
	left := strings.Split(a, ".")
	right := strings.Split(b, ".")
	for i := 0; i < len(left) && i < len(right); i++ {
		if c := compareSegment(left[i], right[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(left) < len(right):
		return -1
	case len(left) > len(right):
		return 1
	}
	return 0
}

func compareSegment(a, b string) int {
	x, errX := strconv.Atoi(a)
	y, errY := strconv.Atoi(b)
	switch {
	case errX == nil && errY == nil:
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case errX == nil:
		return -1
	case errY == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// Sort returns a copy of records in tree order. Records with equal keys keep
// their emission order.
func Sort(records []flatten.Record) []flatten.Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b flatten.Record) int {
		return CompareSortKeys(a.Sort, b.Sort)
	})
	return out
}
