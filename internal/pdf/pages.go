package pdf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"pdfcompress/internal/domain"
)

// Skip reasons reported by PlanPages.
const (
	ReasonFirstPage = "first page"
	ReasonLastPage  = "last page"
	ReasonIgnored   = "ignore list"
)

// MaxPageNumber is the largest page number a page specification may name.
const MaxPageNumber = 100000

// ParsePageSpec parses a page specification such as "2", "1,3" or "1,3-5,7"
// into sorted, merged page ranges. Ranges are never expanded, so the result
// is bounded by the length of spec. An empty spec yields no ranges.
func ParsePageSpec(spec string) ([]domain.PageRange, error) {
	spec = strings.Join(strings.Fields(spec), "")
	if spec == "" {
		return nil, nil
	}

	var ranges []domain.PageRange
	for _, part := range strings.Split(spec, ",") {
		if part == "" {
			return nil, fmt.Errorf("%w: empty entry in %q", domain.ErrInvalidPageSelector, spec)
		}
		start, end, isRange := strings.Cut(part, "-")
		from, err := parsePageNumber(start)
		if err != nil {
			return nil, err
		}
		to := from
		if isRange {
			if to, err = parsePageNumber(end); err != nil {
				return nil, err
			}
			if from > to {
				return nil, fmt.Errorf("%w: range %d-%d is reversed", domain.ErrInvalidPageSelector, from, to)
			}
		}
		ranges = append(ranges, domain.PageRange{From: from, To: to})
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].From < ranges[j].From })
	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.From <= last.To+1 {
			if r.To > last.To {
				last.To = r.To
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged, nil
}

func parsePageNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a page number", domain.ErrInvalidPageSelector, s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: page numbers start at 1, got %d", domain.ErrInvalidPageSelector, n)
	}
	if n > MaxPageNumber {
		return 0, fmt.Errorf("%w: page %d exceeds %d", domain.ErrInvalidPageSelector, n, MaxPageNumber)
	}
	return n, nil
}

// PlanPages decides for each of total pages whether sel excludes it. The
// first matching reason wins: first page, last page, then the ignore list.
func PlanPages(total int, sel domain.PageSelector) []domain.PageDecision {
	decisions := make([]domain.PageDecision, 0, total)
	for page := 1; page <= total; page++ {
		d := domain.PageDecision{Page: page}
		switch {
		case sel.SkipFirst && page == 1:
			d.Skip, d.Reason = true, ReasonFirstPage
		case sel.SkipLast && page == total:
			d.Skip, d.Reason = true, ReasonLastPage
		case sel.Ignores(page):
			d.Skip, d.Reason = true, ReasonIgnored
		}
		decisions = append(decisions, d)
	}
	return decisions
}
