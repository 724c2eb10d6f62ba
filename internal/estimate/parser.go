// Package estimate parses the free-text estimated-duration strings carried
// by plan tasks. Estimates are best-effort: the stored string is never
// rewritten, parsing only feeds display and totals.
package estimate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dyluth/drafter/pkg/workspace"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// Parse parses an estimated-duration string into a duration.
// Supports Go duration format ("1h30m", "45m") plus day and week suffixes
// ("3d", "2w", "1.5d") common in plan estimates.
//
// Returns an error for anything else; callers treat unparseable estimates as
// simply uncounted.
func Parse(spec string) (time.Duration, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, fmt.Errorf("empty duration specification")
	}

	if d, err := time.ParseDuration(spec); err == nil {
		return d, nil
	}

	// Day/week suffixes, not supported by time.ParseDuration
	for suffix, unit := range map[string]time.Duration{"d": day, "w": week} {
		if !strings.HasSuffix(spec, suffix) {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSuffix(spec, suffix), 64)
		if err != nil {
			break
		}
		return time.Duration(value * float64(unit)), nil
	}

	return 0, fmt.Errorf("invalid duration specification: %s (use forms like '90m', '1h30m', '3d', '2w')", spec)
}

// PlanTotal sums the parseable estimates across a whole plan.
// Returns the total and how many of the plan's tasks were counted.
func PlanTotal(plan []workspace.PlanPhase) (time.Duration, int) {
	var total time.Duration
	counted := 0

	for _, phase := range plan {
		for _, task := range phase.Tasks {
			d, err := Parse(task.EstimatedDuration)
			if err != nil {
				continue
			}
			total += d
			counted++
		}
	}

	return total, counted
}
