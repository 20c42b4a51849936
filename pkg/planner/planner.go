// Package planner decides how a source of N frames is cut into clips.
//
// Three interchangeable strategies share one contract: given the total frame
// count, return the ordered list of target lengths, one per clip in source order.
// Clip i spans [sum(plan[:i]), min(sum(plan[:i+1]), total)) before padding.
package planner

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/user/flowclip/pkg/pipeline"
)

var (
	// ErrInvalidLength is returned for non-positive clip lengths or negative totals.
	ErrInvalidLength = errors.New("planner: invalid clip length")

	// ErrNoCandidates is returned when a dynamic policy has no candidate lengths.
	ErrNoCandidates = errors.New("planner: no candidate lengths")

	// ErrUnknownPolicy is returned for an unrecognised policy name.
	ErrUnknownPolicy = errors.New("planner: unknown policy")
)

// Policy names a planning strategy.
type Policy string

const (
	// PolicyFixed cuts every clip to one fixed length and pads the last one.
	PolicyFixed Policy = "fixed"
	// PolicyUniform picks one length from the candidates for the whole source.
	PolicyUniform Policy = "uniform"
	// PolicyGreedy partitions the source with the largest fitting candidates.
	PolicyGreedy Policy = "greedy"
)

// DefaultCandidates is the descending candidate set used by the dynamic policies.
var DefaultCandidates = []int{33, 29, 25, 21, 17, 13, 9, 5}

// Plan is an ordered list of clip target lengths.
type Plan []int

// Sum returns the total number of frames the plan will emit.
func (p Plan) Sum() int {
	n := 0
	for _, l := range p {
		n += l
	}
	return n
}

// Strategy computes a Plan for a frame count.
type Strategy interface {
	// Name returns the policy implemented by the strategy.
	Name() Policy

	// Plan returns the clip lengths for total frames.
	// total == 0 fails with pipeline.ErrEmptySource.
	Plan(total int) (Plan, error)
}

// New creates the strategy for policy. fixed is used by PolicyFixed only,
// candidates by the dynamic policies only.
func New(policy Policy, fixed int, candidates []int) (Strategy, error) {
	switch policy {
	case PolicyFixed:
		return NewFixed(fixed)
	case PolicyUniform:
		return NewUniform(candidates)
	case PolicyGreedy:
		return NewGreedy(candidates)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyFixed, PolicyUniform, PolicyGreedy:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// ParseLengths parses a comma separated list such as "33,29,25".
func ParseLengths(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLength, part)
		}
		out = append(out, n)
	}
	return out, nil
}

// CandidateRange returns max, max-step, ... down to no lower than min.
// CandidateRange(33, 5, 4) yields DefaultCandidates.
func CandidateRange(max, min, step int) []int {
	if step <= 0 || min <= 0 || max < min {
		return nil
	}
	var out []int
	for l := max; l >= min; l -= step {
		out = append(out, l)
	}
	return out
}

// NormalizeCandidates sorts lengths descending and drops duplicates.
func NormalizeCandidates(lengths []int) ([]int, error) {
	if len(lengths) == 0 {
		return nil, ErrNoCandidates
	}
	out := slices.Clone(lengths)
	for _, l := range out {
		if l <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidLength, l)
		}
	}
	slices.SortFunc(out, func(a, b int) int { return b - a })
	return slices.Compact(out), nil
}

// Span is the pre-padding frame range of one planned clip.
type Span struct {
	Start  int
	End    int
	Target int
}

// Spans turns a plan into source ranges, clamping the last end to total.
func Spans(plan Plan, total int) []Span {
	spans := make([]Span, 0, len(plan))
	start := 0
	for _, l := range plan {
		end := start + l
		if end > total {
			end = total
		}
		spans = append(spans, Span{Start: start, End: end, Target: l})
		start += l
	}
	return spans
}

func checkTotal(total int) error {
	if total == 0 {
		return pipeline.ErrEmptySource
	}
	if total < 0 {
		return fmt.Errorf("%w: total %d", ErrInvalidLength, total)
	}
	return nil
}

// chunk returns ceil(total/length) copies of length.
func chunk(total, length int) Plan {
	n := (total + length - 1) / length
	plan := make(Plan, n)
	for i := range plan {
		plan[i] = length
	}
	return plan
}
