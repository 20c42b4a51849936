package planner

import (
	"errors"
	"slices"
	"testing"

	"github.com/user/flowclip/pkg/pipeline"
)

func TestFixed_Plan(t *testing.T) {
	tests := []struct {
		name   string
		length int
		total  int
		want   Plan
	}{
		{name: "exact multiple", length: 5, total: 10, want: Plan{5, 5}},
		{name: "remainder padded", length: 5, total: 12, want: Plan{5, 5, 5}},
		{name: "shorter than length", length: 5, total: 3, want: Plan{5}},
		{name: "single frame", length: 33, total: 1, want: Plan{33}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewFixed(tt.length)
			if err != nil {
				t.Fatalf("NewFixed failed: %v", err)
			}
			got, err := s.Plan(tt.total)
			if err != nil {
				t.Fatalf("Plan failed: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestUniform_Select(t *testing.T) {
	s, err := NewUniform(DefaultCandidates)
	if err != nil {
		t.Fatalf("NewUniform failed: %v", err)
	}

	tests := []struct {
		total int
		want  int
	}{
		{total: 100, want: 33},
		{total: 33, want: 33},
		{total: 32, want: 29},
		{total: 30, want: 29},
		{total: 5, want: 5},
		{total: 3, want: 5},
	}

	for _, tt := range tests {
		if got := s.Select(tt.total); got != tt.want {
			t.Errorf("Select(%d): expected %d, got %d", tt.total, tt.want, got)
		}
	}
}

func TestUniform_Plan(t *testing.T) {
	s, _ := NewUniform(DefaultCandidates)

	got, err := s.Plan(30)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if want := (Plan{29, 29}); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got, _ = s.Plan(3)
	if want := (Plan{5}); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGreedy_Plan(t *testing.T) {
	s, err := NewGreedy(DefaultCandidates)
	if err != nil {
		t.Fatalf("NewGreedy failed: %v", err)
	}

	tests := []struct {
		total int
		want  Plan
	}{
		{total: 55, want: Plan{33, 21, 5}},
		{total: 33, want: Plan{33}},
		{total: 66, want: Plan{33, 33}},
		{total: 38, want: Plan{33, 5}},
		{total: 3, want: Plan{5}},
		{total: 7, want: Plan{5, 5}},
	}

	for _, tt := range tests {
		got, err := s.Plan(tt.total)
		if err != nil {
			t.Fatalf("Plan(%d) failed: %v", tt.total, err)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Plan(%d): expected %v, got %v", tt.total, tt.want, got)
		}
	}
}

func TestStrategies_EmptySource(t *testing.T) {
	fixed, _ := NewFixed(5)
	uniform, _ := NewUniform(DefaultCandidates)
	greedy, _ := NewGreedy(DefaultCandidates)

	for _, s := range []Strategy{fixed, uniform, greedy} {
		if _, err := s.Plan(0); !errors.Is(err, pipeline.ErrEmptySource) {
			t.Errorf("%s: expected ErrEmptySource, got %v", s.Name(), err)
		}
		if _, err := s.Plan(-1); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("%s: expected ErrInvalidLength, got %v", s.Name(), err)
		}
	}
}

func TestNew(t *testing.T) {
	s, err := New(PolicyGreedy, 0, []int{5, 33, 9, 33})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.Name() != PolicyGreedy {
		t.Errorf("expected greedy, got %s", s.Name())
	}
	g := s.(*Greedy)
	if want := []int{33, 9, 5}; !slices.Equal(g.Candidates, want) {
		t.Errorf("expected normalized candidates %v, got %v", want, g.Candidates)
	}

	if _, err := New(PolicyFixed, 0, nil); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength for zero fixed length, got %v", err)
	}
	if _, err := New(PolicyUniform, 0, nil); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
	if _, err := New(PolicyGreedy, 0, []int{5, -1}); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength for negative candidate, got %v", err)
	}
	if _, err := New("random", 5, nil); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{in: "fixed", want: PolicyFixed},
		{in: " Greedy ", want: PolicyGreedy},
		{in: "UNIFORM", want: PolicyUniform},
		{in: "dynamic", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestParseLengths(t *testing.T) {
	got, err := ParseLengths("33, 29,,25")
	if err != nil {
		t.Fatalf("ParseLengths failed: %v", err)
	}
	if want := []int{33, 29, 25}; !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if _, err := ParseLengths("33,x"); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
}

func TestCandidateRange(t *testing.T) {
	if got := CandidateRange(33, 5, 4); !slices.Equal(got, DefaultCandidates) {
		t.Errorf("expected %v, got %v", DefaultCandidates, got)
	}
	if got := CandidateRange(5, 9, 4); got != nil {
		t.Errorf("expected nil for empty range, got %v", got)
	}
}

func TestSpans(t *testing.T) {
	got := Spans(Plan{5, 5, 5}, 12)
	want := []Span{
		{Start: 0, End: 5, Target: 5},
		{Start: 5, End: 10, Target: 5},
		{Start: 10, End: 12, Target: 5},
	}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got = Spans(Plan{33, 21, 5}, 55)
	if last := got[2]; last.Start != 54 || last.End != 55 {
		t.Errorf("expected last span [54,55), got [%d,%d)", last.Start, last.End)
	}
}
