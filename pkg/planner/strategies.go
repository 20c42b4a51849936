package planner

import "fmt"

// Fixed cuts the source into clips of one length. The final clip keeps the
// full length and is filled by backward padding.
type Fixed struct {
	Length int
}

// NewFixed creates a Fixed strategy.
func NewFixed(length int) (*Fixed, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	return &Fixed{Length: length}, nil
}

// Name implements Strategy.
func (f *Fixed) Name() Policy { return PolicyFixed }

// Plan implements Strategy.
func (f *Fixed) Plan(total int) (Plan, error) {
	if err := checkTotal(total); err != nil {
		return nil, err
	}
	return chunk(total, f.Length), nil
}

// Uniform selects the largest candidate not exceeding the frame count, or the
// smallest candidate when none fits, and uses it for every clip.
type Uniform struct {
	Candidates []int // descending
}

// NewUniform creates a Uniform strategy.
func NewUniform(candidates []int) (*Uniform, error) {
	c, err := NormalizeCandidates(candidates)
	if err != nil {
		return nil, err
	}
	return &Uniform{Candidates: c}, nil
}

// Name implements Strategy.
func (u *Uniform) Name() Policy { return PolicyUniform }

// Select returns the clip length chosen for total frames.
func (u *Uniform) Select(total int) int {
	for _, l := range u.Candidates {
		if total >= l {
			return l
		}
	}
	return u.Candidates[len(u.Candidates)-1]
}

// Plan implements Strategy.
func (u *Uniform) Plan(total int) (Plan, error) {
	if err := checkTotal(total); err != nil {
		return nil, err
	}
	return chunk(total, u.Select(total)), nil
}

// Greedy consumes the largest candidate that fits the remaining frames. A
// remainder below the smallest candidate becomes one last smallest clip.
type Greedy struct {
	Candidates []int // descending
}

// NewGreedy creates a Greedy strategy.
func NewGreedy(candidates []int) (*Greedy, error) {
	c, err := NormalizeCandidates(candidates)
	if err != nil {
		return nil, err
	}
	return &Greedy{Candidates: c}, nil
}

// Name implements Strategy.
func (g *Greedy) Name() Policy { return PolicyGreedy }

// Plan implements Strategy.
func (g *Greedy) Plan(total int) (Plan, error) {
	if err := checkTotal(total); err != nil {
		return nil, err
	}
	smallest := g.Candidates[len(g.Candidates)-1]
	var plan Plan
	for remain := total; remain > 0; {
		if remain < smallest {
			plan = append(plan, smallest)
			break
		}
		for _, l := range g.Candidates {
			if remain >= l {
				plan = append(plan, l)
				remain -= l
				break
			}
		}
	}
	return plan, nil
}

var (
	_ Strategy = (*Fixed)(nil)
	_ Strategy = (*Uniform)(nil)
	_ Strategy = (*Greedy)(nil)
)
