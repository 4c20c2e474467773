package usage

import (
	"errors"
	"fmt"
	"math"
)

// ErrRangeOverflow is returned when a Range's end does not fit in an int.
var ErrRangeOverflow = errors.New("usage: range end overflows")

// Range is a half-open byte interval [Start, Start+Length) of the usage text.
type Range struct {
	Start  int
	Length int
}

// End returns Start+Length.
func (r Range) End() (int, error) {
	if r.Length > math.MaxInt-r.Start {
		return 0, ErrRangeOverflow
	}
	return r.Start + r.Length, nil
}

func (r Range) Empty() bool {
	return r.Length == 0
}

// Contains reports whether offset lies inside r.
func (r Range) Contains(offset int) bool {
	end, err := r.End()
	if err != nil {
		return false
	}
	return offset >= r.Start && offset < end
}

// Merge grows r to the smallest range covering both r and other.
// Empty ranges are discarded.
func (r *Range) Merge(other Range) error {
	if other.Empty() {
		return nil
	}
	if r.Empty() {
		*r = other
		return nil
	}
	end, err := r.End()
	if err != nil {
		return err
	}
	otherEnd, err := other.End()
	if err != nil {
		return err
	}
	start := min(r.Start, other.Start)
	r.Start = start
	r.Length = max(end, otherEnd) - start
	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,+%d)", r.Start, r.Length)
}

// cover merges ranges built from real text, where overflow cannot happen.
func cover(ranges ...Range) Range {
	var out Range
	for _, r := range ranges {
		if err := out.Merge(r); err != nil {
			panic(err)
		}
	}
	return out
}
