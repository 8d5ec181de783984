package scanner

import (
	"github.com/bau-lang/bauscope/pkg/grammar"
)

// RegionStack tracks the begin/end regions open at a given point in a
// document, innermost last. It is a persistent value: Push and Pop return
// new stacks and never mutate the receiver, so a stack captured at the
// start of a line stays valid after later lines are scanned. The zero
// value is the empty, top-level stack.
type RegionStack struct {
	regions []*grammar.BeginEnd
}

// Empty reports whether scanning is in the top-level context.
func (s RegionStack) Empty() bool {
	return len(s.regions) == 0
}

// Depth returns the number of open regions.
func (s RegionStack) Depth() int {
	return len(s.regions)
}

// Top returns the innermost open region, or nil for the empty stack.
func (s RegionStack) Top() *grammar.BeginEnd {
	if len(s.regions) == 0 {
		return nil
	}
	return s.regions[len(s.regions)-1]
}

// Push returns a stack with region as the new innermost entry.
func (s RegionStack) Push(region *grammar.BeginEnd) RegionStack {
	regions := make([]*grammar.BeginEnd, len(s.regions), len(s.regions)+1)
	copy(regions, s.regions)
	return RegionStack{regions: append(regions, region)}
}

// Pop returns a stack without the innermost entry. Popping the empty
// stack returns the empty stack.
func (s RegionStack) Pop() RegionStack {
	if len(s.regions) == 0 {
		return s
	}
	return RegionStack{regions: s.regions[:len(s.regions)-1:len(s.regions)-1]}
}

// Equal reports whether both stacks hold the same regions in the same
// order. Regions compare by identity: two stacks are equal only if they
// were opened by the same compiled patterns.
func (s RegionStack) Equal(other RegionStack) bool {
	if len(s.regions) != len(other.regions) {
		return false
	}
	for i := range s.regions {
		if s.regions[i] != other.regions[i] {
			return false
		}
	}
	return true
}
