package pubgrub

import "strings"

// segment is one half-open interval [low, high) of a Range. A nil low bound
// means the interval is unbounded below (the canonical "lowest" of the
// version space); a nil high bound means it is unbounded above (infinity).
// high=nil is only ever legal on the last segment of a Range.
type segment struct {
	low, high Version
}

func (s segment) lowInf() bool  { return s.low == nil }
func (s segment) highInf() bool { return s.high == nil }

// contains reports whether v falls in [s.low, s.high).
func (s segment) contains(v Version) bool {
	if !s.lowInf() && versionLess(v, s.low) {
		return false
	}
	if !s.highInf() && !versionLess(v, s.high) {
		return false
	}
	return true
}

// Range is a canonical, ordered sequence of disjoint, non-touching half-open
// intervals of versions. The zero value is the empty set.
//
// Canonical form invariants, maintained by every constructor and operation
// in this file: segments are sorted by low bound, no segment is empty,
// adjacent segments are strictly separated (prev.high < next.low), and
// high=nil (unbounded above) appears only on the final segment.
type Range struct {
	segs []segment
}

// None returns the empty range.
func None() Range { return Range{} }

// Any returns the range containing every version: [lowest, ∞).
func Any() Range {
	return Range{segs: []segment{{low: nil, high: nil}}}
}

// Exact returns the single-version range [v, Bump(v)).
func Exact(v Version) Range {
	return Range{segs: []segment{{low: v, high: v.Bump()}}}
}

// HigherThan returns the range [v, ∞).
func HigherThan(v Version) Range {
	return Range{segs: []segment{{low: v, high: nil}}}
}

// StrictlyLowerThan returns the range [lowest, v).
func StrictlyLowerThan(v Version) Range {
	return Range{segs: []segment{{low: nil, high: v}}}
}

// Between returns the range [lo, hi). If hi does not sort after lo, the
// result is the empty range.
func Between(lo, hi Version) Range {
	if !versionLess(lo, hi) {
		return None()
	}
	return Range{segs: []segment{{low: lo, high: hi}}}
}

// IsNone reports whether r is the empty set.
func (r Range) IsNone() bool { return len(r.segs) == 0 }

// IsAny reports whether r is the universal set.
func (r Range) IsAny() bool {
	return len(r.segs) == 1 && r.segs[0].lowInf() && r.segs[0].highInf()
}

// Contains reports whether v belongs to any segment of r.
func (r Range) Contains(v Version) bool {
	for _, s := range r.segs {
		if s.contains(v) {
			return true
		}
	}
	return false
}

// Equal reports whether r and other have identical segment sequences.
func (r Range) Equal(other Range) bool {
	if len(r.segs) != len(other.segs) {
		return false
	}
	for i, s := range r.segs {
		o := other.segs[i]
		if s.lowInf() != o.lowInf() || s.highInf() != o.highInf() {
			return false
		}
		if !s.lowInf() && !versionEqual(s.low, o.low) {
			return false
		}
		if !s.highInf() && !versionEqual(s.high, o.high) {
			return false
		}
	}
	return true
}

// lowLess reports whether low bound a sorts before low bound b, treating a
// nil (unbounded) low as sorting before everything.
func lowLess(a, aInf bool, av Version, bInf bool, bv Version) bool {
	_ = a
	if aInf && bInf {
		return false
	}
	if aInf {
		return true
	}
	if bInf {
		return false
	}
	return versionLess(av, bv)
}

// Negate returns the complement of r within the full version space.
func (r Range) Negate() Range {
	if r.IsNone() {
		return Any()
	}
	if r.IsAny() {
		return None()
	}

	var out []segment

	first := r.segs[0]
	if !first.lowInf() {
		out = append(out, segment{low: nil, high: first.low})
	}

	for i := 0; i+1 < len(r.segs); i++ {
		out = append(out, segment{low: r.segs[i].high, high: r.segs[i+1].low})
	}

	last := r.segs[len(r.segs)-1]
	if !last.highInf() {
		out = append(out, segment{low: last.high, high: nil})
	}

	return Range{segs: out}
}

// Intersection returns the set of versions present in both r and other, via
// a linear merge of the two sorted, disjoint segment lists: emit the overlap
// of each pair of segments under consideration, then advance whichever side
// ends first.
func (r Range) Intersection(other Range) Range {
	var out []segment

	i, j := 0, 0
	for i < len(r.segs) && j < len(other.segs) {
		a, b := r.segs[i], other.segs[j]

		// lo = max(a.low, b.low); unbounded only if both sides are.
		loInf := a.lowInf() && b.lowInf()
		var lo Version
		switch {
		case a.lowInf():
			lo = b.low
		case b.lowInf():
			lo = a.low
		case versionLess(a.low, b.low):
			lo = b.low
		default:
			lo = a.low
		}

		// hi = min(a.high, b.high); unbounded only if both sides are.
		hiInf := a.highInf() && b.highInf()
		var hi Version
		aEndsFirst := a.highInf()
		switch {
		case a.highInf() && b.highInf():
		case a.highInf():
			hi = b.high
			aEndsFirst = false
		case b.highInf():
			hi = a.high
			aEndsFirst = true
		case versionLess(a.high, b.high):
			hi = a.high
			aEndsFirst = true
		default:
			hi = b.high
			aEndsFirst = false
		}

		if hiInf || loInf || versionLess(lo, hi) {
			seg := segment{}
			if !loInf {
				seg.low = lo
			}
			if !hiInf {
				seg.high = hi
			}
			out = appendSegment(out, seg)
		}

		// Advance whichever side's interval ends first; if both end at the
		// same point (including both unbounded), advance both.
		switch {
		case a.highInf() && b.highInf():
			i++
			j++
		case !aEndsFirst && !a.highInf() && !b.highInf() && versionEqual(a.high, b.high):
			i++
			j++
		case aEndsFirst:
			i++
		default:
			j++
		}
	}

	return Range{segs: out}
}

// appendSegment appends seg to segs, merging it into the previous segment if
// they touch (this should not normally trigger for Intersection's output,
// since inputs are already disjoint within each side, but guards the
// invariant defensively for callers that build segment lists directly).
func appendSegment(segs []segment, seg segment) []segment {
	if seg.low != nil && seg.high != nil && !versionLess(seg.low, seg.high) {
		return segs
	}
	if n := len(segs); n > 0 {
		prev := segs[n-1]
		if !prev.highInf() && !seg.lowInf() && versionEqual(prev.high, seg.low) {
			segs[n-1] = segment{low: prev.low, high: seg.high}
			return segs
		}
	}
	return append(segs, seg)
}

// Union returns the set of versions present in either r or other. Per the
// algebraic contract it is computed as ¬(¬r ∩ ¬other).
func (r Range) Union(other Range) Range {
	return r.Negate().Intersection(other.Negate()).Negate()
}

// String renders r as a human-readable list of interval notations, mainly
// for use in trace output and test failure messages.
func (r Range) String() string {
	if r.IsNone() {
		return "∅"
	}
	if r.IsAny() {
		return "*"
	}

	parts := make([]string, len(r.segs))
	for i, s := range r.segs {
		lo := "-∞"
		if !s.lowInf() {
			lo = s.low.String()
		}
		hi := "∞"
		if !s.highInf() {
			hi = s.high.String()
		}
		parts[i] = "[" + lo + ", " + hi + ")"
	}
	return strings.Join(parts, " ∪ ")
}
