package system

import "github.com/younwookim/brawl/internal/domain/button"

// MotionTolerance is the largest gap, in frames, allowed between two
// consecutive directions of a motion command.
const MotionTolerance = 4

// MatchMotion reports whether the directions in seq appear in history in
// order. History is indexed by lookback: index 0 is the newest frame and
// larger indexes are older. start is the index of the frame the trigger
// button was pressed on; indexes at or beyond limit are not examined.
//
// The last direction of seq must appear at most MotionTolerance frames
// older than start (start itself included), and each earlier direction at
// most MotionTolerance frames older than the one after it.
func MatchMotion(seq []button.Button, start, limit int, dir func(i int) button.Button) bool {
	n := len(seq)
	if n == 0 {
		return true
	}

	// last[k] is the newest index where the k most recent directions have
	// been matched in order. last[0] is a virtual match just before start.
	last := make([]int, n+1)
	matched := make([]bool, n+1)
	last[0] = start - 1
	matched[0] = true

	for i := start; i < limit; i++ {
		d := dir(i)
		for k := n; k >= 1; k-- {
			if !matched[k-1] {
				continue
			}
			gap := i - last[k-1]
			if gap < 1 || gap > MotionTolerance {
				continue
			}
			if d != seq[n-k] {
				continue
			}
			if k == n {
				return true
			}
			last[k] = i
			matched[k] = true
		}
		// nothing matched recently enough to continue the chain
		if i-newest(last, matched) >= MotionTolerance {
			return false
		}
	}
	return false
}

func newest(last []int, matched []bool) int {
	best := last[0]
	for k := range last {
		if matched[k] && last[k] > best {
			best = last[k]
		}
	}
	return best
}
