package chat

import (
	"sort"

	"github.com/zhubert/chatter/internal/layout"
)

// Diff compares two id snapshots of group 0 and returns the updates that
// turn old into new: deletes at their old paths, inserts at their new paths,
// then moves for ids whose relative order changed. Ids present in both with
// their relative order intact produce nothing, even when their index shifts.
func Diff(oldIDs, newIDs []string) []layout.UpdateItem {
	oldPos := make(map[string]int, len(oldIDs))
	for i, id := range oldIDs {
		oldPos[id] = i
	}
	newPos := make(map[string]int, len(newIDs))
	for i, id := range newIDs {
		newPos[id] = i
	}

	var updates []layout.UpdateItem
	var commonOld, commonNew []int
	for i, id := range oldIDs {
		j, ok := newPos[id]
		if !ok {
			updates = append(updates, layout.Delete(layout.At(0, i)))
			continue
		}
		commonOld = append(commonOld, i)
		commonNew = append(commonNew, j)
	}
	for j, id := range newIDs {
		if _, ok := oldPos[id]; !ok {
			updates = append(updates, layout.Insert(layout.At(0, j)))
		}
	}

	keep := longestIncreasing(commonNew)
	for k := range commonNew {
		if !keep[k] {
			updates = append(updates, layout.Move(layout.At(0, commonOld[k]), layout.At(0, commonNew[k])))
		}
	}
	return updates
}

// longestIncreasing marks the members of one longest strictly increasing
// subsequence of seq.
func longestIncreasing(seq []int) []bool {
	keep := make([]bool, len(seq))
	if len(seq) == 0 {
		return keep
	}

	tails := make([]int, 0, len(seq)) // index of the smallest tail per length
	prev := make([]int, len(seq))
	for i, v := range seq {
		j := sort.Search(len(tails), func(k int) bool { return seq[tails[k]] >= v })
		prev[i] = -1
		if j > 0 {
			prev[i] = tails[j-1]
		}
		if j == len(tails) {
			tails = append(tails, i)
		} else {
			tails[j] = i
		}
	}

	for i := tails[len(tails)-1]; i >= 0; i = prev[i] {
		keep[i] = true
	}
	return keep
}
