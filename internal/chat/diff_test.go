package chat

import (
	"testing"

	"github.com/zhubert/chatter/internal/layout"
)

func describe(updates []layout.UpdateItem) []string {
	var out []string
	for _, u := range updates {
		s := u.Action.String()
		if u.Before != nil {
			s += " " + u.Before.String()
		}
		if u.After != nil {
			s += " " + u.After.String()
		}
		out = append(out, s)
	}
	return out
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		old  []string
		new  []string
		want []string
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, nil},
		{"prepend", []string{"a", "b"}, []string{"n", "a", "b"}, []string{"insert [0,0]"}},
		{"remove middle", []string{"a", "b", "c"}, []string{"a", "c"}, []string{"delete [0,1]"}},
		{"replace first", []string{"x", "a"}, []string{"y", "a"}, []string{"delete [0,0]", "insert [0,0]"}},
		{"from empty", nil, []string{"a", "b"}, []string{"insert [0,0]", "insert [0,1]"}},
		{"to empty", []string{"a", "b"}, nil, []string{"delete [0,0]", "delete [0,1]"}},
		{"rotate", []string{"a", "b", "c"}, []string{"c", "a", "b"}, []string{"move [0,2] [0,0]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describe(Diff(tt.old, tt.new))
			if len(got) != len(tt.want) {
				t.Fatalf("Diff() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Diff()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLongestIncreasing(t *testing.T) {
	keep := longestIncreasing([]int{3, 0, 1, 4, 2})
	count := 0
	prev := -1
	seq := []int{3, 0, 1, 4, 2}
	for i, k := range keep {
		if k {
			count++
			if seq[i] <= prev {
				t.Errorf("kept sequence is not increasing at %d", i)
			}
			prev = seq[i]
		}
	}
	if count != 3 {
		t.Errorf("kept %d, want 3", count)
	}
}
