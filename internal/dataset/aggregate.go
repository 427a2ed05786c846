package dataset

import (
	"math"
	"sort"
)

// Table is a fully derived dataset. All aggregations below are
// read-only reductions; filtering returns views into the same backing
// rows in their original order.
type Table []Record

// ValueCount pairs a categorical value with its row count.
type ValueCount struct {
	Value string
	Count int
}

// Filter returns the rows matching pred, preserving order.
func (t Table) Filter(pred func(*Record) bool) Table {
	var out Table
	for i := range t {
		if pred(&t[i]) {
			out = append(out, t[i])
		}
	}
	return out
}

// Page slices the table at [offset, offset+limit). Out-of-range offsets
// yield an empty table rather than an error.
func (t Table) Page(limit, offset int) Table {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(t) {
		return Table{}
	}
	end := offset + limit
	if limit <= 0 || end > len(t) {
		end = len(t)
	}
	return t[offset:end]
}

// ValueCounts tallies key over all rows and returns the values sorted
// by descending count. Ties keep the order in which values were first
// encountered.
func (t Table) ValueCounts(key func(*Record) string) []ValueCount {
	counts := make(map[string]int)
	var order []string
	for i := range t {
		k := key(&t[i])
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	out := make([]ValueCount, 0, len(order))
	for _, k := range order {
		out = append(out, ValueCount{Value: k, Count: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Mode returns the most frequent value of key, or "" for an empty table.
func (t Table) Mode(key func(*Record) string) string {
	vc := t.ValueCounts(key)
	if len(vc) == 0 {
		return ""
	}
	return vc[0].Value
}

// ModeInt is Mode for integer-valued keys.
func (t Table) ModeInt(key func(*Record) int) (int, bool) {
	counts := make(map[int]int)
	var order []int
	for i := range t {
		k := key(&t[i])
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	best, bestCount, found := 0, 0, false
	for _, k := range order {
		if counts[k] > bestCount {
			best, bestCount, found = k, counts[k], true
		}
	}
	return best, found
}

// TopN returns the n most frequent values of key.
func (t Table) TopN(key func(*Record) string, n int) []ValueCount {
	vc := t.ValueCounts(key)
	if len(vc) > n {
		vc = vc[:n]
	}
	return vc
}

// CountBy counts rows per value of key.
func (t Table) CountBy(key func(*Record) string) map[string]int {
	out := make(map[string]int)
	for i := range t {
		out[key(&t[i])]++
	}
	return out
}

// SumBy sums val per value of key.
func (t Table) SumBy(key func(*Record) string, val func(*Record) float64) map[string]float64 {
	out := make(map[string]float64)
	for i := range t {
		out[key(&t[i])] += val(&t[i])
	}
	return out
}

// MeanBy averages val per value of key.
func (t Table) MeanBy(key func(*Record) string, val func(*Record) float64) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range t {
		k := key(&t[i])
		sums[k] += val(&t[i])
		counts[k]++
	}

	out := make(map[string]float64, len(sums))
	for k, s := range sums {
		out[k] = s / float64(counts[k])
	}
	return out
}

// GroupSum sums val per (outer, inner) key pair, returned as a nested
// mapping keyed by the outer then the inner dimension.
func (t Table) GroupSum(outer, inner func(*Record) string, val func(*Record) float64) map[string]map[string]float64 {
	out := make(map[string]map[string]float64)
	for i := range t {
		o, in := outer(&t[i]), inner(&t[i])
		if out[o] == nil {
			out[o] = make(map[string]float64)
		}
		out[o][in] += val(&t[i])
	}
	return out
}

// GroupMean averages val per (outer, inner) key pair.
func (t Table) GroupMean(outer, inner func(*Record) string, val func(*Record) float64) map[string]map[string]float64 {
	sums := make(map[string]map[string]float64)
	counts := make(map[string]map[string]int)
	for i := range t {
		o, in := outer(&t[i]), inner(&t[i])
		if sums[o] == nil {
			sums[o] = make(map[string]float64)
			counts[o] = make(map[string]int)
		}
		sums[o][in] += val(&t[i])
		counts[o][in]++
	}

	out := make(map[string]map[string]float64, len(sums))
	for o, group := range sums {
		out[o] = make(map[string]float64, len(group))
		for in, s := range group {
			out[o][in] = s / float64(counts[o][in])
		}
	}
	return out
}

// GroupCount counts rows per (outer, inner) key pair.
func (t Table) GroupCount(outer, inner func(*Record) string) map[string]map[string]int {
	out := make(map[string]map[string]int)
	for i := range t {
		o, in := outer(&t[i]), inner(&t[i])
		if out[o] == nil {
			out[o] = make(map[string]int)
		}
		out[o][in]++
	}
	return out
}

// Mean averages val over all rows, 0 for an empty table.
func (t Table) Mean(val func(*Record) float64) float64 {
	if len(t) == 0 {
		return 0
	}
	var sum float64
	for i := range t {
		sum += val(&t[i])
	}
	return sum / float64(len(t))
}

// Percentage is the share of rows matching pred, as a percentage
// rounded to two decimals. An empty table yields 0 rather than a
// division error.
func (t Table) Percentage(pred func(*Record) bool) float64 {
	if len(t) == 0 {
		return 0
	}
	matched := 0
	for i := range t {
		if pred(&t[i]) {
			matched++
		}
	}
	return Round2(float64(matched) / float64(len(t)) * 100)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
