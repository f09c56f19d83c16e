package stats

import "sort"

// midranks assigns 1-based ranks to values, with ties receiving the mean of
// the ranks they span. It also returns the sizes of every tie group, which
// the rank tests need for their tie corrections.
func midranks(values []float64) (ranks []float64, tieSizes []int) {
	n := len(values)
	ranks = make([]float64, n)
	if n == 0 {
		return ranks, nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	i := 0
	for i < n {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		// Ranks i+1..j+1 collapse to their mean.
		rank := float64(i+j+2) / 2
		for k := i; k <= j; k++ {
			ranks[order[k]] = rank
		}
		if j > i {
			tieSizes = append(tieSizes, j-i+1)
		}
		i = j + 1
	}

	return ranks, tieSizes
}

// tieCorrectionSum computes sum(t^3 - t) over all tie groups
func tieCorrectionSum(tieSizes []int) float64 {
	var sum float64
	for _, t := range tieSizes {
		ft := float64(t)
		sum += ft*ft*ft - ft
	}
	return sum
}
