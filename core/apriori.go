package core

import (
	"strconv"
	"strings"
	"sync"

	"github.com/huangsam/cofail/schema"
)

// MineFrequentItemsets runs a level-wise apriori search over the encoded
// matrix and returns every itemset whose support meets minSupport.
// Level 1 holds the qualifying single items; level k+1 candidates are
// generated only by extending frequent level-k itemsets with higher-indexed
// items, then pruned via downward closure before any counting. The search
// terminates when a level yields nothing frequent or candidate size reaches
// the universe size.
//
// Support counting is parallelized across contiguous row blocks; each worker
// accumulates local counts that are summed in block order afterwards, so
// results are bit-identical regardless of worker count.
func MineFrequentItemsets(m *schema.ItemMatrix, minSupport float64, workers int) []schema.ItemSet {
	total := m.NumTransactions()
	if total == 0 || m.NumItems() == 0 {
		return nil
	}

	// Level 1 candidates: every single item.
	candidates := make([][]int, m.NumItems())
	for i := range candidates {
		candidates[i] = []int{i}
	}

	var result []schema.ItemSet
	frequentKeys := make(map[string]struct{})

	for k := 1; ; k++ {
		counts := countSupport(m, candidates, workers)

		var frequent [][]int
		for i, cand := range candidates {
			support := float64(counts[i]) / float64(total)
			if support < minSupport {
				continue
			}
			frequent = append(frequent, cand)
			frequentKeys[indexKey(cand)] = struct{}{}
			result = append(result, schema.ItemSet{Items: labelsFor(m, cand), Support: support})
		}

		if len(frequent) == 0 || k == m.NumItems() {
			break
		}
		candidates = generateCandidates(frequent, m.NumItems(), frequentKeys)
		if len(candidates) == 0 {
			break
		}
	}
	return result
}

// generateCandidates extends each frequent k-itemset with every item index
// above its last member, dropping any candidate with an infrequent subset.
// No superset of an infrequent itemset can be frequent, so pruning here is
// what keeps the level-wise search tractable.
func generateCandidates(frequent [][]int, numItems int, frequentKeys map[string]struct{}) [][]int {
	var candidates [][]int
	for _, set := range frequent {
		for item := set[len(set)-1] + 1; item < numItems; item++ {
			cand := make([]int, len(set)+1)
			copy(cand, set)
			cand[len(set)] = item
			if hasInfrequentSubset(cand, frequentKeys) {
				continue
			}
			candidates = append(candidates, cand)
		}
	}
	return candidates
}

// hasInfrequentSubset checks every leave-one-out subset of cand against the
// frequent set of the previous level.
func hasInfrequentSubset(cand []int, frequentKeys map[string]struct{}) bool {
	subset := make([]int, 0, len(cand)-1)
	for skip := range cand {
		subset = subset[:0]
		for i, item := range cand {
			if i != skip {
				subset = append(subset, item)
			}
		}
		if _, ok := frequentKeys[indexKey(subset)]; !ok {
			return true
		}
	}
	return false
}

// countSupport counts, for every candidate, the number of matrix rows that
// fully contain it. Rows are split into contiguous blocks, one goroutine
// per block with its own count slice; the partial counts are summed in
// block order so the reduction never reorders or double counts.
func countSupport(m *schema.ItemMatrix, candidates [][]int, workers int) []int {
	rows := m.NumTransactions()
	if workers < 1 {
		workers = 1
	}
	if workers > rows {
		workers = rows
	}
	blockSize := (rows + workers - 1) / workers

	var wg sync.WaitGroup
	var partials [][]int
	for start := 0; start < rows; start += blockSize {
		end := min(start+blockSize, rows)
		local := make([]int, len(candidates))
		partials = append(partials, local)
		wg.Go(func() {
			for t := start; t < end; t++ {
				for c, cand := range candidates {
					if m.ContainsAll(t, cand) {
						local[c]++
					}
				}
			}
		})
	}
	wg.Wait()

	counts := make([]int, len(candidates))
	for _, local := range partials {
		for c, n := range local {
			counts[c] += n
		}
	}
	return counts
}

// indexKey builds the canonical map key for a sorted index set.
func indexKey(set []int) string {
	var b strings.Builder
	for i, item := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(item))
	}
	return b.String()
}

// labelsFor maps a sorted column index set back to item labels.
func labelsFor(m *schema.ItemMatrix, set []int) []string {
	labels := make([]string, len(set))
	for i, col := range set {
		labels[i] = m.Items[col]
	}
	return labels
}
