package engine

import (
	"math"
	"math/rand"
	"sort"

	"github.com/piwi3910/palletopt/internal/model"
)

// SearchResult is the committed outcome of one order's evolutionary
// search: the incumbent's final placements (re-derived deterministically,
// per §4.7's "result application" rule) or a failure when no gene
// ordering ever produced a valid individual.
type SearchResult struct {
	Found      bool
	Pallets    []*model.Pallet
	Unplaced   []model.Item
	Het        float64
	Comp       float64
	Vol        float64
	Generation int
}

// Search runs the NSGA-II-style evolutionary loop of §4.7 against a
// single order's product-grouped items, using rng for every random
// decision (initial population, parent sampling, crossover point,
// mutation positions). Identical rng streams produce identical results.
func Search(itemsByProduct map[string][]model.Item, k int, dims model.PalletDimensions, maxPallets int, allowRotation bool, settings model.GASettings, rng *rand.Rand) SearchResult {
	genesUniverse := make([]string, 0, k)
	for pid := range itemsByProduct {
		genesUniverse = append(genesUniverse, pid)
	}
	sort.Strings(genesUniverse)

	stats := BuildProductStats(itemsByProduct)
	seeds := SeedOrderings(stats)

	population := make([]Individual, 0, settings.PopulationSize)
	for _, g := range seeds {
		population = append(population, Individual{Genes: g})
	}
	for len(population) < settings.PopulationSize {
		population = append(population, Individual{Genes: randomPermutation(genesUniverse, rng)})
	}

	evaluateAll(population, itemsByProduct, dims, maxPallets, allowRotation, k)

	var incumbent Individual
	var incumbentResult EvalResult
	stagnation := 0
	bestComposite := 0.0
	haveIncumbent := false

	generationOfIncumbent := 0

	for gen := 0; gen < settings.MaxGenerations; gen++ {
		nonDominatedSort(population)
		assignCrowding(population)

		for _, ind := range population {
			if BetterIncumbent(ind, incumbent) {
				incumbent = ind
				haveIncumbent = true
				generationOfIncumbent = gen
			}
		}

		if haveIncumbent {
			c := incumbent.composite()
			if gen == 0 || bestComposite-c >= 1e-4 {
				bestComposite = c
				stagnation = 0
			} else {
				stagnation++
			}
		} else {
			stagnation++
		}
		if stagnation >= settings.StagnationLimit {
			break
		}

		survivors := selectSurvivors(population, settings.Mu)
		offspring := makeOffspring(survivors, settings.Lambda, settings.CrossoverProb, genesUniverse, rng)
		evaluateAll(offspring, itemsByProduct, dims, maxPallets, allowRotation, k)

		population = append(append([]Individual{}, survivors...), offspring...)
	}

	if !haveIncumbent {
		return SearchResult{Found: false}
	}

	incumbentResult = Evaluate(incumbent.Genes, itemsByProduct, dims, maxPallets, allowRotation)
	return SearchResult{
		Found:      true,
		Pallets:    incumbentResult.Pallets,
		Unplaced:   incumbentResult.Unplaced,
		Het:        incumbent.Het,
		Comp:       incumbent.Comp,
		Vol:        incumbent.Vol,
		Generation: generationOfIncumbent,
	}
}

// evaluateAll scores every individual in place via §4.6.
func evaluateAll(pop []Individual, itemsByProduct map[string][]model.Item, dims model.PalletDimensions, maxPallets int, allowRotation bool, k int) {
	for i := range pop {
		res := Evaluate(pop[i].Genes, itemsByProduct, dims, maxPallets, allowRotation)
		pop[i].Valid = res.Valid
		pop[i].Het, pop[i].Comp, pop[i].Vol = Score(res, k)
	}
}

// randomPermutation returns a uniformly random permutation of universe.
func randomPermutation(universe []string, rng *rand.Rand) []string {
	perm := make([]string, len(universe))
	copy(perm, universe)
	rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	return perm
}

// nonDominatedSort partitions population into fronts and writes each
// individual's Rank in place, per §4.7. Invalid individuals are pushed
// into a terminal worst front regardless of their (meaningless) scores.
func nonDominatedSort(population []Individual) {
	n := len(population)
	dominatedBy := make([][]int, n)
	dominationCount := make([]int, n)
	rank := make([]int, n)

	var fronts [][]int
	front0 := []int{}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if population[i].Dominates(population[j]) {
				dominatedBy[i] = append(dominatedBy[i], j)
			} else if population[j].Dominates(population[i]) {
				dominationCount[i]++
			}
		}
		if dominationCount[i] == 0 {
			rank[i] = 0
			front0 = append(front0, i)
		}
	}
	fronts = append(fronts, front0)

	for f := 0; len(fronts[f]) > 0; f++ {
		var next []int
		for _, i := range fronts[f] {
			for _, j := range dominatedBy[i] {
				dominationCount[j]--
				if dominationCount[j] == 0 {
					rank[j] = f + 1
					next = append(next, j)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		fronts = append(fronts, next)
	}

	for i := range population {
		population[i].Rank = rank[i]
	}
	// Invalid individuals are demoted to a rank strictly worse than any
	// valid individual's, placing them in the terminal "worst" front.
	maxValidRank := 0
	for _, ind := range population {
		if ind.Valid && ind.Rank > maxValidRank {
			maxValidRank = ind.Rank
		}
	}
	for i := range population {
		if !population[i].Valid {
			population[i].Rank = maxValidRank + 1
		}
	}
}

// assignCrowding computes the 3D crowding distance of §4.7 within each
// rank, writing Crowding in place.
func assignCrowding(population []Individual) {
	byRank := make(map[int][]int)
	for i, ind := range population {
		byRank[ind.Rank] = append(byRank[ind.Rank], i)
	}
	for _, idxs := range byRank {
		crowdingForFront(population, idxs)
	}
}

func crowdingForFront(population []Individual, idxs []int) {
	for _, i := range idxs {
		population[i].Crowding = 0
	}
	accessors := []func(Individual) float64{
		func(ind Individual) float64 { return ind.Het },
		func(ind Individual) float64 { return ind.Comp },
		func(ind Individual) float64 { return ind.Vol },
	}
	for _, get := range accessors {
		sorted := make([]int, len(idxs))
		copy(sorted, idxs)
		sort.Slice(sorted, func(a, b int) bool { return get(population[sorted[a]]) < get(population[sorted[b]]) })

		if len(sorted) == 0 {
			continue
		}
		population[sorted[0]].Crowding = math.Inf(1)
		population[sorted[len(sorted)-1]].Crowding = math.Inf(1)
		if len(sorted) < 3 {
			continue
		}
		lo := get(population[sorted[0]])
		hi := get(population[sorted[len(sorted)-1]])
		rng := hi - lo
		if rng <= 0 {
			continue
		}
		for k := 1; k < len(sorted)-1; k++ {
			next := get(population[sorted[k+1]])
			prev := get(population[sorted[k-1]])
			population[sorted[k]].Crowding += (next - prev) / rng
		}
	}
}

// selectSurvivors picks mu individuals: whole fronts in rank order while
// they fit, then the overflow front's members by descending crowding.
func selectSurvivors(population []Individual, mu int) []Individual {
	byRank := make(map[int][]int)
	var ranks []int
	for i, ind := range population {
		if _, ok := byRank[ind.Rank]; !ok {
			ranks = append(ranks, ind.Rank)
		}
		byRank[ind.Rank] = append(byRank[ind.Rank], i)
	}
	sort.Ints(ranks)

	survivors := make([]Individual, 0, mu)
	for _, r := range ranks {
		idxs := byRank[r]
		if len(survivors)+len(idxs) <= mu {
			for _, i := range idxs {
				survivors = append(survivors, population[i])
			}
			continue
		}
		remaining := mu - len(survivors)
		sort.Slice(idxs, func(a, b int) bool { return population[idxs[a]].Crowding > population[idxs[b]].Crowding })
		for _, i := range idxs[:remaining] {
			survivors = append(survivors, population[i])
		}
		break
	}
	return survivors
}

// makeOffspring generates lambda children from the mu survivors, per
// §4.7: with probability crossoverProb, single-point crossover between
// two uniformly sampled parents; otherwise clone-and-swap-mutate a single
// uniformly sampled parent.
func makeOffspring(survivors []Individual, lambda int, crossoverProb float64, universe []string, rng *rand.Rand) []Individual {
	children := make([]Individual, 0, lambda)
	for len(children) < lambda {
		if rng.Float64() < crossoverProb {
			p1 := survivors[rng.Intn(len(survivors))]
			p2 := survivors[rng.Intn(len(survivors))]
			children = append(children, Individual{Genes: singlePointCrossover(p1.Genes, p2.Genes, rng)})
		} else {
			p := survivors[rng.Intn(len(survivors))].clone()
			swapMutate(p.Genes, rng)
			children = append(children, p)
		}
	}
	return children
}

// singlePointCrossover picks a point in [1, K) and builds the child as
// parent1's prefix followed by parent2's genes with parent1's prefix
// genes removed, preserving parent2's relative order.
func singlePointCrossover(parent1, parent2 []string, rng *rand.Rand) []string {
	k := len(parent1)
	if k < 2 {
		return append([]string{}, parent1...)
	}
	point := 1 + rng.Intn(k-1)
	prefix := parent1[:point]
	taken := make(map[string]bool, point)
	for _, g := range prefix {
		taken[g] = true
	}
	child := make([]string, 0, k)
	child = append(child, prefix...)
	for _, g := range parent2 {
		if !taken[g] {
			child = append(child, g)
		}
	}
	return child
}

// swapMutate swaps two uniformly random positions in genes in place.
func swapMutate(genes []string, rng *rand.Rand) {
	if len(genes) < 2 {
		return
	}
	i := rng.Intn(len(genes))
	j := rng.Intn(len(genes))
	genes[i], genes[j] = genes[j], genes[i]
}
