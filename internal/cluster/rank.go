// Package cluster implements seeded k-means clustering over generic point
// types.
package cluster

import "sort"

// RankedCluster pairs a cluster with its share of the clustered points.
type RankedCluster[P Point[P]] struct {
	Centroid   P
	Count      int
	Proportion float64
}

// Rank orders clusters from most to least populous and annotates each with
// its proportion of the total membership. The sort is stable, so clusters
// with equal counts keep their centroid order and ranking stays
// deterministic.
func Rank[P Point[P]](clusters []Cluster[P]) []RankedCluster[P] {
	total := 0
	for _, c := range clusters {
		total += c.Count
	}

	ranked := make([]RankedCluster[P], len(clusters))
	for i, c := range clusters {
		proportion := 0.0
		if total > 0 {
			proportion = float64(c.Count) / float64(total)
		}
		ranked[i] = RankedCluster[P]{
			Centroid:   c.Centroid,
			Count:      c.Count,
			Proportion: proportion,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	return ranked
}
