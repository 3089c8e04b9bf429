// Package clustering groups playlist videos by length using k-means.
package clustering

import (
	"log"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/go-ytmusic/schema"
)

// DefaultGroups is the number of groups used when k is not positive.
const DefaultGroups = 3

// DurationGroup is a cluster of videos with similar length.
type DurationGroup struct {
	Label    string                 `json:"label"` // "Short: 2:05 - 3:10"
	Centroid int                    `json:"centroid"`
	Min      int                    `json:"min"`
	Max      int                    `json:"max"`
	Videos   []schema.VideoDetailed `json:"videos"`
}

// videoObservation wraps a video to implement clusters.Observation.
type videoObservation struct {
	video  schema.VideoDetailed
	coords clusters.Coordinates
}

func (o videoObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o videoObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// GroupByDuration partitions videos into at most k groups of similar
// duration. Groups are ordered by ascending centroid and videos inside a
// group by ascending duration. Videos without a duration are returned as
// ungrouped, as is everything when there are fewer timed videos than k.
func GroupByDuration(videos []schema.VideoDetailed, k int) ([]DurationGroup, []schema.VideoDetailed) {
	if len(videos) == 0 {
		return nil, nil
	}
	if k <= 0 {
		k = DefaultGroups
	}

	var obs clusters.Observations
	var ungrouped []schema.VideoDetailed
	for _, v := range videos {
		if v.Duration == nil {
			ungrouped = append(ungrouped, v)
			continue
		}
		obs = append(obs, videoObservation{
			video:  v,
			coords: clusters.Coordinates{float64(*v.Duration)},
		})
	}

	if len(obs) < k {
		for _, o := range obs {
			ungrouped = append(ungrouped, o.(videoObservation).video)
		}
		return nil, ungrouped
	}

	km := kmeans.New()
	result, err := km.Partition(obs, k)
	if err != nil {
		log.Printf("clustering: k-means failed: %v", err)
		for _, o := range obs {
			ungrouped = append(ungrouped, o.(videoObservation).video)
		}
		return nil, ungrouped
	}

	var groups []DurationGroup
	for _, cluster := range result {
		if len(cluster.Observations) == 0 {
			continue
		}

		var members []schema.VideoDetailed
		for _, o := range cluster.Observations {
			if vo, ok := o.(videoObservation); ok {
				members = append(members, vo.video)
			}
		}
		slices.SortStableFunc(members, func(a, b schema.VideoDetailed) int {
			return *a.Duration - *b.Duration
		})

		g := DurationGroup{
			Centroid: int(cluster.Center[0] + 0.5),
			Min:      *members[0].Duration,
			Max:      *members[len(members)-1].Duration,
			Videos:   members,
		}
		g.Label = groupLabel(g)
		groups = append(groups, g)
	}

	slices.SortFunc(groups, func(a, b DurationGroup) int {
		return a.Centroid - b.Centroid
	})

	return groups, ungrouped
}
