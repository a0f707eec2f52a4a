package core

// SelectBest picks the checkpoint that represents a run.
//
// Every checkpoint nominates a primary metric; the (name, goal) pair nominated
// most often is authoritative. When several pairs share the highest count the
// pair first seen latest wins. Among checkpoints recording the winning metric,
// the first one holding the extremal value under its goal is returned, so ties
// go to the earliest step. When no checkpoint records the metric the first
// checkpoint is returned.
//
// The returned bool is false only for an empty sequence.
func SelectBest(checkpoints []Checkpoint) (string, Checkpoint, bool) {
	if len(checkpoints) == 0 {
		return "", Checkpoint{}, false
	}

	primary := dominantPrimaryMetric(checkpoints)

	bestIdx := -1
	var bestVal Value
	for i, cp := range checkpoints {
		v, ok := cp.Metrics.Get(primary.Name)
		if !ok {
			continue
		}
		if bestIdx < 0 || primary.Goal.Improves(v, bestVal) {
			bestIdx, bestVal = i, v
		}
	}
	if bestIdx < 0 {
		bestIdx = 0
	}
	return primary.Name, checkpoints[bestIdx], true
}

// dominantPrimaryMetric tallies primary metric nominations. Ties are resolved
// in favour of the pair whose first nomination came last.
func dominantPrimaryMetric(checkpoints []Checkpoint) PrimaryMetric {
	var order []PrimaryMetric
	counts := make(map[PrimaryMetric]int)
	for _, cp := range checkpoints {
		if _, seen := counts[cp.PrimaryMetric]; !seen {
			order = append(order, cp.PrimaryMetric)
		}
		counts[cp.PrimaryMetric]++
	}

	var winner PrimaryMetric
	best := 0
	for _, pm := range order {
		if counts[pm] >= best {
			winner, best = pm, counts[pm]
		}
	}
	return winner
}

// BestCheckpoint returns the run's representative checkpoint and the name of
// its authoritative primary metric. ok is false for runs without checkpoints.
func (r *Run) BestCheckpoint() (metric string, best Checkpoint, ok bool) {
	return SelectBest(r.Checkpoints)
}
