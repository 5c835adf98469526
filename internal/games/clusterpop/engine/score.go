package engine

// ScoreResult is the award for one collected region.
type ScoreResult struct {
	Base       int // count squared
	Multiplier int
	Total      int
}

// CalculateScore awards count² × multiplier.
func CalculateScore(count, multiplier int) ScoreResult {
	base := count * count
	return ScoreResult{
		Base:       base,
		Multiplier: multiplier,
		Total:      base * multiplier,
	}
}
