package model

type Phase string

const (
	Phase1         Phase = "Phase 1"
	Phase2         Phase = "Phase 2"
	Phase3         Phase = "Phase 3"
	Phase4         Phase = "Phase 4"
	PhaseCompleted Phase = "Completed"
)

// phaseThresholds are percentages of the target, highest first.
var phaseThresholds = []struct {
	percent int64
	phase   Phase
}{
	{100, PhaseCompleted},
	{75, Phase4},
	{50, Phase3},
	{25, Phase2},
}

// ClassifyPhase maps goal progress onto one of the five phases. The
// comparison current*100 >= percent*target is done in integers so a goal
// sitting exactly on a boundary always lands in the higher phase. A
// non-positive target cannot be created and is reported as Phase1.
func ClassifyPhase(currentPoints, targetPoints int) Phase {
	if targetPoints <= 0 {
		return Phase1
	}

	current := int64(currentPoints) * 100
	target := int64(targetPoints)
	for _, t := range phaseThresholds {
		if current >= t.percent*target {
			return t.phase
		}
	}
	return Phase1
}

// Percentage is the progress ratio in whole percent, truncated toward zero.
// It is not clamped: over-achieved goals report more than 100.
func Percentage(currentPoints, targetPoints int) int {
	if targetPoints <= 0 {
		return 0
	}
	return int(int64(currentPoints) * 100 / int64(targetPoints))
}
