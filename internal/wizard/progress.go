package wizard

import "math"

// Progress returns the completion percentage for the current step within the
// required flow, rounded to an integer. Hosts must recompute it when the
// discriminator changes even if the step did not: adding or removing
// sales-settings shifts every percentage after it.
func Progress(current StepID, d Discriminator) int {
	required := RequiredSteps(d)
	idx := indexOf(current, required)
	if idx < 0 || len(required) == 0 {
		return 0
	}
	return int(math.Round(float64(idx+1) / float64(len(required)) * 100))
}

// StepCount returns the 1-based position of the current step and the total
// number of required steps, for "step 3 of 7" displays.
func StepCount(current StepID, d Discriminator) (position, total int) {
	required := RequiredSteps(d)
	idx := indexOf(current, required)
	if idx < 0 {
		return 0, len(required)
	}
	return idx + 1, len(required)
}
