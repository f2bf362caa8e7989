package wizard

// masterSteps is the fixed, ordered step catalog. It is never mutated;
// accessors hand out copies.
var masterSteps = []StepDefinition{
	{ID: StepCreationType, Title: "Creation Type"},
	{ID: StepBasicInfo, Title: "Basic Info"},
	{ID: StepIngredients, Title: "Ingredients"},
	{ID: StepPreparation, Title: "Preparation"},
	{ID: StepCostCalculation, Title: "Cost Calculation"},
	{ID: StepSalesSettings, Title: "Sales Settings", RequiredFor: []Discriminator{DiscriminatorMenuItem}},
	{ID: StepPreview, Title: "Preview"},
}

// MasterSteps returns the full ordered step catalog, conditional steps
// included.
func MasterSteps() []StepDefinition {
	return cloneSteps(masterSteps)
}

// RequiredSteps filters the master list down to the steps required for the
// given discriminator, preserving order. Before a discriminator is chosen the
// unconditioned, non-optional steps are returned, which excludes
// sales-settings. Pure: repeated calls observe a stable ordering.
func RequiredSteps(d Discriminator) []StepDefinition {
	out := make([]StepDefinition, 0, len(masterSteps))
	for _, step := range masterSteps {
		if step.requiredFor(d) {
			out = append(out, step)
		}
	}
	return out
}

// StepIndex returns the position of a step within the required list for the
// discriminator, or -1 when the step is not part of it.
func StepIndex(id StepID, d Discriminator) int {
	for i, step := range RequiredSteps(d) {
		if step.ID == id {
			return i
		}
	}
	return -1
}

// StepTitle returns the display title from the master catalog.
func StepTitle(id StepID) string {
	for _, step := range masterSteps {
		if step.ID == id {
			return step.Title
		}
	}
	return string(id)
}

func cloneSteps(steps []StepDefinition) []StepDefinition {
	out := make([]StepDefinition, len(steps))
	for i, step := range steps {
		out[i] = step
		if step.RequiredFor != nil {
			out[i].RequiredFor = append([]Discriminator(nil), step.RequiredFor...)
		}
	}
	return out
}
