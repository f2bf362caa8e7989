package wizard

import "testing"

func TestProgressOverRecipeFlow(t *testing.T) {
	// Six required steps for a recipe.
	cases := map[StepID]int{
		StepCreationType:    17,
		StepBasicInfo:       33,
		StepIngredients:     50,
		StepPreparation:     67,
		StepCostCalculation: 83,
		StepPreview:         100,
	}
	for step, want := range cases {
		if got := Progress(step, DiscriminatorRecipe); got != want {
			t.Fatalf("recipe progress at %q: got %d, want %d", step, got, want)
		}
	}
}

func TestProgressChangesWithDiscriminator(t *testing.T) {
	// Switching to menu-item adds sales-settings, so the same step lands at
	// a different percentage: the denominator moved.
	for _, step := range []StepID{StepBasicInfo, StepIngredients, StepPreparation, StepCostCalculation} {
		recipe := Progress(step, DiscriminatorRecipe)
		menuItem := Progress(step, DiscriminatorMenuItem)
		if recipe == menuItem {
			t.Fatalf("expected %q progress to differ across discriminators, both %d", step, recipe)
		}
	}
	if got := Progress(StepPreview, DiscriminatorMenuItem); got != 100 {
		t.Fatalf("terminal step should stay at 100, got %d", got)
	}
}

func TestProgressUnknownStep(t *testing.T) {
	if got := Progress(StepSalesSettings, DiscriminatorRecipe); got != 0 {
		t.Fatalf("steps outside the flow should report 0, got %d", got)
	}
}

func TestStepCount(t *testing.T) {
	pos, total := StepCount(StepIngredients, DiscriminatorMenuItem)
	if pos != 3 || total != 7 {
		t.Fatalf("got step %d of %d, want 3 of 7", pos, total)
	}
	pos, total = StepCount(StepIngredients, DiscriminatorRecipe)
	if pos != 3 || total != 6 {
		t.Fatalf("got step %d of %d, want 3 of 6", pos, total)
	}
}
