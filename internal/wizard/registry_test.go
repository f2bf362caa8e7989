package wizard

import "testing"

func TestRequiredStepsShapeForEveryDiscriminator(t *testing.T) {
	for _, d := range []Discriminator{DiscriminatorNone, DiscriminatorRecipe, DiscriminatorMenuItem} {
		steps := RequiredSteps(d)
		if len(steps) == 0 {
			t.Fatalf("discriminator %q: expected non-empty step list", d)
		}
		if steps[0].ID != StepCreationType {
			t.Fatalf("discriminator %q: expected first step %q, got %q", d, StepCreationType, steps[0].ID)
		}
		if steps[len(steps)-1].ID != StepPreview {
			t.Fatalf("discriminator %q: expected last step %q, got %q", d, StepPreview, steps[len(steps)-1].ID)
		}
	}
}

func TestSalesSettingsRequiredOnlyForMenuItems(t *testing.T) {
	if idx := StepIndex(StepSalesSettings, DiscriminatorMenuItem); idx < 0 {
		t.Fatalf("expected sales-settings in menu item flow")
	}
	if idx := StepIndex(StepSalesSettings, DiscriminatorRecipe); idx >= 0 {
		t.Fatalf("did not expect sales-settings in recipe flow, found at %d", idx)
	}
	if idx := StepIndex(StepSalesSettings, DiscriminatorNone); idx >= 0 {
		t.Fatalf("did not expect sales-settings before a choice, found at %d", idx)
	}
}

func TestRequiredStepsIsStableAcrossCalls(t *testing.T) {
	first := RequiredSteps(DiscriminatorMenuItem)
	// Mutating a returned slice must not leak into later calls.
	first[0].Title = "mutated"
	first[0].ID = StepID("mutated")
	second := RequiredSteps(DiscriminatorMenuItem)
	if second[0].ID != StepCreationType {
		t.Fatalf("master list was mutated through a returned slice")
	}
	if len(first) != len(second) {
		t.Fatalf("expected stable length, got %d then %d", len(first), len(second))
	}
}

func TestStepIndexUnknownStep(t *testing.T) {
	if idx := StepIndex(StepID("bogus"), DiscriminatorRecipe); idx != -1 {
		t.Fatalf("expected -1 for unknown step, got %d", idx)
	}
}

func TestStepTitleFallsBackToID(t *testing.T) {
	if title := StepTitle(StepBasicInfo); title != "Basic Info" {
		t.Fatalf("unexpected title %q", title)
	}
	if title := StepTitle(StepID("bogus")); title != "bogus" {
		t.Fatalf("expected id fallback, got %q", title)
	}
}
