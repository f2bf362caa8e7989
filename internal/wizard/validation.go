package wizard

import (
	"fmt"
	"strings"
)

// Validate runs the rule set for one step and returns its error messages in
// rule order; the first message is the one shown first. Pure and
// deterministic.
func Validate(step StepID, fields SessionFields, d Discriminator) []string {
	switch step {
	case StepCreationType:
		return validateCreationType(d)
	case StepBasicInfo:
		return validateBasicInfo(fields.Basic)
	case StepIngredients:
		return validateIngredients(fields.Ingredients)
	case StepPreparation:
		return validatePreparation(fields.Preparation)
	case StepSalesSettings:
		return validateSalesSettings(fields.Sales)
	case StepCostCalculation, StepPreview:
		return nil
	default:
		return []string{fmt.Sprintf("unknown step %q", string(step))}
	}
}

// ValidateAll runs Validate across every step required for the discriminator
// and returns the failures keyed by step, with Steps preserving the
// required-step ordering. Used at commit time only; interim navigation never
// validates beyond the current step.
func ValidateAll(fields SessionFields, d Discriminator) *StepErrors {
	var failed []StepID
	byStep := map[StepID][]string{}
	for _, step := range RequiredSteps(d) {
		messages := Validate(step.ID, fields, d)
		if len(messages) == 0 {
			continue
		}
		failed = append(failed, step.ID)
		byStep[step.ID] = messages
	}
	if len(failed) == 0 {
		return nil
	}
	return &StepErrors{Steps: failed, Errors: byStep}
}

func validateCreationType(d Discriminator) []string {
	if !d.Valid() {
		return []string{"choose whether to create a recipe or a menu item"}
	}
	return nil
}

func validateBasicInfo(basic BasicInfo) []string {
	var errs []string
	if strings.TrimSpace(basic.Name) == "" {
		errs = append(errs, "name is required")
	}
	if basic.Servings < 1 {
		errs = append(errs, "servings must be at least 1")
	}
	return errs
}

func validateIngredients(lines []IngredientLine) []string {
	if len(lines) == 0 {
		return []string{"add at least one ingredient"}
	}
	var errs []string
	for i, line := range lines {
		if line.IngredientID <= 0 {
			errs = append(errs, fmt.Sprintf("ingredient %d has no catalog selection", i+1))
		}
		if line.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("ingredient %d needs a quantity greater than zero", i+1))
		}
		if strings.TrimSpace(line.Unit) == "" {
			errs = append(errs, fmt.Sprintf("ingredient %d is missing a unit", i+1))
		}
	}
	return errs
}

func validatePreparation(prep Preparation) []string {
	var errs []string
	if prep.PrepTimeMinutes < 0 {
		errs = append(errs, "prep time cannot be negative")
	}
	if prep.CookTimeMinutes < 0 {
		errs = append(errs, "cook time cannot be negative")
	}
	return errs
}

func validateSalesSettings(sales SalesSettings) []string {
	var errs []string
	if sales.Price <= 0 {
		errs = append(errs, "price must be greater than zero")
	}
	if sales.Margin < 0 || sales.Margin >= 100 {
		errs = append(errs, "margin must be between 0 and 100 percent")
	}
	return errs
}
