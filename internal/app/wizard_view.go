package app

import (
	"fmt"
	"strings"

	"costwise/internal/catalog"
	"costwise/internal/wizard"
)

func (c *WizardController) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.title()))
	b.WriteString("\n")
	b.WriteString(c.progressLine())
	b.WriteString("\n\n")
	b.WriteString(c.stepView())

	if messages := c.wiz.Errors(c.wiz.CurrentStep()); len(messages) > 0 {
		b.WriteString("\n")
		for _, msg := range messages {
			b.WriteString(errorStyle.Render("! " + msg))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(c.hints()))
	return b.String()
}

func (c *WizardController) title() string {
	switch c.wiz.Discriminator() {
	case wizard.DiscriminatorRecipe:
		if c.wiz.EditTarget() != "" {
			return "Edit recipe"
		}
		return "New recipe"
	case wizard.DiscriminatorMenuItem:
		if c.wiz.EditTarget() != "" {
			return "Edit menu item"
		}
		return "New menu item"
	default:
		return "Create"
	}
}

func (c *WizardController) progressLine() string {
	position, total := c.wiz.StepCount()
	current := c.wiz.CurrentStep()
	line := fmt.Sprintf("Step %d of %d (%d%%)", position, total, c.wiz.Progress())

	trail := make([]string, 0, total)
	for _, def := range c.wiz.RequiredSteps() {
		name := def.Title
		switch {
		case def.ID == current:
			name = stepStyle.Render("[" + name + "]")
		case c.wiz.StepCompleted(def.ID):
			name = completeStyle.Render(name)
		default:
			name = mutedStyle.Render(name)
		}
		trail = append(trail, name)
	}
	return line + "  " + strings.Join(trail, " > ")
}

func (c *WizardController) stepView() string {
	fields := c.wiz.Fields()
	switch c.wiz.CurrentStep() {
	case wizard.StepCreationType:
		return c.fieldListView()
	case wizard.StepBasicInfo:
		return c.fieldListView()
	case wizard.StepIngredients:
		var b strings.Builder
		b.WriteString(c.fieldListView())
		if len(fields.Ingredients) > 0 {
			b.WriteString("\n")
			b.WriteString(c.ingredientTable(fields.Ingredients))
		}
		return b.String()
	case wizard.StepPreparation:
		return c.fieldListView()
	case wizard.StepCostCalculation:
		var b strings.Builder
		b.WriteString(labelStyle.Render("Ingredient cost:") + fmt.Sprintf(" %.2f\n", fields.Cost.IngredientCost))
		b.WriteString(labelStyle.Render("Cost per serving:") + fmt.Sprintf(" %.2f\n", fields.Cost.CostPerServing))
		if len(c.catalog) == 0 {
			b.WriteString(mutedStyle.Render("catalog unavailable, showing last known figures") + "\n")
		}
		return b.String()
	case wizard.StepSalesSettings:
		return c.fieldListView()
	case wizard.StepPreview:
		return c.previewView(fields)
	}
	return ""
}

func (c *WizardController) fieldListView() string {
	specs := c.stepFields()
	fields := c.wiz.Fields()
	var b strings.Builder
	for i, spec := range specs {
		label := labelStyle.Render(spec.label + ":")
		if i == c.fieldIdx {
			b.WriteString(fmt.Sprintf("%s %s\n", label, c.input.View()))
			continue
		}
		value := spec.value(fields)
		if strings.TrimSpace(value) == "" {
			value = mutedStyle.Render("<empty>")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", label, value))
	}
	return b.String()
}

func (c *WizardController) ingredientTable(lines []wizard.IngredientLine) string {
	var b strings.Builder
	for _, line := range lines {
		name := fmt.Sprintf("#%d", line.IngredientID)
		cost := ""
		if ing, ok := catalog.FindByID(c.catalog, line.IngredientID); ok {
			name = ing.Name
			cost = fmt.Sprintf("  %.2f", ing.UnitCost*line.Quantity)
		}
		b.WriteString(fmt.Sprintf("  %s  %s %s%s\n",
			name,
			formatFloat(line.Quantity),
			line.Unit,
			cost))
	}
	return b.String()
}

func (c *WizardController) previewView(fields wizard.SessionFields) string {
	var b strings.Builder
	writeRow := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			value = mutedStyle.Render("<empty>")
		}
		b.WriteString(labelStyle.Render(label+":") + " " + value + "\n")
	}

	writeRow("Name", fields.Basic.Name)
	writeRow("Description", fields.Basic.Description)
	writeRow("Servings", formatInt(fields.Basic.Servings))
	b.WriteString(labelStyle.Render("Ingredients:") + "\n")
	b.WriteString(c.ingredientTable(fields.Ingredients))
	writeRow("Instructions", fields.Preparation.Instructions)
	writeRow("Prep minutes", formatInt(fields.Preparation.PrepTimeMinutes))
	writeRow("Cook minutes", formatInt(fields.Preparation.CookTimeMinutes))
	writeRow("Ingredient cost", fmt.Sprintf("%.2f", fields.Cost.IngredientCost))
	writeRow("Cost per serving", fmt.Sprintf("%.2f", fields.Cost.CostPerServing))
	if c.wiz.Discriminator() == wizard.DiscriminatorMenuItem {
		writeRow("Category", fields.Sales.Category)
		writeRow("Price", formatFloat(fields.Sales.Price))
		writeRow("Margin %", formatFloat(fields.Sales.Margin))
		available := "no"
		if fields.Sales.IsAvailable {
			available = "yes"
		}
		writeRow("Available", available)
	}
	return b.String()
}

func (c *WizardController) hints() string {
	if c.confirmCancel {
		return "y to discard • any other key to keep editing"
	}
	if c.wiz.Busy() {
		return "saving…"
	}
	parts := []string{}
	switch c.wiz.CurrentStep() {
	case wizard.StepPreview:
		parts = append(parts, "Enter to save")
	default:
		parts = append(parts, "Enter to continue")
	}
	parts = append(parts, "Ctrl+P back")
	if c.wiz.CanUndo() {
		parts = append(parts, "Ctrl+Z undo")
	}
	if c.wiz.CanRedo() {
		parts = append(parts, "Ctrl+Y redo")
	}
	parts = append(parts, "Esc cancel")
	return strings.Join(parts, " • ")
}
