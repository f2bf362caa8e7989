package app

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"costwise/internal/catalog"
	"costwise/internal/types"
	"costwise/internal/wizard"
)

type wizardHost interface {
	commitCmd() tea.Cmd
	setStatus(status string)
	quit() tea.Cmd
}

// fieldSpec is one editable field of a wizard step. The controller walks the
// current step's fields with a single shared text input, the way a form is
// filled top to bottom.
type fieldSpec struct {
	label       string
	placeholder string
	value       func(wizard.SessionFields) string
	apply       func(*wizard.Wizard, string) error
}

// WizardController drives one wizard session from key input. It owns no
// domain state beyond the focused field and the catalog listing; everything
// the user entered lives in the wizard session itself, so undo and redo
// re-render for free.
type WizardController struct {
	wiz           *wizard.Wizard
	input         *TextInput
	catalog       []types.IngredientSummary
	fieldIdx      int
	confirmCancel bool
	width         int
}

func NewWizardController(wiz *wizard.Wizard, width int) *WizardController {
	input := NewTextInput(width)
	c := &WizardController{wiz: wiz, input: input, width: width}
	c.prepareInput()
	return c
}

func (c *WizardController) Resize(width int) {
	c.width = width
	c.input.Resize(width)
}

func (c *WizardController) Wizard() *wizard.Wizard {
	return c.wiz
}

// SetCatalog hands the controller the ingredient listing used for cost
// figures and for resolving ingredient names in the preview.
func (c *WizardController) SetCatalog(ingredients []types.IngredientSummary) {
	c.catalog = ingredients
}

func (c *WizardController) Update(msg tea.Msg, host wizardHost) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return true, c.input.Update(msg)
	}
	key := keyMsg.String()

	if c.confirmCancel {
		switch key {
		case "y", "Y", "enter":
			c.wiz.Cancel()
			host.setStatus("wizard canceled")
			return true, host.quit()
		default:
			c.confirmCancel = false
			host.setStatus("")
			return true, nil
		}
	}

	switch key {
	case "esc":
		c.confirmCancel = true
		host.setStatus("discard this session? y/n")
		return true, nil
	case "ctrl+z":
		if c.wiz.Undo() {
			c.prepareInput()
			host.setStatus("undone")
		} else {
			host.setStatus("nothing to undo")
		}
		return true, nil
	case "ctrl+y":
		if c.wiz.Redo() {
			c.prepareInput()
			host.setStatus("redone")
		} else {
			host.setStatus("nothing to redo")
		}
		return true, nil
	case "ctrl+p", "shift+tab":
		c.goPrevious(host)
		return true, nil
	case "ctrl+n":
		c.goNext(host)
		return true, nil
	case "enter":
		return true, c.advance(host)
	case "tab":
		c.commitField(host)
		c.focusField(c.fieldIdx + 1)
		return true, nil
	}
	return true, c.input.Update(msg)
}

// advance commits the focused field and moves on: to the next field, to the
// next step once the step's fields are done, or to the commit call from the
// preview step.
func (c *WizardController) advance(host wizardHost) tea.Cmd {
	step := c.wiz.CurrentStep()
	if step == wizard.StepPreview {
		host.setStatus("saving")
		return host.commitCmd()
	}
	if !c.commitField(host) {
		return nil
	}
	fields := c.stepFields()
	if c.fieldIdx+1 < len(fields) {
		c.focusField(c.fieldIdx + 1)
		return nil
	}
	c.goNext(host)
	return nil
}

func (c *WizardController) goNext(host wizardHost) {
	if !c.commitField(host) {
		return
	}
	if err := c.wiz.GoNext(); err != nil {
		if stepErrs, ok := wizard.AsStepErrors(err); ok {
			host.setStatus(firstMessage(stepErrs))
			return
		}
		host.setStatus(err.Error())
		return
	}
	c.enterStep(host)
}

func (c *WizardController) goPrevious(host wizardHost) {
	c.commitField(host)
	if err := c.wiz.GoPrevious(); err != nil {
		host.setStatus(err.Error())
		return
	}
	c.enterStep(host)
}

func (c *WizardController) enterStep(host wizardHost) {
	c.fieldIdx = 0
	c.prepareInput()
	host.setStatus("")
	if c.wiz.CurrentStep() == wizard.StepCostCalculation {
		c.recomputeCost(host)
	}
}

func (c *WizardController) recomputeCost(host wizardHost) {
	if len(c.catalog) == 0 {
		host.setStatus("catalog not loaded, costs unavailable")
		return
	}
	if err := c.wiz.RecomputeCost(catalog.UnitCosts(c.catalog)); err != nil {
		host.setStatus(err.Error())
	}
}

// commitField writes the focused input back into the session. Returns false
// when the raw text does not parse; the session is left untouched then.
func (c *WizardController) commitField(host wizardHost) bool {
	fields := c.stepFields()
	if c.fieldIdx >= len(fields) {
		return true
	}
	spec := fields[c.fieldIdx]
	raw := c.input.Value()
	if raw == spec.value(c.wiz.Fields()) {
		return true
	}
	c.wiz.RecordBeforeChange()
	if err := spec.apply(c.wiz, raw); err != nil {
		c.wiz.DropLastRecord()
		host.setStatus(err.Error())
		return false
	}
	return true
}

func (c *WizardController) focusField(idx int) {
	fields := c.stepFields()
	if len(fields) == 0 {
		c.fieldIdx = 0
		return
	}
	c.fieldIdx = idx % len(fields)
	c.prepareInput()
}

func (c *WizardController) prepareInput() {
	fields := c.stepFields()
	if c.fieldIdx >= len(fields) {
		c.fieldIdx = 0
	}
	if len(fields) == 0 {
		c.input.SetPlaceholder("")
		c.input.SetValue("")
		return
	}
	spec := fields[c.fieldIdx]
	c.input.SetPlaceholder(spec.placeholder)
	c.input.SetValue(spec.value(c.wiz.Fields()))
	c.input.CursorEnd()
}

func (c *WizardController) stepFields() []fieldSpec {
	switch c.wiz.CurrentStep() {
	case wizard.StepCreationType:
		return []fieldSpec{{
			label:       "Create",
			placeholder: "recipe or menu-item",
			value: func(wizard.SessionFields) string {
				return string(c.wiz.Discriminator())
			},
			apply: applyDiscriminator,
		}}
	case wizard.StepBasicInfo:
		return []fieldSpec{
			{
				label:       "Name",
				placeholder: "e.g. Spaghetti Carbonara",
				value:       func(f wizard.SessionFields) string { return f.Basic.Name },
				apply: func(w *wizard.Wizard, raw string) error {
					basic := w.Fields().Basic
					basic.Name = strings.TrimSpace(raw)
					return w.Update(wizard.FieldsPatch{Basic: &basic})
				},
			},
			{
				label:       "Description",
				placeholder: "optional",
				value:       func(f wizard.SessionFields) string { return f.Basic.Description },
				apply: func(w *wizard.Wizard, raw string) error {
					basic := w.Fields().Basic
					basic.Description = strings.TrimSpace(raw)
					return w.Update(wizard.FieldsPatch{Basic: &basic})
				},
			},
			{
				label:       "Servings",
				placeholder: "4",
				value:       func(f wizard.SessionFields) string { return formatInt(f.Basic.Servings) },
				apply: func(w *wizard.Wizard, raw string) error {
					n, err := parseIntField(raw, "servings")
					if err != nil {
						return err
					}
					basic := w.Fields().Basic
					basic.Servings = n
					return w.Update(wizard.FieldsPatch{Basic: &basic})
				},
			},
		}
	case wizard.StepIngredients:
		return []fieldSpec{{
			label:       "Ingredients",
			placeholder: "id qty unit; id qty unit",
			value: func(f wizard.SessionFields) string {
				return formatIngredientLines(f.Ingredients)
			},
			apply: func(w *wizard.Wizard, raw string) error {
				lines, err := parseIngredientLines(raw)
				if err != nil {
					return err
				}
				return w.Update(wizard.FieldsPatch{Ingredients: &lines})
			},
		}}
	case wizard.StepPreparation:
		return []fieldSpec{
			{
				label:       "Instructions",
				placeholder: "optional",
				value:       func(f wizard.SessionFields) string { return f.Preparation.Instructions },
				apply: func(w *wizard.Wizard, raw string) error {
					prep := w.Fields().Preparation
					prep.Instructions = strings.TrimSpace(raw)
					return w.Update(wizard.FieldsPatch{Preparation: &prep})
				},
			},
			{
				label:       "Prep minutes",
				placeholder: "0",
				value:       func(f wizard.SessionFields) string { return formatInt(f.Preparation.PrepTimeMinutes) },
				apply: func(w *wizard.Wizard, raw string) error {
					n, err := parseIntField(raw, "prep time")
					if err != nil {
						return err
					}
					prep := w.Fields().Preparation
					prep.PrepTimeMinutes = n
					return w.Update(wizard.FieldsPatch{Preparation: &prep})
				},
			},
			{
				label:       "Cook minutes",
				placeholder: "0",
				value:       func(f wizard.SessionFields) string { return formatInt(f.Preparation.CookTimeMinutes) },
				apply: func(w *wizard.Wizard, raw string) error {
					n, err := parseIntField(raw, "cook time")
					if err != nil {
						return err
					}
					prep := w.Fields().Preparation
					prep.CookTimeMinutes = n
					return w.Update(wizard.FieldsPatch{Preparation: &prep})
				},
			},
		}
	case wizard.StepCostCalculation:
		return nil
	case wizard.StepSalesSettings:
		return []fieldSpec{
			{
				label:       "Category",
				placeholder: "e.g. mains",
				value:       func(f wizard.SessionFields) string { return f.Sales.Category },
				apply: func(w *wizard.Wizard, raw string) error {
					return applySales(w, func(s *wizard.SalesPatch) {
						s.Sales.Category = strings.TrimSpace(raw)
					})
				},
			},
			{
				label:       "Price",
				placeholder: "0.00",
				value:       func(f wizard.SessionFields) string { return formatFloat(f.Sales.Price) },
				apply: func(w *wizard.Wizard, raw string) error {
					v, err := parseFloatField(raw, "price")
					if err != nil {
						return err
					}
					return applySales(w, func(s *wizard.SalesPatch) {
						s.Sales.Price = v
						s.PriceEdited = true
					})
				},
			},
			{
				label:       "Margin %",
				placeholder: "0",
				value:       func(f wizard.SessionFields) string { return formatFloat(f.Sales.Margin) },
				apply: func(w *wizard.Wizard, raw string) error {
					v, err := parseFloatField(raw, "margin")
					if err != nil {
						return err
					}
					return applySales(w, func(s *wizard.SalesPatch) {
						s.Sales.Margin = v
						s.MarginEdited = true
					})
				},
			},
			{
				label:       "Available",
				placeholder: "yes or no",
				value: func(f wizard.SessionFields) string {
					if f.Sales.IsAvailable {
						return "yes"
					}
					return "no"
				},
				apply: func(w *wizard.Wizard, raw string) error {
					v, err := parseBoolField(raw, "available")
					if err != nil {
						return err
					}
					return applySales(w, func(s *wizard.SalesPatch) {
						s.Sales.IsAvailable = v
					})
				},
			},
		}
	case wizard.StepPreview:
		return nil
	}
	return nil
}

func applyDiscriminator(w *wizard.Wizard, raw string) error {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "recipe", "r":
		return w.ChooseDiscriminator(wizard.DiscriminatorRecipe)
	case "menu-item", "menu item", "m":
		return w.ChooseDiscriminator(wizard.DiscriminatorMenuItem)
	case "":
		return nil
	default:
		return fmt.Errorf("enter recipe or menu-item, not %q", strings.TrimSpace(raw))
	}
}

func applySales(w *wizard.Wizard, mutate func(*wizard.SalesPatch)) error {
	patch := wizard.SalesPatch{Sales: w.Fields().Sales}
	mutate(&patch)
	return w.Update(wizard.FieldsPatch{Sales: &patch})
}

func firstMessage(stepErrs *wizard.StepErrors) string {
	for _, step := range stepErrs.Steps {
		for _, msg := range stepErrs.Errors[step] {
			return msg
		}
	}
	return "validation failed"
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseIntField(raw, label string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", label)
	}
	return n, nil
}

func parseFloatField(raw, label string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", label)
	}
	return v, nil
}

func parseBoolField(raw, label string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "no", "n", "false":
		return false, nil
	case "yes", "y", "true":
		return true, nil
	default:
		return false, fmt.Errorf("%s must be yes or no", label)
	}
}

// formatIngredientLines renders ingredient lines in the editable
// "id qty unit; id qty unit" form.
func formatIngredientLines(lines []wizard.IngredientLine) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%d %s %s",
			line.IngredientID,
			strconv.FormatFloat(line.Quantity, 'f', -1, 64),
			line.Unit))
	}
	return strings.Join(parts, "; ")
}

func parseIngredientLines(raw string) ([]wizard.IngredientLine, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []wizard.IngredientLine{}, nil
	}
	parts := strings.Split(raw, ";")
	out := make([]wizard.IngredientLine, 0, len(parts))
	for _, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("ingredient %q must be id, quantity and unit", strings.TrimSpace(part))
		}
		id, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ingredient id %q must be a number", fields[0])
		}
		qty, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("quantity %q must be a number", fields[1])
		}
		out = append(out, wizard.IngredientLine{IngredientID: id, Quantity: qty, Unit: fields[2]})
	}
	return out, nil
}
