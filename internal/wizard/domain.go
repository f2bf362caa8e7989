package wizard

import (
	"errors"
	"fmt"
	"strings"
)

// StepID identifies one step of the creation flow. The set is closed: hosts
// rendering steps are expected to switch over every constant below.
type StepID string

const (
	StepCreationType    StepID = "creation-type"
	StepBasicInfo       StepID = "basic-info"
	StepIngredients     StepID = "ingredients"
	StepPreparation     StepID = "preparation"
	StepCostCalculation StepID = "cost-calculation"
	StepSalesSettings   StepID = "sales-settings"
	StepPreview         StepID = "preview"
)

// Discriminator is the recipe-vs-menu-item choice made on the first step. It
// decides which later steps are required.
type Discriminator string

const (
	DiscriminatorNone     Discriminator = ""
	DiscriminatorRecipe   Discriminator = "recipe"
	DiscriminatorMenuItem Discriminator = "menu-item"
)

func (d Discriminator) Valid() bool {
	return d == DiscriminatorRecipe || d == DiscriminatorMenuItem
}

// StepDefinition describes one entry of the fixed master step list.
type StepDefinition struct {
	ID          StepID
	Title       string
	Optional    bool
	RequiredFor []Discriminator
}

func (s StepDefinition) requiredFor(d Discriminator) bool {
	if s.Optional {
		return false
	}
	if len(s.RequiredFor) == 0 {
		return true
	}
	for _, want := range s.RequiredFor {
		if want == d {
			return true
		}
	}
	return false
}

// BasicInfo is the identity sub-object of the session fields.
type BasicInfo struct {
	Name        string
	Description string
	Servings    int
}

// IngredientLine is one ingredient row entered in the ingredients step.
type IngredientLine struct {
	IngredientID int64
	Quantity     float64
	Unit         string
}

// Preparation holds the instruction text and timings.
type Preparation struct {
	Instructions    string
	PrepTimeMinutes int
	CookTimeMinutes int
}

// CostFigures are the computed cost totals shown in the cost step.
type CostFigures struct {
	IngredientCost float64
	CostPerServing float64
}

// SalesSettings is the menu-item-only pricing block.
type SalesSettings struct {
	Category    string
	Price       float64
	Margin      float64
	IsAvailable bool
}

// SessionFields is the full accumulated wizard data. Each sub-object is
// replaced wholesale by an update; sub-objects are never merged field by
// field across an update boundary.
type SessionFields struct {
	Basic       BasicInfo
	Ingredients []IngredientLine
	Preparation Preparation
	Cost        CostFigures
	Sales       SalesSettings
}

// FieldsPatch carries the sub-objects to replace. A nil entry leaves the
// corresponding sub-object untouched. CurrentStep exists only so that stray
// attempts to drive navigation through the store can be rejected and logged;
// it is never applied.
type FieldsPatch struct {
	Basic       *BasicInfo
	Ingredients *[]IngredientLine
	Preparation *Preparation
	Cost        *CostFigures
	Sales       *SalesPatch

	CurrentStep *StepID
}

// SalesPatch is a sales-settings replacement annotated with which derived
// field the user actually edited, so price/margin resolution is
// last-edited-wins instead of guessing.
type SalesPatch struct {
	Sales        SalesSettings
	PriceEdited  bool
	MarginEdited bool
}

var (
	ErrSessionClosed     = errors.New("wizard session is closed")
	ErrSessionBusy       = errors.New("wizard session is busy committing")
	ErrStepNotFound      = errors.New("wizard step not found")
	ErrNavigationRefused = errors.New("wizard navigation refused")
	ErrValidationFailed  = errors.New("wizard validation failed")
	ErrDiscriminatorLocked = errors.New(
		"wizard discriminator can only change on the creation type step")
	ErrCommitFailed = errors.New("wizard commit failed")
	ErrNoGateway    = errors.New("wizard has no API gateway configured")
)

// StepErrors is a validation failure keyed by step. Steps preserves the
// required-step ordering so the first failing step is reported first.
type StepErrors struct {
	Steps  []StepID
	Errors map[StepID][]string
}

func (e *StepErrors) Error() string {
	if e == nil || len(e.Steps) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, 0, len(e.Steps))
	for _, step := range e.Steps {
		messages := e.Errors[step]
		if len(messages) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", step, strings.Join(messages, "; ")))
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(parts, " | "))
}

func (e *StepErrors) Unwrap() error {
	return ErrValidationFailed
}

// AsStepErrors extracts step-keyed validation detail from an error chain.
func AsStepErrors(err error) (*StepErrors, bool) {
	var stepErrs *StepErrors
	if errors.As(err, &stepErrs) {
		return stepErrs, true
	}
	return nil, false
}

// cloneFields makes a deep copy. SessionFields only nests one slice; keeping
// this correct is what keeps history snapshots valid after later merges.
func cloneFields(fields SessionFields) SessionFields {
	cloned := fields
	if fields.Ingredients != nil {
		cloned.Ingredients = append([]IngredientLine(nil), fields.Ingredients...)
	}
	return cloned
}

func cloneLines(lines []IngredientLine) []IngredientLine {
	if lines == nil {
		return nil
	}
	return append([]IngredientLine(nil), lines...)
}
