package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"costwise/internal/catalog"
	"costwise/internal/types"
	"costwise/internal/wizard"
)

type catalogMsg struct {
	ingredients []types.IngredientSummary
	err         error
}

type commitResultMsg struct {
	entity types.Entity
	err    error
}

func fetchCatalogCmd(provider catalog.Provider) tea.Cmd {
	return func() tea.Msg {
		ingredients, err := provider.ListIngredients(context.Background())
		return catalogMsg{ingredients: ingredients, err: err}
	}
}

func commitSessionCmd(wiz *wizard.Wizard) tea.Cmd {
	return func() tea.Msg {
		entity, err := wiz.Commit(context.Background())
		return commitResultMsg{entity: entity, err: err}
	}
}
