package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"costwise/internal/catalog"
	"costwise/internal/wizard"
)

const minContentWidth = 40

type Model struct {
	controller *WizardController
	provider   catalog.Provider
	status     string
	width      int
	height     int
}

func NewModel(wiz *wizard.Wizard, provider catalog.Provider) Model {
	return Model{
		controller: NewWizardController(wiz, minContentWidth),
		provider:   provider,
	}
}

func Run(wiz *wizard.Wizard, provider catalog.Provider) error {
	model := NewModel(wiz, provider)
	p := tea.NewProgram(&model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	if m.provider == nil {
		return nil
	}
	return fetchCatalogCmd(m.provider)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.width < minContentWidth {
			m.width = minContentWidth
		}
		m.controller.Resize(m.width)
		return m, nil
	case catalogMsg:
		if msg.err != nil {
			m.status = "catalog error: " + msg.err.Error()
			return m, nil
		}
		m.controller.SetCatalog(msg.ingredients)
		return m, nil
	case commitResultMsg:
		if msg.err != nil {
			if stepErrs, ok := wizard.AsStepErrors(msg.err); ok {
				m.status = firstMessage(stepErrs)
			} else {
				m.status = "save failed: " + msg.err.Error()
			}
			return m, nil
		}
		m.status = "saved " + msg.entity.Name
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.controller.Wizard().Cancel()
			return m, tea.Quit
		}
		_, cmd := m.controller.Update(msg, m)
		return m, cmd
	}
	_, cmd := m.controller.Update(msg, m)
	return m, cmd
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.controller.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
	}
	return b.String()
}

func (m *Model) commitCmd() tea.Cmd {
	return commitSessionCmd(m.controller.Wizard())
}

func (m *Model) setStatus(status string) {
	m.status = status
}

func (m *Model) quit() tea.Cmd {
	return tea.Quit
}
