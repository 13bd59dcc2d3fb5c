package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/teammate/internal/config"
	"github.com/simonbystrom/teammate/internal/participant"
)

// Styles holds every lipgloss style the UI renders with.
type Styles struct {
	Title        lipgloss.Style
	Header       lipgloss.Style
	Selected     lipgloss.Style
	Leader       lipgloss.Style
	Thinker      lipgloss.Style
	Balanced     lipgloss.Style
	Skill        lipgloss.Style
	Notification lipgloss.Style
	Help         lipgloss.Style
	Border       lipgloss.Style
	Separator    lipgloss.Style
	WizardTitle  lipgloss.Style
	WizardActive lipgloss.Style
	WizardDim    lipgloss.Style
	Error        lipgloss.Style
	Logo         lipgloss.Style
	Team         lipgloss.Style
}

func NewStyles(c config.Colors) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Title)).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Header)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(c.SelectedBG)).
			Foreground(lipgloss.Color(c.SelectedFG)),
		Leader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Leader)).
			Bold(true),
		Thinker: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Thinker)),
		Balanced: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Balanced)),
		Skill: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Skill)),
		Notification: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Notification)).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Help)),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(1, 2),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Separator)),
		WizardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.WizardTitle)).
			MarginBottom(1),
		WizardActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.WizardActive)),
		WizardDim: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.WizardDim)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Error)).
			Bold(true),
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Logo)).
			Bold(true),
		Team: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Team)).
			Bold(true),
	}
}

// Personality returns the style for an archetype label.
func (s Styles) Personality(p participant.Personality) lipgloss.Style {
	switch p {
	case participant.PersonalityLeader:
		return s.Leader
	case participant.PersonalityThinker:
		return s.Thinker
	default:
		return s.Balanced
	}
}
