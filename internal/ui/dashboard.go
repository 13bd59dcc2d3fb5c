package ui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/simonbystrom/teammate/internal/orchestrator"
	"github.com/simonbystrom/teammate/internal/participant"
)

type sortMode int

const (
	sortByID sortMode = iota
	sortBySkill
	sortByPersonality
)

const maxNotifications = 10

type notification struct {
	text  string
	time  time.Time
	style lipgloss.Style
}

type dashboardModel struct {
	store         *participant.Store
	orch          *orchestrator.Orchestrator
	cursor        int
	notifications []notification
	width         int
	height        int
	err           string
	sortBy        sortMode
	styles        Styles
}

func newDashboard(s Styles, orch *orchestrator.Orchestrator, store *participant.Store) dashboardModel {
	return dashboardModel{
		store:  store,
		orch:   orch,
		styles: s,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.orch.LoadParticipantsCmd()
}

func (m *dashboardModel) notify(text string, style lipgloss.Style) {
	m.notifications = append(m.notifications, notification{
		text:  text,
		time:  time.Now(),
		style: style,
	})
	if len(m.notifications) > maxNotifications {
		m.notifications = m.notifications[len(m.notifications)-maxNotifications:]
	}
}

func (m *dashboardModel) clampCursor() {
	if n := m.store.Len(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case orchestrator.ParticipantsLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		text := fmt.Sprintf("Loaded %d participants from %s", msg.Count, m.orch.ParticipantsPath())
		style := m.styles.Notification
		if msg.Skipped > 0 {
			text += fmt.Sprintf(" (%d malformed rows skipped)", msg.Skipped)
			style = m.styles.Error
		}
		m.notify(text, style)
		m.clampCursor()
		return m, nil

	case surveyDoneMsg:
		m.notify(fmt.Sprintf("Added %s as %s (%s)", msg.participant.Name, msg.participant.ID, msg.participant.Personality()),
			m.styles.Personality(msg.participant.Personality()))
		return m, nil

	case removeDoneMsg:
		m.notify(fmt.Sprintf("Removed %s", msg.name), m.styles.Notification)
		m.clampCursor()
		return m, nil

	case orchestrator.FormationDoneMsg:
		if msg.Err != nil {
			m.notify("Team formation failed: "+msg.Err.Error(), m.styles.Error)
			return m, nil
		}
		f := msg.Formation
		m.notify(fmt.Sprintf("Formed %d teams of %d (variance %.3f -> %.3f, %d swaps)",
			len(f.Teams), f.TeamSize, f.Stats.InitialVariance, f.Stats.FinalVariance, f.Stats.Swaps), m.styles.Team)
		if f.SaveErr != nil {
			m.notify("Saving results failed: "+f.SaveErr.Error(), m.styles.Error)
		}
		return m, nil

	case tea.KeyMsg:
		m.err = ""

		ps := m.sortedParticipants()

		switch msg.String() {
		case "j", "down":
			if m.cursor < len(ps)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "s":
			m.sortBy = (m.sortBy + 1) % 3
		case "r":
			return m, m.orch.LoadParticipantsCmd()
		case "d":
			if len(ps) > 0 && m.cursor < len(ps) {
				p := ps[m.cursor]
				return m, func() tea.Msg {
					return startRemoveMsg{id: p.ID, name: p.Name, details: p.Details()}
				}
			}
		}
	}

	return m, nil
}

var personalityOrder = map[participant.Personality]int{
	participant.PersonalityLeader:   0,
	participant.PersonalityThinker:  1,
	participant.PersonalityBalanced: 2,
}

func (m dashboardModel) sortedParticipants() []*participant.Participant {
	ps := m.store.All()
	switch m.sortBy {
	case sortBySkill:
		slices.SortStableFunc(ps, func(a, b *participant.Participant) int {
			return cmp.Compare(b.Skill, a.Skill)
		})
	case sortByPersonality:
		slices.SortStableFunc(ps, func(a, b *participant.Participant) int {
			return cmp.Compare(personalityOrder[a.Personality()], personalityOrder[b.Personality()])
		})
	}
	return ps
}

func (m dashboardModel) sortLabel() string {
	switch m.sortBy {
	case sortBySkill:
		return "skill"
	case sortByPersonality:
		return "personality"
	default:
		return "id"
	}
}

func (m dashboardModel) ViewContent() string {
	var b strings.Builder

	b.WriteString(m.styles.Logo.Render(renderLogo(max(m.width-8, 0))))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Title.Render(fmt.Sprintf("pool: %s (%d participants)", m.orch.ParticipantsPath(), m.store.Len())))
	b.WriteString("\n")
	if f := m.orch.LastFormation(); f != nil {
		b.WriteString(m.styles.WizardDim.Render(fmt.Sprintf("  last run: %d teams of %d, seed %d, variance %.3f",
			len(f.Teams), f.TeamSize, f.Seed, f.Stats.FinalVariance)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	ps := m.sortedParticipants()
	if len(ps) == 0 {
		b.WriteString(m.styles.WizardDim.Render("  No participants yet. Press n to take the survey."))
		b.WriteString("\n")
	} else {
		header := fmt.Sprintf("  %-5s %-20s %-11s %-6s %-12s %-12s", "ID", "Name", "Activity", "Skill", "Role", "Personality")
		b.WriteString(m.styles.Header.Render(header))
		b.WriteString("\n")

		for i, p := range ps {
			// Pad styled cells by visual width; %-Ns counts ANSI escape bytes.
			skill := m.styles.Skill.Render(fmt.Sprintf("%d", p.Skill))
			skill += strings.Repeat(" ", max(6-lipgloss.Width(skill), 0))
			personality := m.styles.Personality(p.Personality()).Render(fmt.Sprintf("%s (%d)", p.Personality(), p.Score()))

			row := fmt.Sprintf("  %-5s %s %s %s %-12s %s",
				p.ID,
				pad(truncate(p.Name, 20), 20),
				pad(truncate(string(p.Activity), 11), 11),
				skill,
				p.Role,
				personality,
			)
			if i == m.cursor {
				row = m.styles.Selected.Render(row)
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	if len(m.notifications) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Header.Render("  ── Notifications ──"))
		b.WriteString("\n")
		for i := len(m.notifications) - 1; i >= 0; i-- {
			n := m.notifications[i]
			line := fmt.Sprintf("  %s %s", n.time.Format("15:04"), n.text)
			b.WriteString(n.style.Render(line))
			b.WriteString("\n")
		}
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("  Error: " + m.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(fmt.Sprintf("  n: survey │ f: form teams │ d: delete │ r: reload │ s: sort (%s) │ q: quit", m.sortLabel())))

	return b.String()
}

func (m dashboardModel) View() string {
	content := m.ViewContent()

	maxWidth := m.width - 4
	if maxWidth < 40 {
		maxWidth = 80
	}

	return m.styles.Border.Width(maxWidth).Render(content)
}

// truncate shortens s to max terminal cells, ending in "..." when there
// is room for it.
func truncate(s string, max int) string {
	if lipgloss.Width(s) <= max {
		return s
	}
	if max <= 3 {
		return ansi.Truncate(s, max, "")
	}
	return ansi.Truncate(s, max, "...")
}

// pad right-fills s with spaces to width cells.
func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}
