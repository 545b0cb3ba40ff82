// Package tui renders a session in the terminal with bubbletea.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yanqian/vibecast/internal/domain/session"
	"github.com/yanqian/vibecast/internal/domain/weather"
)

// Session is the part of a session the terminal drives.
type Session interface {
	Query(text string)
	SelectSuggestion(index int) (weather.Location, error)
	UseDeviceLocation(locator session.DeviceLocator) error
}

type viewMsg session.View

type closedMsg struct{}

// Model is the bubbletea model for one terminal session.
type Model struct {
	sess     Session
	updates  <-chan session.View
	locator  session.DeviceLocator
	view     session.View
	input    string
	cursor   int
	notice   string
	width    int
	quitting bool
}

// New builds the model. updates must come from the same session's Subscribe.
func New(sess Session, updates <-chan session.View, locator session.DeviceLocator) Model {
	return Model{sess: sess, updates: updates, locator: locator}
}

// Init starts listening for session views.
func (m Model) Init() tea.Cmd {
	return waitForView(m.updates)
}

func waitForView(updates <-chan session.View) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return viewMsg(v)
	}
}

// Update handles session views and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case viewMsg:
		m.view = session.View(msg)
		if n := len(m.view.Query.Suggestions); m.cursor >= n {
			m.cursor = max(0, n-1)
		}
		return m, waitForView(m.updates)

	case closedMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case tea.KeyDown:
		if m.cursor < len(m.view.Query.Suggestions)-1 {
			m.cursor++
		}

	case tea.KeyEnter:
		if len(m.view.Query.Suggestions) == 0 {
			return m, nil
		}
		if _, err := m.sess.SelectSuggestion(m.cursor); err != nil {
			m.notice = "That suggestion is no longer available"
			return m, nil
		}
		m.input = ""
		m.cursor = 0
		m.notice = ""
		m.view.Query.Suggestions = nil

	case tea.KeyCtrlL:
		if err := m.sess.UseDeviceLocation(m.locator); err != nil {
			m.notice = "Hold on, still working on the last request"
			return m, nil
		}
		m.notice = ""

	case tea.KeyBackspace:
		if m.input == "" {
			return m, nil
		}
		runes := []rune(m.input)
		m.input = string(runes[:len(runes)-1])
		m.sess.Query(m.input)

	case tea.KeySpace:
		m.input += " "
		m.sess.Query(m.input)

	case tea.KeyRunes:
		m.input += string(msg.Runes)
		m.sess.Query(m.input)
	}
	return m, nil
}

// View renders the whole screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("VibeCast"))
	b.WriteString(subtleStyle.Render("  weather, styled"))
	b.WriteString("\n\n")

	placeholder := m.input
	if placeholder == "" {
		placeholder = subtleStyle.Render("Search for a city...")
	}
	b.WriteString(inputStyle.Render(placeholder + "_"))
	b.WriteString("\n")
	b.WriteString(m.renderSuggestions())
	b.WriteString("\n")

	if status := m.renderStatus(); status != "" {
		b.WriteString(status)
		b.WriteString("\n\n")
	}
	showWeather := m.view.Phase == session.PhaseGeneratingAdvice || m.view.Phase == session.PhaseReady
	if showWeather && m.view.Weather != nil {
		b.WriteString(renderWeather(*m.view.Weather, m.view.Condition))
		b.WriteString("\n\n")
	}
	if m.view.Phase == session.PhaseReady && m.view.Advice != nil {
		b.WriteString(m.renderAdvice())
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("type: search • ↑/↓: choose • enter: select • ctrl+l: my location • esc: quit"))
	return appStyle.Render(b.String())
}

func (m Model) renderSuggestions() string {
	q := m.view.Query
	if q.Searching && len(q.Suggestions) == 0 {
		return subtleStyle.Render("  searching...") + "\n"
	}
	var b strings.Builder
	for i, loc := range q.Suggestions {
		label := loc.Name
		if loc.Country != "" {
			label += subtleStyle.Render("  " + loc.Country)
		}
		if i == m.cursor {
			b.WriteString(selectedSuggestionStyle.Render("› " + label))
		} else {
			b.WriteString(suggestionStyle.Render(label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatus() string {
	if m.notice != "" {
		return statusStyle.Render(m.notice)
	}
	if m.view.Phase == session.PhaseFailed {
		return errorStyle.Render(m.view.Error)
	}
	if msg := phaseMessage(m.view.Phase); msg != "" {
		return statusStyle.Render(msg)
	}
	return ""
}

func phaseMessage(p session.Phase) string {
	switch p {
	case session.PhaseLocatingDevice:
		return "Locating you..."
	case session.PhaseFetchingWeather:
		return "Reading the clouds..."
	case session.PhaseGeneratingAdvice:
		return "Consulting the AI Stylist..."
	default:
		return ""
	}
}

func renderWeather(s weather.Snapshot, condition string) string {
	daylight := "Night"
	if s.IsDay {
		daylight = "Day"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(s.LocationName),
		temperatureStyle.Render(fmt.Sprintf("%.0f°C", s.Temperature))+"  "+condition,
		subtleStyle.Render(fmt.Sprintf("Wind %.0f km/h • Humidity %d%% • %s", s.WindSpeed, s.Humidity, daylight)),
	)
	return weatherStyle.Render(body)
}

func (m Model) renderAdvice() string {
	a := m.view.Advice
	vibe := vibeStyle.Render(fmt.Sprintf("%s  \"%s\"", a.Emoji, a.VibeDescription))
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render(cardTitleStyle.Render("Wear")+"\n"+a.OutfitSuggestion),
		" ",
		cardStyle.Render(cardTitleStyle.Render("Do")+"\n"+a.ActivityRecommendation),
	)
	return lipgloss.JoinVertical(lipgloss.Left, vibe, "", cards, "", renderPalette(a.ColorPalette))
}

func renderPalette(colors []string) string {
	blocks := make([]string, 0, 2*len(colors))
	for i, hex := range colors {
		if i > 0 {
			blocks = append(blocks, "  ")
		}
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("         ")
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Center, swatch, subtleStyle.Render(hex)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
