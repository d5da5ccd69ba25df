// Package tui is the interactive terminal front end. It drives one
// in-process shop session; nothing goes over the network.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"shopkeep/internal/shop"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type bannerKind int

const (
	bannerNone bannerKind = iota
	bannerCelebrate
	bannerExhausted
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	sidebarStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1).Width(34)
	logStyle     = lipgloss.NewStyle().Padding(0, 2)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	celebrate    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")).Padding(0, 1)
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	dangerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	severityFg   = map[shop.Severity]lipgloss.Color{
		shop.SeverityInfo:    lipgloss.Color("252"),
		shop.SeveritySuccess: lipgloss.Color("42"),
		shop.SeverityWarning: lipgloss.Color("214"),
		shop.SeverityDanger:  lipgloss.Color("196"),
	}
)

type Model struct {
	shop   *shop.Session
	keys   keyMap
	help   help.Model
	window int
	banner bannerKind
	width  int
}

func New(s *shop.Session, window int) Model {
	if window <= 0 {
		window = shop.DefaultLogWindow
	}
	s.EnsureInitialized()
	m := Model{shop: s, keys: newKeyMap(), help: help.New(), window: window}
	m.keys.picking = s.Role() == shop.PersonaNone
	m.keys.syncHire(s)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.keys.picking {
			return m.pickPersona(msg), nil
		}
		return m.act(msg), nil
	}
	return m, nil
}

func (m Model) pickPersona(msg tea.KeyMsg) Model {
	for i, b := range m.keys.Personas {
		if key.Matches(msg, b) {
			m.shop.SetRole(shop.Personas[i])
			m.keys.picking = false
			m.banner = bannerNone
			return m
		}
	}
	return m
}

func (m Model) act(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Spin):
		m.shop.Spin()
		m.banner = bannerNone
	case key.Matches(msg, m.keys.Tick):
		out, err := m.shop.AdvanceTime()
		switch {
		case errors.Is(err, shop.ErrBlockedByExhaustion):
			m.banner = bannerExhausted
		case out.Celebrate:
			m.banner = bannerCelebrate
		default:
			m.banner = bannerNone
		}
	case key.Matches(msg, m.keys.Reset):
		m.shop.Reset()
		m.shop.EnsureInitialized()
		m.keys.picking = true
		m.banner = bannerNone
	default:
		for _, h := range m.keys.Hire {
			if key.Matches(msg, h.binding) {
				m.shop.Hire(h.role)
				break
			}
		}
	}
	m.keys.syncHire(m.shop)
	return m
}

func (m Model) View() string {
	if m.keys.picking {
		return m.pickerView()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), m.logView())
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("🏪 Xiaoyu's Shop"),
		m.bannerView(),
		body,
		m.help.View(m.keys),
	)
}

func (m Model) pickerView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Who is minding the shop today?"))
	b.WriteString("\n\n")
	for i, p := range shop.Personas {
		fmt.Fprintf(&b, "  [%d] %s\n      %s\n", i+1, p.Title(), labelStyle.Render(p.Blurb()))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) sidebar() string {
	st := m.shop.Snapshot()
	staff := make([]string, 0, len(st.Staff))
	for _, r := range st.Staff {
		staff = append(staff, r.Title())
	}
	lines := []string{
		labelStyle.Render("Role        ") + st.Role.Title(),
		labelStyle.Render("Cash        ") + "¥" + st.Currency.StringFixed(0),
		labelStyle.Render("Energy      ") + fmt.Sprint(st.Energy),
		labelStyle.Render("Reputation  ") + fmt.Sprint(st.Reputation),
		"",
		labelStyle.Render("Staff"),
		"  " + strings.Join(staff, ", "),
		"",
		labelStyle.Render("Last lunch"),
		"  " + st.LastLunch,
	}
	var hire []string
	for _, h := range m.keys.Hire {
		if h.binding.Enabled() {
			hk := h.binding.Help()
			hire = append(hire, fmt.Sprintf("  [%s] %s", hk.Key, hk.Desc))
		}
	}
	if len(hire) > 0 {
		lines = append(lines, "", labelStyle.Render("Hiring"))
		lines = append(lines, hire...)
	}
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) logView() string {
	entries := m.shop.VisibleLog(m.window)
	if len(entries) == 0 {
		return logStyle.Render(labelStyle.Render("Quiet so far. Press t to open the doors."))
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, lipgloss.NewStyle().Foreground(severityFg[e.Severity]).Render(e.String()))
	}
	return logStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) bannerView() string {
	var parts []string
	switch {
	case m.banner == bannerCelebrate:
		parts = append(parts, celebrate.Render("🎉 A big client just walked in!"))
	case m.banner == bannerExhausted || m.shop.Energy() <= 0:
		parts = append(parts, warnStyle.Render("😵 Too exhausted to work. Spin the lunch roulette (s) first."))
	}
	if m.shop.IsBankrupt() {
		parts = append(parts, dangerStyle.Render("💸 The till is empty. Close shop (x) to start over."))
	}
	return strings.Join(parts, "\n")
}
