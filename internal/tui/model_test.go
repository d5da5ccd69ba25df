package tui

import (
	"io"
	"log/slog"
	"testing"

	"shopkeep/internal/shop"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zeroSource struct{}

func (zeroSource) Intn(int) int { return 0 }

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	for _, r := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func newTestModel(p shop.Preset) Model {
	s := shop.NewSession(
		shop.WithPreset(p),
		shop.WithSource(zeroSource{}),
		shop.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return New(s, 0)
}

func TestPersonaPickerGatesEverything(t *testing.T) {
	m := newTestModel(shop.StandardPreset())
	assert.Contains(t, m.View(), "Who is minding the shop today?")

	m = press(t, m, "stg")
	assert.Equal(t, 100, m.shop.Energy())
	assert.Empty(t, m.shop.VisibleLog(50))

	m = press(t, m, "2")
	assert.Equal(t, shop.PersonaSocial, m.shop.Role())
	assert.Equal(t, 95, m.shop.Reputation())
	assert.Contains(t, m.View(), "Xiaoyu's Shop")
}

func TestPlayLoop(t *testing.T) {
	m := newTestModel(shop.StandardPreset())
	m = press(t, m, "1")

	// hire the guard, then try again: the key is disabled once hired.
	m = press(t, m, "gg")
	assert.True(t, m.shop.Currency().Equal(decimal.NewFromInt(800)))
	assert.Contains(t, m.shop.Staff(), shop.StaffGuard)

	m = press(t, m, "t")
	assert.Equal(t, bannerCelebrate, m.banner)
	assert.Equal(t, 90, m.shop.Energy())
	assert.Contains(t, m.View(), "big client")

	m = press(t, m, "s")
	assert.Equal(t, 140, m.shop.Energy())
	assert.Equal(t, bannerNone, m.banner)
	assert.Len(t, m.shop.VisibleLog(50), 3)
}

func TestExhaustionAndBankruptBanners(t *testing.T) {
	m := newTestModel(shop.Preset{
		Name:     "broke",
		Currency: decimal.Zero,
		Energy:   0,
		Staff:    []shop.StaffRole{shop.StaffOwner},
	})
	m = press(t, m, "3t")
	assert.Equal(t, bannerExhausted, m.banner)
	view := m.View()
	assert.Contains(t, view, "Too exhausted")
	assert.Contains(t, view, "till is empty")
	assert.Empty(t, m.shop.VisibleLog(50))
}

func TestResetReturnsToPicker(t *testing.T) {
	m := newTestModel(shop.StandardPreset())
	m = press(t, m, "3sx")
	assert.True(t, m.keys.picking)
	assert.Equal(t, shop.PersonaNone, m.shop.Role())
	assert.Equal(t, 100, m.shop.Energy())
	assert.Empty(t, m.shop.VisibleLog(50))
}

func TestQuit(t *testing.T) {
	m := newTestModel(shop.StandardPreset())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
