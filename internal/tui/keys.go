package tui

import (
	"fmt"

	"shopkeep/internal/shop"

	"github.com/charmbracelet/bubbles/key"
)

type hireKey struct {
	role    shop.StaffRole
	binding key.Binding
}

type keyMap struct {
	Personas []key.Binding
	Spin     key.Binding
	Tick     key.Binding
	Hire     []hireKey
	Reset    key.Binding
	Quit     key.Binding
	picking  bool
}

func newKeyMap() keyMap {
	km := keyMap{
		Spin:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "lunch roulette")),
		Tick:  key.NewBinding(key.WithKeys("t", " "), key.WithHelp("t/space", "pass time")),
		Reset: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close shop")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	for i, p := range shop.Personas {
		k := fmt.Sprint(i + 1)
		km.Personas = append(km.Personas, key.NewBinding(key.WithKeys(k), key.WithHelp(k, p.Title())))
	}
	hotkeys := []string{"c", "l", "g", "k", "f"}
	n := 0
	for _, spec := range shop.StaffCatalog() {
		if !spec.Hirable || n >= len(hotkeys) {
			continue
		}
		k := hotkeys[n]
		n++
		km.Hire = append(km.Hire, hireKey{
			role: spec.Role,
			binding: key.NewBinding(key.WithKeys(k),
				key.WithHelp(k, fmt.Sprintf("hire %s ¥%s", spec.Title, spec.Cost.StringFixed(0)))),
		})
	}
	return km
}

// syncHire hides the hire keys for roles already on staff.
func (km *keyMap) syncHire(s *shop.Session) {
	for i := range km.Hire {
		km.Hire[i].binding.SetEnabled(!hasRole(s.Staff(), km.Hire[i].role))
	}
}

func hasRole(staff []shop.StaffRole, role shop.StaffRole) bool {
	for _, r := range staff {
		if r == role {
			return true
		}
	}
	return false
}

func (km keyMap) ShortHelp() []key.Binding {
	if km.picking {
		return append(append([]key.Binding{}, km.Personas...), km.Quit)
	}
	return []key.Binding{km.Spin, km.Tick, km.Reset, km.Quit}
}

func (km keyMap) FullHelp() [][]key.Binding {
	if km.picking {
		return [][]key.Binding{km.ShortHelp()}
	}
	hire := make([]key.Binding, 0, len(km.Hire))
	for _, h := range km.Hire {
		hire = append(hire, h.binding)
	}
	return [][]key.Binding{km.ShortHelp(), hire}
}
