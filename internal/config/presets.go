package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"shopkeep/internal/shop"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var embeddedPresets []byte

type presetFile struct {
	Presets []presetRow `yaml:"presets"`
}

type presetRow struct {
	Name       string   `yaml:"name"`
	Currency   string   `yaml:"currency"`
	Reputation int      `yaml:"reputation"`
	Energy     int      `yaml:"energy"`
	Staff      []string `yaml:"staff"`
}

// Presets maps a preset name to the starting values of a session.
type Presets map[string]shop.Preset

// LoadPresets reads the embedded presets and, when path is set, lets the
// file add to or replace them by name.
func LoadPresets(path string) (Presets, error) {
	out := Presets{}
	if err := out.merge(embeddedPresets); err != nil {
		return nil, fmt.Errorf("embedded presets: %w", err)
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return out, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	if err := out.merge(raw); err != nil {
		return nil, fmt.Errorf("presets %s: %w", path, err)
	}
	return out, nil
}

func (p Presets) merge(raw []byte) error {
	var file presetFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return err
	}
	for _, row := range file.Presets {
		preset, err := row.toPreset()
		if err != nil {
			return err
		}
		p[preset.Name] = preset
	}
	return nil
}

func (r presetRow) toPreset() (shop.Preset, error) {
	name := strings.ToLower(strings.TrimSpace(r.Name))
	if name == "" {
		return shop.Preset{}, fmt.Errorf("preset name is required")
	}
	currency, err := decimal.NewFromString(strings.TrimSpace(r.Currency))
	if err != nil {
		return shop.Preset{}, fmt.Errorf("preset %q: currency: %w", name, err)
	}
	staff := make([]shop.StaffRole, 0, len(r.Staff))
	for _, s := range r.Staff {
		staff = append(staff, shop.StaffRole(strings.ToLower(strings.TrimSpace(s))))
	}
	preset := shop.Preset{
		Name:       name,
		Currency:   currency,
		Reputation: r.Reputation,
		Energy:     r.Energy,
		Staff:      staff,
	}
	if err := preset.Validate(); err != nil {
		return shop.Preset{}, err
	}
	return preset, nil
}

func (p Presets) Get(name string) (shop.Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	preset, ok := p[name]
	if !ok {
		return shop.Preset{}, fmt.Errorf("unknown preset %q (have %s)", name, strings.Join(p.Names(), ", "))
	}
	return preset, nil
}

func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
