package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Preset is a saved tuning: an FM frequency plus the HD program index.
type Preset struct {
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"`
	Program   int     `json:"program"`
}

// Key identifies a preset by its tuning, not its name.
func (p Preset) Key() string {
	return fmt.Sprintf("%.1f/%d", p.Frequency, p.Program)
}

type Presets struct {
	mu    sync.Mutex
	path  string
	items map[string]Preset
}

type presetsFile struct {
	Stations []Preset `json:"stations"`
}

func LoadPresets() (*Presets, error) {
	path, err := presetsPath()
	if err != nil {
		return nil, err
	}

	ps := &Presets{
		path:  path,
		items: map[string]Preset{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ps, nil
		}
		return nil, err
	}

	var stored presetsFile
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	for _, p := range stored.Stations {
		if p.Frequency > 0 {
			ps.items[p.Key()] = p
		}
	}

	return ps, nil
}

// Toggle adds the preset when absent and removes it when present,
// reporting whether it is saved afterwards.
func (p *Presets) Toggle(preset Preset) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if preset.Frequency <= 0 {
		return false, errors.New("preset frequency is required")
	}

	key := preset.Key()
	if _, ok := p.items[key]; ok {
		delete(p.items, key)
		return false, p.saveLocked()
	}

	p.items[key] = preset
	return true, p.saveLocked()
}

func (p *Presets) IsPreset(frequency float64, program int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.items[Preset{Frequency: frequency, Program: program}.Key()]
	return ok
}

func (p *Presets) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// List returns the presets ordered by frequency, then program.
func (p *Presets) List() []Preset {
	p.mu.Lock()
	defer p.mu.Unlock()

	list := make([]Preset, 0, len(p.items))
	for _, preset := range p.items {
		list = append(list, preset)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Frequency == list[j].Frequency {
			return list[i].Program < list[j].Program
		}
		return list[i].Frequency < list[j].Frequency
	})
	return list
}

func (p *Presets) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}

	list := make([]Preset, 0, len(p.items))
	for _, preset := range p.items {
		list = append(list, preset)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Frequency == list[j].Frequency {
			return list[i].Program < list[j].Program
		}
		return list[i].Frequency < list[j].Frequency
	})

	data, err := json.MarshalIndent(presetsFile{Stations: list}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

func presetsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "hdfm", "presets.json"), nil
}
