package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"finboard/internal/core"
)

// Seed is the on-disk fixture format. Field names match the API's JSON so
// an API dump can be used as a seed unchanged.
type Seed struct {
	Accounts     []core.Account     `json:"accounts"`
	Transactions []core.Transaction `json:"transactions"`
	Assets       []core.Asset       `json:"assets"`
	Debts        []core.Debt        `json:"debts"`
	Insights     []core.Insight     `json:"insights"`
}

// ParseSeed decodes a YAML (or JSON) fixture. The document is normalised to
// JSON first so records decode through their JSON tags and the decimal and
// date codecs.
func ParseSeed(data []byte) (Seed, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return Seed{}, fmt.Errorf("normalise seed: %w", err)
	}
	var s Seed
	if err := json.Unmarshal(raw, &s); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	return s, nil
}

// NewFromSeed returns a store holding every record of seed. The first
// invalid record aborts loading.
func NewFromSeed(seed Seed) (*Store, error) {
	s := New()
	for _, a := range seed.Accounts {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("seed account %q: %w", a.Name, err)
		}
		a.ID = s.assignID(a.ID)
		if _, err := s.accounts.add(a); err != nil {
			return nil, err
		}
	}
	for _, t := range seed.Transactions {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("seed transaction %q: %w", t.Description, err)
		}
		t.ID = s.assignID(t.ID)
		if _, err := s.transactions.add(t); err != nil {
			return nil, err
		}
	}
	for _, a := range seed.Assets {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("seed asset %q: %w", a.Name, err)
		}
		a.ID = s.assignID(a.ID)
		if _, err := s.assets.add(a); err != nil {
			return nil, err
		}
	}
	for _, d := range seed.Debts {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("seed debt %q: %w", d.Name, err)
		}
		d.ID = s.assignID(d.ID)
		if _, err := s.debts.add(d); err != nil {
			return nil, err
		}
	}
	for _, i := range seed.Insights {
		if err := s.AddInsight(i); err != nil {
			return nil, fmt.Errorf("seed insight %q: %w", i.Title, err)
		}
	}
	return s, nil
}

// NewFromFile loads a seed fixture from path. A missing file is an error; use
// NewDemo for sample data.
func NewFromFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return nil, err
	}
	return NewFromSeed(seed)
}
