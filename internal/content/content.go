// Package content holds the landing page copy.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultPageYAML []byte

// Page is all copy rendered by the landing experience
type Page struct {
	Hero       Hero       `yaml:"hero"`
	Stats      []Stat     `yaml:"stats"`
	Technology Technology `yaml:"technology"`
	Preorder   Preorder   `yaml:"preorder"`
	Checkout   Checkout   `yaml:"checkout"`
	Dialog     Dialog     `yaml:"dialog"`
}

// Hero is the headline block on the home page
type Hero struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Action   string `yaml:"action"`
}

// Stat is one statistic card revealed on the home page
type Stat struct {
	Value       string `yaml:"value"`
	Highlight   string `yaml:"highlight"`
	Description string `yaml:"description"`
}

// Technology is the detail page
type Technology struct {
	Back     string    `yaml:"back"`
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Features []Feature `yaml:"features"`
}

// Feature is a scroll-animated card on the detail page
type Feature struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Preorder is the call to action at the bottom of the detail page
type Preorder struct {
	Title  string `yaml:"title"`
	Body   string `yaml:"body"`
	Action string `yaml:"action"`
}

// Checkout is the simulated pre-order form
type Checkout struct {
	Title  string  `yaml:"title"`
	Intro  string  `yaml:"intro"`
	Submit string  `yaml:"submit"`
	Fields []Field `yaml:"fields"`
}

// Field is one checkout input. Only its ID ever reaches analytics.
type Field struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Placeholder string `yaml:"placeholder"`
	CharLimit   int    `yaml:"char_limit"`
	Secret      bool   `yaml:"secret"`
}

// Dialog is the "not launched" notice
type Dialog struct {
	Message string `yaml:"message"`
	Action  string `yaml:"action"`
}

// Default returns the built-in copy
func Default() *Page {
	page := &Page{}
	if err := decode(page, defaultPageYAML); err != nil {
		// The embedded file is covered by tests
		panic(err)
	}
	return page
}

// Parse decodes YAML on top of the built-in copy, so a custom file only
// needs the keys it changes.
func Parse(data []byte) (*Page, error) {
	page := Default()
	if err := decode(page, data); err != nil {
		return nil, err
	}
	return page, nil
}

func decode(page *Page, data []byte) error {
	if err := yaml.Unmarshal(data, page); err != nil {
		return fmt.Errorf("failed to parse content: %w", err)
	}
	return page.Validate()
}

// Load reads a content file. An empty path returns the built-in copy.
func Load(path string) (*Page, error) {
	if path == "" {
		return Default(), nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("content file must have .yaml or .yml extension: %s", path)
	}

	// #nosec G304 - path comes from user configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	page, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return page, nil
}

// Validate checks the copy can be rendered
func (p *Page) Validate() error {
	var errs []error

	if strings.TrimSpace(p.Hero.Title) == "" {
		errs = append(errs, errors.New("hero title is required"))
	}
	if len(p.Stats) == 0 {
		errs = append(errs, errors.New("at least one statistic is required"))
	}
	for i, s := range p.Stats {
		if s.Value == "" {
			errs = append(errs, fmt.Errorf("statistic %d has no value", i))
		}
	}

	seen := make(map[string]bool, len(p.Checkout.Fields))
	for i, f := range p.Checkout.Fields {
		switch {
		case f.ID == "":
			errs = append(errs, fmt.Errorf("checkout field %d has no id", i))
		case seen[f.ID]:
			errs = append(errs, fmt.Errorf("duplicate checkout field id: %s", f.ID))
		}
		seen[f.ID] = true
		if f.CharLimit < 0 {
			errs = append(errs, fmt.Errorf("checkout field %s has a negative char_limit", f.ID))
		}
	}

	return errors.Join(errs...)
}

// FieldIDs lists checkout field IDs in form order
func (p *Page) FieldIDs() []string {
	ids := make([]string, len(p.Checkout.Fields))
	for i, f := range p.Checkout.Fields {
		ids[i] = f.ID
	}
	return ids
}
