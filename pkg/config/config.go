// Package config loads factory defaults, demo objects and predefined socials.
// Both YAML (.yaml/.yml) and a line-based text format are supported.
package config

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crystal-mush/mushemote/pkg/socials"
)

// Conf holds the emote configuration.
type Conf struct {
	// --- Directive defaults ---
	DefaultIndex  int    `yaml:"default_index"`
	DefaultSuffix string `yaml:"default_suffix"`

	// --- Case filters: normal, title, upper, lower or none ---
	UpperCaseFilter string `yaml:"upper_case_filter"`
	TitleCaseFilter string `yaml:"title_case_filter"`
	LowerCaseFilter string `yaml:"lower_case_filter"`

	// --- Demo world ---
	Objects []ObjectConf `yaml:"objects"`

	// --- Socials ---
	Socials     map[string]string `yaml:"socials"`
	SocialFiles []string          `yaml:"social_files"` // text format, relative to the config file
}

// ObjectConf describes one demo object.
type ObjectConf struct {
	Name string `yaml:"name"`
	Sex  string `yaml:"sex"`
}

// DefaultConf returns the built-in configuration: the factory defaults, three
// demo objects and a handful of socials.
func DefaultConf() *Conf {
	return &Conf{
		DefaultIndex:    0,
		DefaultSuffix:   "n",
		UpperCaseFilter: "normal",
		TitleCaseFilter: "none",
		LowerCaseFilter: "none",
		Objects: []ObjectConf{
			{Name: "Bill", Sex: "male"},
			{Name: "Jane", Sex: "female"},
			{Name: "Alice", Sex: "female"},
		},
		Socials: map[string]string{
			"smile": "%N smile%s at %2.",
			"wave":  "%N wave%s.",
			"hug":   "%N hug%s %2 tightly.",
			"poke":  "%N poke%s %2 in %2p ribs.",
			"shrug": "%N shrug%s, leaving %2 to %2r.",
		},
	}
}

// LoadConf reads a config file. Missing values keep their defaults; socials
// from social_files are merged first so inline socials win.
func LoadConf(path string) (*Conf, error) {
	var (
		c   *Conf
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		c, err = loadYAML(path)
	default:
		c, err = loadText(path)
	}
	if err != nil {
		return nil, err
	}

	if len(c.SocialFiles) > 0 {
		merged := make(map[string]string)
		baseDir := filepath.Dir(path)
		for i, sf := range c.SocialFiles {
			if !filepath.IsAbs(sf) {
				c.SocialFiles[i] = filepath.Join(baseDir, sf)
			}
			table, err := LoadSocials(c.SocialFiles[i])
			if err != nil {
				return nil, err
			}
			for name, tmpl := range table {
				merged[name] = tmpl
			}
		}
		for name, tmpl := range c.Socials {
			merged[name] = tmpl
		}
		c.Socials = merged
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func loadYAML(path string) (*Conf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c := DefaultConf()
	// Lists and maps given in the file replace the defaults outright.
	c.Objects = nil
	c.Socials = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing YAML %s: %w", path, err)
	}
	if c.Objects == nil {
		c.Objects = DefaultConf().Objects
	}
	if c.Socials == nil {
		c.Socials = make(map[string]string)
	}
	return c, nil
}

// loadText parses the line-based format:
//
//	# comment
//	default_index 0
//	default_suffix n
//	upper_case_filter normal
//	object Bill male
//	social smile %N smile%s at %2.
//	social_file more.socials
func loadText(path string) (*Conf, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := DefaultConf()
	c.Objects = nil
	c.Socials = make(map[string]string)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		directive, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch strings.ToLower(directive) {
		case "default_index":
			n, err := strconv.Atoi(rest)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: default_index: %w", path, lineNo, err)
			}
			c.DefaultIndex = n
		case "default_suffix":
			c.DefaultSuffix = rest
		case "upper_case_filter":
			c.UpperCaseFilter = rest
		case "title_case_filter":
			c.TitleCaseFilter = rest
		case "lower_case_filter":
			c.LowerCaseFilter = rest
		case "object":
			name, sex, _ := strings.Cut(rest, " ")
			c.Objects = append(c.Objects, ObjectConf{Name: name, Sex: strings.TrimSpace(sex)})
		case "social":
			name, tmpl, ok := strings.Cut(rest, " ")
			if !ok {
				log.Printf("config: %s:%d: social requires a name and a template", path, lineNo)
				continue
			}
			c.Socials[strings.ToLower(name)] = strings.TrimSpace(tmpl)
		case "social_file":
			c.SocialFiles = append(c.SocialFiles, rest)
		default:
			log.Printf("config: %s:%d: unknown directive %q", path, lineNo, directive)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if c.Objects == nil {
		c.Objects = DefaultConf().Objects
	}
	return c, nil
}

// LoadSocials reads a socials file: "name template" per line, blank lines
// and # comments ignored.
func LoadSocials(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading socials: %w", err)
	}
	defer f.Close()

	table := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		name, tmpl, ok := strings.Cut(line, " ")
		if !ok {
			log.Printf("config: %s:%d: social %q has no template", path, lineNo, name)
			continue
		}
		table[strings.ToLower(name)] = strings.TrimSpace(tmpl)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return table, nil
}

// Validate checks the values a Factory and World can't accept.
func (c *Conf) Validate() error {
	if c.DefaultIndex < 0 {
		return fmt.Errorf("default_index must not be negative, got %d", c.DefaultIndex)
	}
	if c.DefaultSuffix == "" {
		return fmt.Errorf("default_suffix must not be empty")
	}
	for _, r := range c.DefaultSuffix {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return fmt.Errorf("default_suffix %q must be letters only", c.DefaultSuffix)
		}
	}
	for _, name := range []string{c.UpperCaseFilter, c.TitleCaseFilter, c.LowerCaseFilter} {
		if _, err := socials.FilterByName(name); err != nil {
			return err
		}
	}
	for i, o := range c.Objects {
		if strings.TrimSpace(o.Name) == "" {
			return fmt.Errorf("object %d has no name", i+1)
		}
	}
	for name, tmpl := range c.Socials {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t") {
			return fmt.Errorf("invalid social name %q", name)
		}
		if tmpl == "" {
			return fmt.Errorf("social %q has an empty template", name)
		}
	}
	return nil
}

// Apply copies the directive defaults and case filters onto f.
func (c *Conf) Apply(f *socials.Factory) error {
	upper, err := socials.FilterByName(c.UpperCaseFilter)
	if err != nil {
		return err
	}
	title, err := socials.FilterByName(c.TitleCaseFilter)
	if err != nil {
		return err
	}
	lower, err := socials.FilterByName(c.LowerCaseFilter)
	if err != nil {
		return err
	}
	f.DefaultIndex = c.DefaultIndex
	f.DefaultSuffix = c.DefaultSuffix
	f.UpperCaseFilter = upper
	f.TitleCaseFilter = title
	f.LowerCaseFilter = lower
	return nil
}
