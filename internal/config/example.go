package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Example returns a starter configuration for `leadsearch init`.
func Example() *Config {
	return &Config{
		Product: ProductConfig{Name: placeholderProduct},
		Country: "Israel",
		Segments: []Segment{
			{
				Name: "Students",
				PersonaTitles: KeywordLists{
					Hebrew:  []string{"סטודנט"},
					English: []string{"student"},
				},
				Keywords: []string{"student union"},
			},
		},
		OrgKeywords: KeywordLists{
			Hebrew:  []string{"הסתדרות"},
			English: []string{"union"},
		},
		Settings: Settings{
			OutputDir:           "output",
			MaxResultsPerQuery:  20,
			SleepBetweenQueries: 2,
		},
		LinkedIn: LinkedInConfig{
			MaxPerSession: 50,
			SleepJitter:   2,
			NetworkDepths: []string{"S", "O"},
		},
		Store: StoreConfig{Path: "leadsearch.db"},
		Log:   LogConfig{Level: "info", Format: "console"},
	}
}

// WriteExample marshals the starter configuration to path. It refuses to
// overwrite an existing file.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return eris.Errorf("config: %s already exists", path)
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return eris.Wrap(err, "config: marshal example")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "config: write %s", path)
	}
	return nil
}
