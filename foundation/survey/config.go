package survey

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source describes one survey data file and the variables to analyze from it.
type Source struct {
	Path      string   `yaml:"path"`
	Table     string   `yaml:"table"`
	Variables []string `yaml:"variables"`
}

// Config describes the inputs of an analysis run: the subject identifier
// shared by all files and the variable set of each file.
type Config struct {
	Subject string   `yaml:"subject"`
	Sources []Source `yaml:"sources"`
}

// LoadConfig reads an analysis configuration from a yaml file. Variable
// names are normalized to upper case, matching the survey codebooks.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read yaml: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("unmarshal yaml: %w", err)
	}

	if c.Subject == "" {
		return Config{}, fmt.Errorf("config missing subject identifier")
	}

	c.Subject = strings.ToUpper(strings.TrimSpace(c.Subject))

	for i, src := range c.Sources {
		if src.Path == "" || src.Table == "" {
			return Config{}, fmt.Errorf("source %d missing path or table name", i)
		}
		if len(src.Variables) == 0 {
			return Config{}, fmt.Errorf("source %q lists no variables", src.Table)
		}
		for j, v := range src.Variables {
			c.Sources[i].Variables[j] = strings.ToUpper(strings.TrimSpace(v))
		}
	}

	return c, nil
}
