package sources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// Load reads the source list from a YAML file and validates each entry.
func Load(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML source list.
func Parse(data []byte) ([]Source, error) {
	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources YAML: %w", err)
	}

	for i := range file.Sources {
		src := &file.Sources[i]
		if src.Kind == "" {
			src.Kind = KindRSS
		}
		if err := validate(*src); err != nil {
			return nil, fmt.Errorf("invalid source %q: %w", src.Name, err)
		}
	}

	return file.Sources, nil
}

func validate(src Source) error {
	if src.Name == "" {
		return fmt.Errorf("name is required")
	}
	if src.URL == "" {
		return fmt.Errorf("url is required")
	}
	switch src.Kind {
	case KindRSS, KindReddit, KindTwitter:
		return nil
	default:
		return fmt.Errorf("unknown kind %q", src.Kind)
	}
}
