package promptset

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"counsel-interview/internal/domain"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultPromptSet []byte

// Default returns the built-in interview prompt set
func Default() (*domain.PromptSet, error) {
	return Parse(defaultPromptSet)
}

// Load reads a prompt set from a YAML file. An empty path loads the built-in set.
func Load(path string) (*domain.PromptSet, error) {
	if path == "" {
		return Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt set %s: %w", path, err)
	}

	set, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("prompt set %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":   path,
		"name":   set.Name,
		"topics": len(set.Topics),
	}).Info("Loaded prompt set")
	return set, nil
}

// Parse decodes and validates a YAML prompt set. Unknown keys are rejected.
func Parse(raw []byte) (*domain.PromptSet, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)

	var set domain.PromptSet
	if err := decoder.Decode(&set); err != nil {
		return nil, fmt.Errorf("%w: decode prompt set: %v", domain.ErrValidation, err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}
