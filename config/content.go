package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Content is the marketing copy shown on the landing page and in the lead flows.
type Content struct {
	Brand          string   `yaml:"brand"`
	LogoURL        string   `yaml:"logo_url"`
	Headline       string   `yaml:"headline"`
	HeadlineAccent string   `yaml:"headline_accent"`
	TypedSentence  string   `yaml:"typed_sentence"`
	SurveyURL      string   `yaml:"survey_url"`
	Palette        []string `yaml:"palette"`
	BetaBenefits   []string `yaml:"beta_benefits"`
}

// DefaultContent returns the built-in copy.
func DefaultContent() *Content {
	var c Content
	if err := yaml.Unmarshal(defaultContent, &c); err != nil {
		// The embedded file is part of the binary; a parse error is a build mistake.
		panic(fmt.Sprintf("config: invalid embedded content.yaml: %v", err))
	}
	return &c
}

// LoadContent reads a YAML content file on top of the defaults. An empty path
// returns the defaults unchanged; keys missing from the file keep their default.
func LoadContent(path string) (*Content, error) {
	c := DefaultContent()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}
	return c, nil
}
