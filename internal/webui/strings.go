package webui

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// LangData maps string keys to their localized text.
type LangData map[string]string

// StringsData holds the localized UI strings for every supported language
// plus the resolved set for the requested one.
type StringsData struct {
	EN          LangData `yaml:"en"`
	FR          LangData `yaml:"fr"`
	CurrentLang LangData `yaml:"-"`
}

// LoadStrings reads the embedded strings file and resolves the requested
// language, defaulting to English.
func LoadStrings(lang string) (*StringsData, error) {
	raw, err := fs.ReadFile(TemplatesFS, "templates/strings.yml")
	if err != nil {
		return nil, fmt.Errorf("read strings.yml: %w", err)
	}

	var data StringsData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse strings.yml: %w", err)
	}

	switch lang {
	case "fr":
		data.CurrentLang = data.FR
	default:
		data.CurrentLang = data.EN
	}
	return &data, nil
}
