package models

import (
	"fmt"
	"strings"
)

// Scenario is one of the closed set of editing styles understood by the
// correction service. The string value is the label sent on the wire.
type Scenario string

const (
	// ScenarioPublishing is rigorous news/publishing proofreading.
	ScenarioPublishing Scenario = "新闻出版 (严谨)"
	// ScenarioNewMedia is lively new-media copy editing.
	ScenarioNewMedia Scenario = "新媒体 (活泼)"
	// ScenarioOfficial is formal official-document proofreading.
	ScenarioOfficial Scenario = "公文写作 (规范)"
)

// DefaultScenario is used when a caller does not pick one.
const DefaultScenario = ScenarioPublishing

var scenarioAliases = map[string]Scenario{
	"publishing": ScenarioPublishing,
	"news":       ScenarioPublishing,
	"new-media":  ScenarioNewMedia,
	"newmedia":   ScenarioNewMedia,
	"official":   ScenarioOfficial,
	"government": ScenarioOfficial,
}

// AllScenarios returns the closed scenario set in display order.
func AllScenarios() []Scenario {
	return []Scenario{ScenarioPublishing, ScenarioNewMedia, ScenarioOfficial}
}

// IsValid reports whether s belongs to the closed set.
func (s Scenario) IsValid() bool {
	switch s {
	case ScenarioPublishing, ScenarioNewMedia, ScenarioOfficial:
		return true
	}
	return false
}

// Alias returns the short ASCII name of the scenario.
func (s Scenario) Alias() string {
	switch s {
	case ScenarioPublishing:
		return "publishing"
	case ScenarioNewMedia:
		return "new-media"
	case ScenarioOfficial:
		return "official"
	}
	return ""
}

// ParseScenario accepts either a wire label or an ASCII alias.
func ParseScenario(raw string) (Scenario, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultScenario, nil
	}
	if s := Scenario(trimmed); s.IsValid() {
		return s, nil
	}
	if s, ok := scenarioAliases[strings.ToLower(trimmed)]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown scenario %q", raw)
}
