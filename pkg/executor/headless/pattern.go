package headless

import (
	"fmt"

	"github.com/gobwas/glob"
)

// PatternMatcher selects scenarios by name with glob patterns
type PatternMatcher struct {
	includePatterns []glob.Glob
	excludePatterns []glob.Glob
}

// NewPatternMatcher compiles include and exclude patterns. '/' separates
// name segments, so "drag/*" matches "drag/snap" but not "drag/a/b".
func NewPatternMatcher(include, exclude []string) (*PatternMatcher, error) {
	pm := &PatternMatcher{}

	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		pm.includePatterns = append(pm.includePatterns, g)
	}

	for _, pattern := range exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		pm.excludePatterns = append(pm.excludePatterns, g)
	}

	return pm, nil
}

// Matches returns true if the scenario name is selected
func (pm *PatternMatcher) Matches(name string) bool {
	// Excluded patterns take precedence
	for _, pattern := range pm.excludePatterns {
		if pattern.Match(name) {
			return false
		}
	}

	if len(pm.includePatterns) == 0 {
		return true
	}

	for _, pattern := range pm.includePatterns {
		if pattern.Match(name) {
			return true
		}
	}

	return false
}

// Filter returns the scenarios whose names match, in their original order
func (pm *PatternMatcher) Filter(scenarios []*Scenario) []*Scenario {
	var selected []*Scenario
	for _, s := range scenarios {
		if pm.Matches(s.Name) {
			selected = append(selected, s)
		}
	}
	return selected
}
