package titles

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

type ruleFile struct {
	Rules []Rule `json:"rules"`
}

// LoadClassifier reads a title-rule configuration file and builds a
// Classifier.
//
// File format:
//
//	{
//	    "rules": [
//	        {"pattern": "chief", "match": "fragment", "dashboard": "compensation", "scope": "unrestricted"},
//	        {"pattern": "principal", "match": "fragment", "dashboard": "behavioral-school", "scope": "own_school"}
//	    ]
//	}
func LoadClassifier(fs afero.Fs, path string) (*Classifier, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading title rules: %w", err)
	}

	var parsed ruleFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing title rules: %w", err)
	}

	for i, rule := range parsed.Rules {
		if rule.Pattern == "" || rule.Dashboard == "" {
			return nil, fmt.Errorf("title rule %d missing pattern or dashboard", i)
		}
	}

	return NewClassifier(parsed.Rules), nil
}
