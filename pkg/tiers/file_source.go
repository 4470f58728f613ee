package tiers

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

type tierFile struct {
	Tiers []Tier `json:"tiers"`
}

// LoadRegistry reads a tier configuration file and builds a Registry.
//
// File format:
//
//	{
//	    "tiers": [
//	        {
//	            "name": "network_admin",
//	            "members": ["cpo@brightlineschools.org"],
//	            "grants": [{"dashboard": "team", "scope": "unrestricted"}]
//	        }
//	    ]
//	}
func LoadRegistry(fs afero.Fs, path string) (*Registry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading tier file: %w", err)
	}

	var parsed tierFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing tier file: %w", err)
	}

	return NewRegistry(parsed.Tiers)
}
