package workflows

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

type roleFile struct {
	PositionControl map[string]PositionRole   `json:"position_control"`
	Onboarding      map[string]OnboardingRole `json:"onboarding"`
}

// LoadRegistry reads a workflow role file and builds a Registry.
//
// File format:
//
//	{
//	    "position_control": {
//	        "cpo@brightlineschools.org": {"role": "super_admin", "can_approve": true, "can_edit_final": true, "can_create_position": true}
//	    },
//	    "onboarding": {
//	        "hr@brightlineschools.org": {"role": "admin", "can_edit": true, "can_delete": false}
//	    }
//	}
func LoadRegistry(fs afero.Fs, path string) (*Registry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading workflow roles: %w", err)
	}

	var parsed roleFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing workflow roles: %w", err)
	}

	return NewRegistry(parsed.PositionControl, parsed.Onboarding), nil
}
