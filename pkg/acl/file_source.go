package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// FileSource loads a static grant table from a JSON file. Used for small
// deployments that manage exceptional grants alongside the rest of the
// portal configuration instead of in the warehouse.
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource creates a file-backed ACL source
func NewFileSource(fs afero.Fs, path string) *FileSource {
	return &FileSource{fs: fs, path: path}
}

type grantFile struct {
	// Grants maps email → explicit grants
	Grants map[string][]Grant `json:"grants"`
}

// GrantsFor implements Source. The file is read per call; the Store above
// caches nothing, so edits take effect on the next request.
func (s *FileSource) GrantsFor(_ context.Context, email string) ([]Grant, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading grant file: %v", ErrUnavailable, err)
	}

	var parsed grantFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parsing grant file: %v", ErrUnavailable, err)
	}

	email = strings.ToLower(email)
	for from, grants := range parsed.Grants {
		if strings.ToLower(from) == email {
			return grants, nil
		}
	}
	return nil, nil
}
