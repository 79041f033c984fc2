package recipients

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// FileSource serves recipient configuration from a local YAML file. It exists
// for development and tests, where standing up the shared Redis store is
// overkill. The file is read once at construction; edits require a restart.
//
// Expected shape:
//
//	compacts:
//	  aslp:
//	    recipients:
//	      - compact-ops@aslp.example.org
//	    jurisdictions:
//	      oh:
//	        recipients:
//	          - ops@oh.example.gov
type FileSource struct {
	compacts map[string]fileCompact
}

type fileCompact struct {
	Recipients    []string                    `yaml:"recipients"`
	Jurisdictions map[string]fileJurisdiction `yaml:"jurisdictions"`
}

type fileJurisdiction struct {
	Recipients []string `yaml:"recipients"`
}

type fileConfig struct {
	Compacts map[string]fileCompact `yaml:"compacts"`
}

// NewFileSource loads and parses the YAML file at path.
func NewFileSource(path string) (*FileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadConfig, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMalformedEntry, path, err)
	}
	return &FileSource{compacts: cfg.Compacts}, nil
}

func (s *FileSource) Targets(_ context.Context) ([]Target, error) {
	var targets []Target
	for compact, c := range s.compacts {
		for jurisdiction := range c.Jurisdictions {
			targets = append(targets, Target{Compact: compact, Jurisdiction: jurisdiction})
		}
	}
	// Map order is random; a stable order keeps runs reproducible.
	sort.Slice(targets, func(i, j int) bool {
		if targets[i].Compact != targets[j].Compact {
			return targets[i].Compact < targets[j].Compact
		}
		return targets[i].Jurisdiction < targets[j].Jurisdiction
	})
	return targets, nil
}

func (s *FileSource) JurisdictionRecipients(_ context.Context, compact, jurisdiction string) ([]string, error) {
	return s.compacts[compact].Jurisdictions[jurisdiction].Recipients, nil
}

func (s *FileSource) CompactRecipients(_ context.Context, compact string) ([]string, error) {
	return s.compacts[compact].Recipients, nil
}
