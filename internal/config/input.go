package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/plrgo/internal/calculation"
	"gopkg.in/yaml.v3"
)

// Batch is a file of calculation and multiplier-discovery requests.
type Batch struct {
	Calculations []calculation.PlrInput                `yaml:"calculations"`
	Discoveries  []calculation.DiscoverMultiplierInput `yaml:"discoveries"`
}

// InputParser handles parsing of batch input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a batch from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*Batch, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateBatch(&batch); err != nil {
		return nil, fmt.Errorf("batch validation failed: %w", err)
	}

	return &batch, nil
}

// ValidateBatch validates every request before anything runs, so a bad row
// never leaves a half-processed batch.
func (ip *InputParser) ValidateBatch(batch *Batch) error {
	if len(batch.Calculations) == 0 && len(batch.Discoveries) == 0 {
		return fmt.Errorf("batch has no calculations or discoveries")
	}
	for i, in := range batch.Calculations {
		if err := in.Validate(); err != nil {
			return fmt.Errorf("calculation %d (%s): %w", i, in.BankID, err)
		}
	}
	for i, in := range batch.Discoveries {
		if err := in.Validate(); err != nil {
			return fmt.Errorf("discovery %d: %w", i, err)
		}
	}
	return nil
}
