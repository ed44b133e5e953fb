package agent

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"multiagent/game"
	"multiagent/meta"
)

// Config describes an agent. In files it is the body of an `agent` block:
//
//	agent {
//	  algorithm  = "alphabeta"
//	  evaluation = "better"
//	  depth      = 3
//	}
type Config struct {
	Algorithm  string
	Evaluation string
	Depth      int
	Seed       int64
	Iterative  bool

	// Registry resolves Evaluation; nil uses game.DefaultRegistry.
	Registry *game.Registry
}

// agentBlock tells attributes left out of the file apart from ones set to zero values, so only
// the former take defaults.
type agentBlock struct {
	Algorithm  *string `hcl:"algorithm,optional"`
	Evaluation *string `hcl:"evaluation,optional"`
	Depth      *int    `hcl:"depth,optional"`
	Seed       *int64  `hcl:"seed,optional"`
	Iterative  *bool   `hcl:"iterative,optional"`
}

type fileConfig struct {
	Agent *agentBlock `hcl:"agent,block"`
}

func DefaultConfig() Config {
	return Config{
		Algorithm:  meta.DefaultAlgorithm,
		Evaluation: meta.DefaultEvaluation,
		Depth:      meta.DefaultDepth,
	}
}

// LoadConfig reads an agent configuration file. A missing file yields the defaults, and so do
// attributes left out of the file. Attributes present in the file are validated as written.
func LoadConfig(filename string) (Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if fc.Agent == nil {
		return DefaultConfig(), nil
	}

	config := DefaultConfig()
	block := fc.Agent
	if block.Algorithm != nil {
		config.Algorithm = *block.Algorithm
	}
	if block.Evaluation != nil {
		config.Evaluation = *block.Evaluation
	}
	if block.Depth != nil {
		config.Depth = *block.Depth
	}
	if block.Seed != nil {
		config.Seed = *block.Seed
	}
	if block.Iterative != nil {
		config.Iterative = *block.Iterative
	}
	return config, config.Validate()
}

// Validate checks the fields that do not need a registry lookup.
func (c Config) Validate() error {
	if c.Depth <= 0 {
		return fmt.Errorf("%w: depth must be positive, got %d", ErrConfiguration, c.Depth)
	}
	if c.Evaluation == "" {
		return fmt.Errorf("%w: missing evaluation function", ErrConfiguration)
	}
	return nil
}
