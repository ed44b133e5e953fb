package tree

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"multiagent/game"
)

var ErrMalformed = errors.New("malformed tree")

// scenarioFile is the layout of a scenario file:
//
//	agents = 2
//	root {
//	  action "A" {
//	    action "a1" { score = 3 }
//	  }
//	}
type scenarioFile struct {
	Agents int       `hcl:"agents"`
	Root   nodeBlock `hcl:"root,block"`
}

type nodeBlock struct {
	Score    float64       `hcl:"score,optional"`
	Features *featureBlock `hcl:"features,block"`
	Actions  []actionBlock `hcl:"action,block"`
}

type actionBlock struct {
	Name     string        `hcl:"name,label"`
	Score    float64       `hcl:"score,optional"`
	Features *featureBlock `hcl:"features,block"`
	Actions  []actionBlock `hcl:"action,block"`
}

type featureBlock struct {
	Position    []int            `hcl:"position"`
	Resources   [][]int          `hcl:"resources,optional"`
	Adversaries []adversaryBlock `hcl:"adversary,block"`
}

type adversaryBlock struct {
	Position []int `hcl:"position"`
	Scared   int   `hcl:"scared,optional"`
}

// Load reads a scenario file and returns the state at its root.
func Load(filename string) (*State, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse reads a scenario from memory. The filename is only used in diagnostics.
func Parse(src []byte, filename string) (*State, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*State, error) {
	var sf scenarioFile
	diags := gohcl.DecodeBody(file.Body, nil, &sf)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if sf.Agents < 1 {
		return nil, fmt.Errorf("%w: agents must be positive, got %d", ErrMalformed, sf.Agents)
	}

	root, err := buildNode(sf.Root.Score, sf.Root.Features, sf.Root.Actions, "root")
	if err != nil {
		return nil, err
	}
	return New(sf.Agents, root), nil
}

func buildNode(score float64, fs *featureBlock, actions []actionBlock, path string) (*Node, error) {
	node := &Node{Score: score}
	if fs != nil {
		features, err := buildFeatures(fs, path)
		if err != nil {
			return nil, err
		}
		node.Features = features
	}

	seen := make(map[string]bool, len(actions))
	for _, a := range actions {
		if seen[a.Name] {
			return nil, fmt.Errorf("%w: duplicate action %q at %s", ErrMalformed, a.Name, path)
		}
		seen[a.Name] = true

		child, err := buildNode(a.Score, a.Features, a.Actions, path+"/"+a.Name)
		if err != nil {
			return nil, err
		}
		node.Moves = append(node.Moves, On(game.Action(a.Name), child))
	}
	return node, nil
}

func buildFeatures(fs *featureBlock, path string) (*Features, error) {
	pos, err := position(fs.Position, path)
	if err != nil {
		return nil, err
	}
	features := &Features{Position: pos}
	for _, r := range fs.Resources {
		p, err := position(r, path)
		if err != nil {
			return nil, err
		}
		features.Resources = append(features.Resources, p)
	}
	for _, a := range fs.Adversaries {
		p, err := position(a.Position, path)
		if err != nil {
			return nil, err
		}
		features.Adversaries = append(features.Adversaries, game.Adversary{Position: p, ScaredTimer: a.Scared})
	}
	return features, nil
}

func position(xy []int, path string) (game.Position, error) {
	if len(xy) != 2 {
		return game.Position{}, fmt.Errorf("%w: position at %s needs 2 coordinates, got %d", ErrMalformed, path, len(xy))
	}
	return game.Position{X: xy[0], Y: xy[1]}, nil
}
