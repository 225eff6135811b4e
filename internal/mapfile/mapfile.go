// Package mapfile loads map definitions from YAML or JSON files and builds
// the search graph from them.
package mapfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/pathtrace"
)

// ErrInvalidDefinition wraps every structural problem found in a map file.
var ErrInvalidDefinition = errors.New("invalid map definition")

var validate = validator.New()

// NodeDef declares one location.
type NodeDef struct {
	ID   string `yaml:"id" json:"id" validate:"required,max=128"`
	Name string `yaml:"name" json:"name" validate:"max=256"`
}

// Definition is the on-disk map format. JSON documents are valid YAML, so
// both are read by the same decoder.
type Definition struct {
	Name    string     `yaml:"name" json:"name"`
	Start   string     `yaml:"start,omitempty" json:"start,omitempty"`
	Goal    string     `yaml:"goal" json:"goal" validate:"required"`
	Hazards []string   `yaml:"hazards,omitempty" json:"hazards,omitempty" validate:"dive,required"`
	Nodes   []NodeDef  `yaml:"nodes" json:"nodes" validate:"required,min=1,dive"`
	Edges   [][]string `yaml:"edges" json:"edges" validate:"dive,len=2,dive,required"`
}

// Map is a built definition.
type Map struct {
	Name  string
	Start string
	Graph *pathtrace.Graph[string]
}

// Endpoints fills in missing search endpoints: start falls back to the
// map's declared start and target to its first goal.
func (m *Map) Endpoints(start, target string) (string, string, error) {
	if start == "" {
		start = m.Start
	}
	if start == "" {
		return "", "", errors.New("start is required: the map declares no default")
	}
	if target == "" {
		goals := m.Graph.Goals()
		if len(goals) == 0 {
			return "", "", errors.New("target is required: the map declares no goal")
		}
		target = goals[0]
	}
	return start, target, nil
}

// Parse decodes and validates a definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := validate.Struct(&def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, describe(err))
	}
	return &def, nil
}

// Build turns a definition into a graph. Edges naming unknown nodes are
// dropped, mirroring Graph.AddEdge.
func (def *Definition) Build() (*Map, error) {
	nodes := make([]pathtrace.Node[string], 0, len(def.Nodes))
	for _, n := range def.Nodes {
		name := n.Name
		if name == "" {
			name = n.ID
		}
		nodes = append(nodes, pathtrace.Node[string]{ID: n.ID, Name: name})
	}

	edges := make([]pathtrace.Edge[string], 0, len(def.Edges))
	for _, pair := range def.Edges {
		edges = append(edges, pathtrace.Edge[string]{A: pair[0], B: pair[1]})
	}

	graph, err := pathtrace.BuildGraph(nodes, edges, def.Hazards, def.Goal)
	if err != nil {
		return nil, fmt.Errorf("building map %q: %w", def.Name, err)
	}

	if def.Start != "" {
		if !graph.Has(def.Start) {
			return nil, fmt.Errorf("start %w: %s", pathtrace.ErrUnknownNode, def.Start)
		}
		if graph.IsHazard(def.Start) {
			return nil, fmt.Errorf("%w: start %s is a hazard", ErrInvalidDefinition, def.Start)
		}
	}

	return &Map{Name: def.Name, Start: def.Start, Graph: graph}, nil
}

// Load reads, validates and builds the map at path.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading map %s: %w", path, err)
	}
	m, err := def.Build()
	if err != nil {
		return nil, fmt.Errorf("loading map %s: %w", path, err)
	}
	return m, nil
}

// FromGraph renders a graph back into the file format.
func FromGraph(name, start string, graph *pathtrace.Graph[string]) *Definition {
	def := &Definition{Name: name, Start: start}
	for _, node := range graph.Nodes() {
		def.Nodes = append(def.Nodes, NodeDef{ID: node.ID, Name: node.Name})
		switch node.Kind {
		case pathtrace.KindGoal:
			def.Goal = node.ID
		case pathtrace.KindHazard:
			def.Hazards = append(def.Hazards, node.ID)
		}
	}
	for _, edge := range graph.Edges() {
		def.Edges = append(def.Edges, []string{edge.A, edge.B})
	}
	return def
}

func describe(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	parts := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		parts = append(parts, fmt.Sprintf("%s failed %q", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return strings.Join(parts, "; ")
}
