package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/pathtrace"
	"github.com/pdrpinto/pathtrace/internal/mapfile"
)

type queryFlags struct {
	mapFile   string
	algorithm string
	from      string
	to        string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&q.mapFile, "map", "", "Map file (YAML or JSON)")
	cmd.Flags().StringVar(&q.algorithm, "algorithm", "bfs", "Search algorithm: bfs|dfs")
	cmd.Flags().StringVar(&q.from, "from", "", "Start node (defaults to the map's start)")
	cmd.Flags().StringVar(&q.to, "to", "", "Target node (defaults to the map's goal)")
	_ = cmd.MarkFlagRequired("map")
}

func (q *queryFlags) run() (pathtrace.Result[string], error) {
	algorithm, err := pathtrace.ParseAlgorithm(q.algorithm)
	if err != nil {
		return pathtrace.Result[string]{}, err
	}
	m, err := mapfile.Load(q.mapFile)
	if err != nil {
		return pathtrace.Result[string]{}, err
	}
	start, target, err := m.Endpoints(q.from, q.to)
	if err != nil {
		return pathtrace.Result[string]{}, err
	}
	return pathtrace.Search(m.Graph, algorithm, start, target)
}

type stepView struct {
	Index          int      `json:"index"`
	Event          string   `json:"event"`
	Node           string   `json:"node"`
	Visited        []string `json:"visited"`
	Frontier       []string `json:"frontier"`
	Path           []string `json:"path"`
	AvoidedHazards []string `json:"avoided_hazards"`
}

type resultView struct {
	Algorithm      string     `json:"algorithm"`
	Start          string     `json:"start"`
	Target         string     `json:"target"`
	Found          bool       `json:"found"`
	Hops           int        `json:"hops"`
	Path           []string   `json:"path"`
	Visited        []string   `json:"visited"`
	Frontier       []string   `json:"frontier"`
	AvoidedHazards []string   `json:"avoided_hazards"`
	Steps          int        `json:"steps"`
	Trace          []stepView `json:"trace,omitempty"`
}

func newStepView(step pathtrace.Step[string]) stepView {
	return stepView{
		Index:          step.Index,
		Event:          step.Event.String(),
		Node:           step.Node,
		Visited:        step.Visited,
		Frontier:       step.Frontier,
		Path:           step.Path,
		AvoidedHazards: step.AvoidedHazards,
	}
}

func newResultView(result pathtrace.Result[string], withTrace bool) resultView {
	view := resultView{
		Algorithm:      result.Algorithm.String(),
		Start:          result.Start,
		Target:         result.Target,
		Found:          result.Found,
		Hops:           result.Hops(),
		Path:           result.Path,
		Visited:        result.Visited,
		Frontier:       result.Frontier,
		AvoidedHazards: result.AvoidedHazards,
		Steps:          len(result.Trace),
	}
	if withTrace {
		view.Trace = make([]stepView, 0, len(result.Trace))
		for _, step := range result.Trace {
			view.Trace = append(view.Trace, newStepView(step))
		}
	}
	return view
}

func newSearchCmd() *cobra.Command {
	var query queryFlags
	var withTrace bool
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search a map and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := query.run()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flagFmt == "json" {
				return formatJSON(out, newResultView(result, withTrace))
			}
			printResultTable(out, result)
			return nil
		},
	}
	query.register(cmd)
	cmd.Flags().BoolVar(&withTrace, "trace", false, "Include the full trace in JSON output")
	return cmd
}

func printResultTable(w io.Writer, result pathtrace.Result[string]) {
	formatTable(w, []string{"FIELD", "VALUE"}, [][]string{
		{"algorithm", result.Algorithm.String()},
		{"start", result.Start},
		{"target", result.Target},
		{"found", strconv.FormatBool(result.Found)},
		{"hops", strconv.Itoa(result.Hops())},
		{"path", joinNodes(result.Path)},
		{"visited", joinNodes(result.Visited)},
		{"frontier", joinNodes(result.Frontier)},
		{"avoided", joinNodes(result.AvoidedHazards)},
		{"steps", strconv.Itoa(len(result.Trace))},
	})
}

func newReplayCmd() *cobra.Command {
	var query queryFlags
	var at int
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Print the search trace one step per row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := query.run()
			if err != nil {
				return err
			}

			replay := pathtrace.NewReplay(result)
			var steps []pathtrace.Step[string]
			if at >= 0 {
				step, ok := replay.Seek(at)
				if !ok {
					return fmt.Errorf("step %d out of range: trace has %d steps", at, replay.Len())
				}
				steps = append(steps, step)
			} else {
				for step, ok := replay.Next(); ok; step, ok = replay.Next() {
					steps = append(steps, step)
				}
			}

			out := cmd.OutOrStdout()
			if flagFmt == "json" {
				views := make([]stepView, 0, len(steps))
				for _, step := range steps {
					views = append(views, newStepView(step))
				}
				return formatJSON(out, views)
			}

			rows := make([][]string, 0, len(steps))
			for _, step := range steps {
				rows = append(rows, []string{
					strconv.Itoa(step.Index),
					step.Event.String(),
					step.Node,
					joinNodes(step.Path),
					joinNodes(step.Frontier),
					joinNodes(step.Visited),
					joinNodes(step.AvoidedHazards),
				})
			}
			formatTable(out, []string{"STEP", "EVENT", "NODE", "PATH", "FRONTIER", "VISITED", "AVOIDED"}, rows)
			return nil
		},
	}
	query.register(cmd)
	cmd.Flags().IntVar(&at, "step", -1, "Print only this step")
	return cmd
}
