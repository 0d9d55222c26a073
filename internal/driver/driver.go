// Package driver is the frontend driver: it chains Parse, Collate, Model,
// Guard, and Graph into a single call that runs up to a chosen stage and
// returns that stage's intermediate result, or the first error
// encountered, tagged with its originating stage.
package driver

import (
	"bufio"
	"fmt"
	"io"

	"github.com/BenSimner/starling-tool/internal/collate"
	"github.com/BenSimner/starling-tool/internal/graph"
	"github.com/BenSimner/starling-tool/internal/guard"
	"github.com/BenSimner/starling-tool/internal/model"
	"github.com/BenSimner/starling-tool/internal/report"
	"github.com/BenSimner/starling-tool/internal/syntax"
	"github.com/BenSimner/starling-tool/internal/view"
)

// Target names a pipeline stage to run up to.
type Target int

const (
	Parse Target = iota
	Collate
	Model
	Guard
	Graph
)

func (t Target) String() string {
	switch t {
	case Parse:
		return "parse"
	case Collate:
		return "collate"
	case Model:
		return "model"
	case Guard:
		return "guard"
	case Graph:
		return "graph"
	default:
		return "unknown"
	}
}

// ParseTarget maps a CLI subcommand name onto its Target.
func ParseTarget(name string) (Target, bool) {
	switch name {
	case "parse":
		return Parse, true
	case "collate":
		return Collate, true
	case "model":
		return Model, true
	case "guard":
		return Guard, true
	case "graph":
		return Graph, true
	default:
		return 0, false
	}
}

// Result is the pipeline's output up to whichever Target was run. Exactly
// one field is populated, matching the stage named by Target.
type Result struct {
	Target Target

	Items    []syntax.ScriptItem
	Script   *collate.Script
	Model    *model.Model[view.CView]
	Guarded  *model.Model[view.GView]
	Graphs   map[string]*graph.Graph
}

// StageError pairs an underlying error with the stage that raised it, so a
// caller (the CLI, a test) can report "which phase failed" without
// inspecting the concrete error type.
type StageError struct {
	Stage report.Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Run executes the pipeline over src up to target, returning the
// intermediate Result for that stage, the last Bag produced (nil if
// Parse failed outright, since Parse has no Bag of its own), and a
// *StageError naming the first failure, if any.
func Run(target Target, src io.Reader) (*Result, *report.Bag, error) {
	items, perr := syntax.ParseFile(bufio.NewReader(src))
	if perr != nil {
		return nil, nil, &StageError{Stage: report.StageParse, Err: perr}
	}
	if target == Parse {
		return &Result{Target: Parse, Items: items}, nil, nil
	}

	script := collate.Collate(items)
	if target == Collate {
		return &Result{Target: Collate, Script: script}, nil, nil
	}

	m, mbag := model.BuildModel(script)
	if mbag.HasErrors() {
		return nil, mbag, firstError(mbag)
	}
	if target == Model {
		return &Result{Target: Model, Model: m}, mbag, nil
	}

	gm, gbag := guard.GuardModel(m)
	if gbag.HasErrors() {
		return nil, gbag, firstError(gbag)
	}
	if target == Guard {
		return &Result{Target: Guard, Guarded: gm}, gbag, nil
	}

	graphs, grbag := graph.GraphModel(gm)
	if grbag.HasErrors() {
		return nil, grbag, firstError(grbag)
	}
	return &Result{Target: Graph, Graphs: graphs}, grbag, nil
}

// firstError surfaces the earliest-reported error diagnostic in bag,
// tagged with the bag's own stage.
func firstError(bag *report.Bag) error {
	for _, d := range bag.Errors() {
		return &StageError{Stage: bag.Stage, Err: d.Err}
	}
	return nil
}
