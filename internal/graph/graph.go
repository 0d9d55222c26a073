// Package graph implements the Grapher: each method's PartCmd tree
// becomes a control-flow graph of view-labelled nodes and command-labelled
// edges, one atomic Hoare triple {src.view} cmd {dst.view} per edge.
package graph

import (
	"fmt"

	"github.com/BenSimner/starling-tool/internal/expr"
	"github.com/BenSimner/starling-tool/internal/model"
	"github.com/BenSimner/starling-tool/internal/report"
	"github.com/BenSimner/starling-tool/internal/view"
)

// NodeID indexes into a Graph's Nodes slice -- positional, not
// pointer-identity, the same indexing idiom the Modeller's command trees
// use for their own Views/Steps alternation.
type NodeID int

// Node is a control point labelled with the view that must hold there.
type Node struct {
	ID   NodeID
	View view.GView
}

// EdgeKind distinguishes the three edge shapes §4.7 produces.
type EdgeKind int

const (
	// EdgeCommand carries an atomic command: the Hoare triple's body.
	EdgeCommand EdgeKind = iota
	// EdgeAssume carries a branch condition, taken as an assumption rather
	// than a command (ITE and While both insert these).
	EdgeAssume
	// EdgeEpsilon is an unconditional, commandless control edge: ITE join
	// edges and the do-while loop's unconditional entry edge.
	EdgeEpsilon
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeCommand:
		return "command"
	case EdgeAssume:
		return "assume"
	case EdgeEpsilon:
		return "epsilon"
	default:
		return "unknown"
	}
}

// Edge is one labelled transition between two nodes. Exactly one of Cmd
// (EdgeCommand) or Cond (EdgeAssume) is populated; EdgeEpsilon edges carry
// neither.
type Edge struct {
	From, To NodeID
	Kind     EdgeKind
	Cmd      model.Command
	Cond     expr.BoolExpr
}

// Graph is one method's control-flow graph.
type Graph struct {
	Method      string
	Nodes       []Node
	Edges       []Edge
	Entry, Exit NodeID
}

func (g *Graph) addNode(v view.GView) NodeID {
	id := NodeID(len(g.Nodes))
	g.Nodes = append(g.Nodes, Node{ID: id, View: v})
	return id
}

func (g *Graph) addEdge(from, to NodeID, kind EdgeKind, cmd model.Command, cond expr.BoolExpr) {
	g.Edges = append(g.Edges, Edge{From: from, To: to, Kind: kind, Cmd: cmd, Cond: cond})
}

// BuildGraph walks one method's body into a Graph. The only failure mode
// --a Block whose Views/Steps counts don't alternate correctly-- cannot
// arise from a Model the Modeller actually produced; graphBlock panics on
// it and this recovers the panic into a *report.GraphError, since any
// occurrence is a bug rather than a user error. This is the one place in
// the pipeline panic/recover is used for control flow.
func BuildGraph(method string, body *model.Block[view.GView]) (g *Graph, err error) {
	defer func() {
		if r := recover(); r != nil {
			ge, ok := r.(*report.GraphError)
			if !ok {
				panic(r)
			}
			g, err = nil, ge
		}
	}()

	out := &Graph{Method: method}
	entry, exit := graphBlock(out, body, method)
	out.Entry, out.Exit = entry, exit
	return out, nil
}

// graphBlock emits one node per view and recursively graphs each step
// between its flanking pair, returning the block's own entry/exit nodes.
func graphBlock(g *Graph, b *model.Block[view.GView], method string) (entry, exit NodeID) {
	if len(b.Views) != len(b.Steps)+1 {
		panic(&report.GraphError{Method: method, Reason: "block has no view between two steps"})
	}

	nodes := make([]NodeID, len(b.Views))
	for i, v := range b.Views {
		nodes[i] = g.addNode(v)
	}
	for i, s := range b.Steps {
		graphPartCmd(g, s, nodes[i], nodes[i+1], method)
	}
	return nodes[0], nodes[len(nodes)-1]
}

// graphPartCmd wires one step's entry/exit nodes per its case in §4.7's
// algorithm.
func graphPartCmd(g *Graph, pc model.PartCmd[view.GView], entry, exit NodeID, method string) {
	switch st := pc.(type) {
	case model.PrimCmd[view.GView]:
		g.addEdge(entry, exit, EdgeCommand, st.Cmd, nil)

	case model.ITECmd[view.GView]:
		thenEntry, thenExit := graphBlock(g, st.Then, method)
		elseEntry, elseExit := graphBlock(g, st.Else, method)
		g.addEdge(entry, thenEntry, EdgeAssume, nil, st.Cond)
		g.addEdge(entry, elseEntry, EdgeAssume, nil, expr.Not(st.Cond))
		g.addEdge(thenExit, exit, EdgeEpsilon, nil, nil)
		g.addEdge(elseExit, exit, EdgeEpsilon, nil, nil)

	case model.WhileCmd[view.GView]:
		bodyEntry, bodyExit := graphBlock(g, st.Body, method)
		if st.IsDoWhile {
			g.addEdge(entry, bodyEntry, EdgeEpsilon, nil, nil)
		} else {
			g.addEdge(entry, bodyEntry, EdgeAssume, nil, st.Cond)
			g.addEdge(entry, exit, EdgeAssume, nil, expr.Not(st.Cond))
		}
		g.addEdge(bodyExit, bodyEntry, EdgeAssume, nil, st.Cond)
		g.addEdge(bodyExit, exit, EdgeAssume, nil, expr.Not(st.Cond))

	default:
		panic(&report.GraphError{Method: method, Reason: fmt.Sprintf("unhandled command shape %T", pc)})
	}
}

// GraphModel graphs every method in m, collecting per-method failures in
// the returned Bag rather than aborting the whole pass.
func GraphModel(m *model.Model[view.GView]) (map[string]*Graph, *report.Bag) {
	bag := report.NewBag(report.StageGraph)
	out := make(map[string]*Graph, len(m.Axioms))
	for _, name := range m.MethodOrder {
		g, err := BuildGraph(name, m.Axioms[name])
		if err != nil {
			bag.AddError(err.Error(), nil, err)
			continue
		}
		out[name] = g
	}
	return out, bag
}
