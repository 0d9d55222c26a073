package graph

import (
	"bufio"
	"strings"
	"testing"

	"github.com/BenSimner/starling-tool/internal/collate"
	"github.com/BenSimner/starling-tool/internal/guard"
	"github.com/BenSimner/starling-tool/internal/model"
	"github.com/BenSimner/starling-tool/internal/syntax"
)

func buildGraphs(t *testing.T, src string) map[string]*Graph {
	t.Helper()
	items, err := syntax.ParseFile(bufio.NewReader(strings.NewReader(src)))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	m, bag := model.BuildModel(collate.Collate(items))
	if bag.HasErrors() {
		t.Fatalf("unexpected model errors: %v", bag.Errors())
	}
	gm, gbag := guard.GuardModel(m)
	if gbag.HasErrors() {
		t.Fatalf("unexpected guard errors: %v", gbag.Errors())
	}
	graphs, grbag := GraphModel(gm)
	if grbag.HasErrors() {
		t.Fatalf("unexpected graph errors: %v", grbag.Errors())
	}
	return graphs
}

func countEdgeKinds(edges []Edge) map[EdgeKind]int {
	out := make(map[EdgeKind]int)
	for _, e := range edges {
		out[e.Kind]++
	}
	return out
}

const ticketLockSrc = `
	shared int ticket;
	shared int serving;
	thread int t;
	thread int s;

	view holdTick(int t);
	view holdLock();

	constraint emp -> ticket >= serving;
	constraint holdTick(t) -> ticket > t;
	constraint holdLock() -> ticket != serving;

	method lock() {
		{| emp |}
		<t = ticket>
		{| emp |}
		<ticket++>
		{| holdTick(t) |}
		do {
			{| holdTick(t) |}
			<s = serving>
			{| holdTick(t) |}
		} while (s != t)
		{| holdLock() |}
	}

	method unlock() {
		{| holdLock() |}
		<serving++>
		{| emp |}
	}
`

func TestGraphModelTicketLockProducesTwoGraphs(t *testing.T) {
	graphs := buildGraphs(t, ticketLockSrc)
	if len(graphs) != 2 {
		t.Fatalf("expected 2 CFGs, got %d", len(graphs))
	}
	if _, ok := graphs["lock"]; !ok {
		t.Fatalf("missing lock CFG")
	}
	if _, ok := graphs["unlock"]; !ok {
		t.Fatalf("missing unlock CFG")
	}
}

func TestGraphModelUnlockHasASingleIncrementEdge(t *testing.T) {
	g := buildGraphs(t, ticketLockSrc)["unlock"]
	if len(g.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(g.Nodes))
	}
	if len(g.Edges) != 1 {
		t.Fatalf("expected a single edge, got %d", len(g.Edges))
	}
	e := g.Edges[0]
	if e.Kind != EdgeCommand {
		t.Fatalf("expected a command edge, got %s", e.Kind)
	}
	if len(e.Cmd) != 1 || e.Cmd[0].Name != "inc_int" {
		t.Fatalf("expected a sole inc_int command, got %#v", e.Cmd)
	}
	if e.From != g.Entry || e.To != g.Exit {
		t.Fatalf("expected the edge to run straight from entry to exit")
	}
}

func TestGraphModelLockHasADoWhileLoopShape(t *testing.T) {
	g := buildGraphs(t, ticketLockSrc)["lock"]
	if len(g.Nodes) != 6 {
		t.Fatalf("expected 6 nodes (v0..v3 outside the loop, w0/w1 inside it), got %d", len(g.Nodes))
	}
	if len(g.Edges) != 6 {
		t.Fatalf("expected 6 edges, got %d", len(g.Edges))
	}

	kinds := countEdgeKinds(g.Edges)
	if kinds[EdgeCommand] != 3 {
		t.Fatalf("expected 3 command edges (fetch t, increment ticket, fetch serving), got %d", kinds[EdgeCommand])
	}
	if kinds[EdgeAssume] != 2 {
		t.Fatalf("expected 2 assume edges around the loop condition, got %d", kinds[EdgeAssume])
	}
	if kinds[EdgeEpsilon] != 1 {
		t.Fatalf("expected the do-while's unconditional entry edge, got %d epsilon edges", kinds[EdgeEpsilon])
	}

	var sawBodyBack, sawExitAssume bool
	for _, e := range g.Edges {
		if e.Kind != EdgeAssume {
			continue
		}
		if e.To == e.From {
			t.Fatalf("assume edge should never be a self-loop on the same node: %#v", e)
		}
		for _, n := range g.Nodes {
			if n.ID == e.To && n.ID != g.Exit {
				sawBodyBack = true
			}
			if n.ID == e.To && n.ID == g.Exit {
				sawExitAssume = true
			}
		}
	}
	if !sawBodyBack {
		t.Fatalf("expected one assume edge looping back into the loop body")
	}
	if !sawExitAssume {
		t.Fatalf("expected one assume edge leaving the loop to the exit node")
	}
}

func TestGraphModelITESplitsAndRejoins(t *testing.T) {
	src := `
		shared bool flag;

		method m() {
			{| emp |}
			if (flag) {
				{| emp |}
				<skip()>
				{| emp |}
			} else {
				{| emp |}
				<skip()>
				{| emp |}
			}
			{| emp |}
		}
	`
	g := buildGraphs(t, src)["m"]
	kinds := countEdgeKinds(g.Edges)
	if kinds[EdgeAssume] != 2 {
		t.Fatalf("expected 2 assume edges entering the branches, got %d", kinds[EdgeAssume])
	}
	if kinds[EdgeEpsilon] != 2 {
		t.Fatalf("expected 2 epsilon edges joining the branches back together, got %d", kinds[EdgeEpsilon])
	}
	if kinds[EdgeCommand] != 2 {
		t.Fatalf("expected one command edge per branch, got %d", kinds[EdgeCommand])
	}
}

func TestGraphModelDistinguishesPlainWhileFromDoWhile(t *testing.T) {
	src := `
		shared bool flag;

		method m() {
			{| emp |}
			while (flag) {
				{| emp |}
				<skip()>
				{| emp |}
			}
			{| emp |}
		}
	`
	g := buildGraphs(t, src)["m"]
	kinds := countEdgeKinds(g.Edges)
	if kinds[EdgeEpsilon] != 0 {
		t.Fatalf("a plain while loop should have no unconditional entry edge, got %d epsilon edges", kinds[EdgeEpsilon])
	}
	if kinds[EdgeAssume] != 4 {
		t.Fatalf("expected 4 assume edges (entry-in, entry-out, back, out), got %d", kinds[EdgeAssume])
	}
}
