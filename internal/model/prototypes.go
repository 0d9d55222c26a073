package model

import (
	"github.com/BenSimner/starling-tool/internal/expr"
	"github.com/BenSimner/starling-tool/internal/report"
	"github.com/BenSimner/starling-tool/internal/syntax"
	"github.com/BenSimner/starling-tool/internal/view"
)

// buildPrototypeTable builds the name -> PrototypeEntry table (responsibility
// #2), reporting DuplicateName for a prototype name declared twice.
func buildPrototypeTable(protos []*syntax.ViewProtoDecl, bag *report.Bag) map[string]PrototypeEntry {
	table := make(map[string]PrototypeEntry)
	for _, p := range protos {
		if _, ok := table[p.Name]; ok {
			reportDuplicate(bag, p.Name, "view prototype", p.Sp)
			continue
		}
		params := make([]expr.TypedName, len(p.Params))
		for i, tn := range p.Params {
			params[i] = expr.TypedName{Type: typeFromName(tn.Type), Name: tn.Name}
		}
		table[p.Name] = PrototypeEntry{
			Sig:       view.NewDFunc(p.Name, params...),
			IsIter:    p.IsIter,
			Anonymous: p.Anonymous,
		}
	}
	return table
}
