// BuildModel is the Modeller's entry point, invoked by the frontend driver
// once Collate has partitioned the parsed script.
package model

import (
	"github.com/BenSimner/starling-tool/internal/collate"
	"github.com/BenSimner/starling-tool/internal/report"
	"github.com/BenSimner/starling-tool/internal/view"
)

// BuildModel discharges all five of the Modeller's responsibilities:
// variable maps, the view-prototype table, view_defs, atomic-primitive
// semantics, and each method's command tree. Errors are
// accumulated in the returned Bag rather than aborting the pass -- one
// malformed constraint or method body does not prevent reporting problems
// in the rest of the script.
func BuildModel(script *collate.Script) (*Model[view.CView], *report.Bag) {
	bag := report.NewBag(report.StageModel)

	globals, locals := buildVarMaps(script, bag)
	protos := buildPrototypeTable(script.ViewProtos, bag)

	r := &resolver{
		globals: globals,
		locals:  locals,
		protos:  protos,
		syms:    newSymbolRegistry(),
		bag:     bag,
	}

	viewDefs := buildViewDefs(script.ViewProtos, script.Constraints, r)

	m := newModel[view.CView]()
	m.Globals = globals
	m.Locals = locals
	m.Prototypes = protos
	m.ViewDefs = viewDefs

	for _, md := range script.Methods {
		if _, ok := m.Axioms[md.Name]; ok {
			reportDuplicate(bag, md.Name, "method", md.Sp)
			continue
		}
		body, err := r.convertBlock(md.Body)
		if err != nil {
			bag.AddError(err.Error(), md.Sp, err)
			continue
		}
		m.MethodOrder = append(m.MethodOrder, md.Name)
		m.Axioms[md.Name] = body
	}

	m.Semantics = append(baseSemantics(), r.syms.entries...)
	return m, bag
}
