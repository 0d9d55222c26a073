// Package collate implements the single pass that partitions a parsed
// script into the five sub-lists the Modeller consumes.
package collate

import "github.com/BenSimner/starling-tool/internal/syntax"

// Script is a ScriptItem list partitioned by kind, each sub-list in source
// order. Pure; no validation beyond shape.
type Script struct {
	Globals     []*syntax.GlobalDecl
	Locals      []*syntax.LocalDecl
	ViewProtos  []*syntax.ViewProtoDecl
	Constraints []*syntax.ConstraintDecl
	Methods     []*syntax.MethodDecl
}

// Collate partitions items into a Script, preserving source order within
// each bucket.
func Collate(items []syntax.ScriptItem) *Script {
	s := &Script{}
	for _, item := range items {
		switch v := item.(type) {
		case *syntax.GlobalDecl:
			s.Globals = append(s.Globals, v)
		case *syntax.LocalDecl:
			s.Locals = append(s.Locals, v)
		case *syntax.ViewProtoDecl:
			s.ViewProtos = append(s.ViewProtos, v)
		case *syntax.ConstraintDecl:
			s.Constraints = append(s.Constraints, v)
		case *syntax.MethodDecl:
			s.Methods = append(s.Methods, v)
		}
	}
	return s
}

// Flatten is Collate's inverse: it concatenates a Script's five buckets
// back into a single ScriptItem list, in the fixed bucket order globals,
// locals, view prototypes, constraints, methods. Collate(Flatten(s)) is
// equal to s for any Script Collate produced, since flattening only
// re-orders items into bucket order and Collate re-sorts by dynamic type
// regardless of input order.
func Flatten(s *Script) []syntax.ScriptItem {
	items := make([]syntax.ScriptItem, 0, len(s.Globals)+len(s.Locals)+len(s.ViewProtos)+len(s.Constraints)+len(s.Methods))
	for _, g := range s.Globals {
		items = append(items, g)
	}
	for _, l := range s.Locals {
		items = append(items, l)
	}
	for _, vp := range s.ViewProtos {
		items = append(items, vp)
	}
	for _, c := range s.Constraints {
		items = append(items, c)
	}
	for _, m := range s.Methods {
		items = append(items, m)
	}
	return items
}
