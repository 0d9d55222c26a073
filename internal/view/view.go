package view

// View is a multiset of VFuncs: an assertion in the source proof
// language, order-irrelevant but multiplicity-significant.
type View = Multiset[VFunc]

// EmptyView is the empty view, `emp` in source syntax.
func EmptyView() View { return NewMultiset[VFunc]() }

// SingletonView wraps a single VFunc as a one-element view.
func SingletonView(f VFunc) View { return Singleton[VFunc](f) }

// UnionViews is multiset union, `*` in source syntax.
func UnionViews(a, b View) View { return Union(a, b) }

// DifferenceViews is multiset difference, clamped at zero.
func DifferenceViews(a, b View) View { return Difference(a, b) }

// OView is an ordered list of VFuncs, used where source order matters
// (the body of a view definition lists its constituent funcs positionally).
type OView []VFunc

// DView is an ordered list of DFuncs: the signature side of a view
// definition.
type DView []DFunc

// FlattenView renders a view as a flat, deterministically-ordered slice.
func FlattenView(v View) []VFunc { return v.Flatten() }
