package view

// UsageKind is the usage discipline attached to a view assertion.
type UsageKind int

const (
	// Mandatory views must be exercised by the proof.
	Mandatory UsageKind = iota
	// Advisory views may be elided.
	Advisory
)

func (k UsageKind) String() string {
	if k == Mandatory {
		return "mandatory"
	}
	return "advisory"
}

// ViewExpr wraps a view with its usage kind. The Guarder and Grapher work
// on CView/GView assertions, which carry no usage kind, so neither stage
// reads Kind.
type ViewExpr struct {
	Kind UsageKind
	View View
}

// NewViewExpr constructs a ViewExpr.
func NewViewExpr(kind UsageKind, v View) ViewExpr {
	return ViewExpr{Kind: kind, View: v}
}
