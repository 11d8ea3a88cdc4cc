package widget

// FixedHeight is a concrete widget reporting a caller-supplied constant
// height, standing in for a real renderer's measured widget (a rendered
// inline image, a code-folding placeholder) in scenarios and tests that
// need something concrete to attach to a point or collapsed range.
type FixedHeight struct {
	Label  string
	Height float64
}

var _ Type = FixedHeight{}

// ToDOM is opaque to the core; it returns the label as a stand-in
// presentation value.
func (w FixedHeight) ToDOM() any { return w.Label }

// Eq reports whether other is a FixedHeight with the same label and height.
func (w FixedHeight) Eq(other Type) bool {
	o, ok := other.(FixedHeight)
	return ok && o.Label == w.Label && o.Height == w.Height
}

// EstimatedHeight returns the widget's fixed height.
func (w FixedHeight) EstimatedHeight() float64 { return w.Height }

// LineAttributeOnly is a widget with no visual footprint of its own
// (EstimatedHeight -1, "unknown") and no presentation value. Because its
// height is unknown, BuildLineElements skips it in height-only mode;
// otherwise it is reported through Builder.AddWidget like any other widget.
type LineAttributeOnly struct {
	Name string
}

var _ Type = LineAttributeOnly{}

// ToDOM returns nil: this widget renders nothing.
func (w LineAttributeOnly) ToDOM() any { return nil }

// Eq reports whether other is a LineAttributeOnly with the same name.
func (w LineAttributeOnly) Eq(other Type) bool {
	o, ok := other.(LineAttributeOnly)
	return ok && o.Name == w.Name
}

// EstimatedHeight is always -1 ("unknown"): this widget has no layout
// footprint of its own.
func (w LineAttributeOnly) EstimatedHeight() float64 { return -1 }
