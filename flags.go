package canopy

// Anchor selects one of the nine reference points of a rectangle.
type Anchor uint8

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorMidLeft
	AnchorCenter
	AnchorMidRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight

	numAnchors = 9
)

var anchorNames = [numAnchors]string{
	"top-left", "top-center", "top-right",
	"mid-left", "center", "mid-right",
	"bottom-left", "bottom-center", "bottom-right",
}

// String returns the anchor's markup name.
func (a Anchor) String() string {
	if a >= numAnchors {
		return "invalid"
	}
	return anchorNames[a]
}

// ParseAnchor maps a markup name such as "bottom-right" to an Anchor.
func ParseAnchor(name string) (Anchor, bool) {
	for i, n := range anchorNames {
		if n == name {
			return Anchor(i), true
		}
	}
	return AnchorTopLeft, false
}

// Widget-kind semantic bits stored in Flags.Kind. Concrete widget kinds
// interpret these themselves; the core never reads them.
const (
	KindAlignCenter uint32 = 1 << iota // center content horizontally
	KindAlignRight                     // right-align content
	KindPassword                       // mask text content
	KindVertical                       // vertical orientation
)

// Flags is the per-node configuration: anchors, draw order, visibility,
// focus behavior, scale exemptions and widget-kind bits.
type Flags struct {
	ParentAnchor Anchor
	LocalAnchor  Anchor

	// ChildrenFirst traverses children before the node itself in both the
	// update and draw passes, so the node paints on top of its children.
	ChildrenFirst bool

	Visible   bool
	Focusable bool
	Tabbable  bool

	PositionScaleExempt bool
	SizeScaleExempt     bool

	// IgnoreOverCount keeps the node out of the per-pointer over count.
	IgnoreOverCount bool

	// AutoWidth and AutoHeight take that axis from the widget's ContentSizer.
	AutoWidth  bool
	AutoHeight bool

	Kind uint32
}

// DefaultFlags returns visible, top-left anchored flags.
func DefaultFlags() Flags {
	return Flags{Visible: true}
}

// Has reports whether every bit of kind is set.
func (f Flags) Has(kind uint32) bool {
	return f.Kind&kind == kind
}

const (
	bitChildrenFirst = 8 + iota
	bitVisible
	bitFocusable
	bitTabbable
	bitPositionScaleExempt
	bitSizeScaleExempt
	bitIgnoreOverCount
	bitAutoWidth
	bitAutoHeight

	kindShift = 32
)

// Pack encodes f into the 64-bit layout used by serialized documents:
// bits 0-3 parent anchor, 4-7 local anchor, 8-16 booleans, 32-63 kind bits.
func (f Flags) Pack() uint64 {
	v := uint64(f.ParentAnchor&0xF) | uint64(f.LocalAnchor&0xF)<<4
	set := func(b bool, bit uint) {
		if b {
			v |= 1 << bit
		}
	}
	set(f.ChildrenFirst, bitChildrenFirst)
	set(f.Visible, bitVisible)
	set(f.Focusable, bitFocusable)
	set(f.Tabbable, bitTabbable)
	set(f.PositionScaleExempt, bitPositionScaleExempt)
	set(f.SizeScaleExempt, bitSizeScaleExempt)
	set(f.IgnoreOverCount, bitIgnoreOverCount)
	set(f.AutoWidth, bitAutoWidth)
	set(f.AutoHeight, bitAutoHeight)
	return v | uint64(f.Kind)<<kindShift
}

// UnpackFlags decodes the layout produced by Flags.Pack. Anchor selectors
// are not validated.
func UnpackFlags(v uint64) Flags {
	get := func(bit uint) bool { return v&(1<<bit) != 0 }
	return Flags{
		ParentAnchor:        Anchor(v & 0xF),
		LocalAnchor:         Anchor(v >> 4 & 0xF),
		ChildrenFirst:       get(bitChildrenFirst),
		Visible:             get(bitVisible),
		Focusable:           get(bitFocusable),
		Tabbable:            get(bitTabbable),
		PositionScaleExempt: get(bitPositionScaleExempt),
		SizeScaleExempt:     get(bitSizeScaleExempt),
		IgnoreOverCount:     get(bitIgnoreOverCount),
		AutoWidth:           get(bitAutoWidth),
		AutoHeight:          get(bitAutoHeight),
		Kind:                uint32(v >> kindShift),
	}
}
