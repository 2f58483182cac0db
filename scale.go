package canopy

import "sort"

// ScaleBreakpoint maps a key (screen area in pixels, or DPI) to a scale.
type ScaleBreakpoint struct {
	Key   float64 `mapstructure:"key"`
	Scale float64 `mapstructure:"scale"`
}

// insertBreakpoint keeps table sorted by Key. A repeated key replaces the
// previous scale.
func insertBreakpoint(table []ScaleBreakpoint, bp ScaleBreakpoint) []ScaleBreakpoint {
	i := sort.Search(len(table), func(i int) bool { return table[i].Key >= bp.Key })
	if i < len(table) && table[i].Key == bp.Key {
		table[i] = bp
		return table
	}
	table = append(table, ScaleBreakpoint{})
	copy(table[i+1:], table[i:])
	table[i] = bp
	return table
}

// interpolateScale resolves v against a sorted table: values outside the
// table clamp to the first or last scale, values between two breakpoints
// interpolate linearly. An empty table yields 1.
func interpolateScale(table []ScaleBreakpoint, v float64) float64 {
	n := len(table)
	if n == 0 {
		return 1
	}
	if v <= table[0].Key {
		return table[0].Scale
	}
	if v >= table[n-1].Key {
		return table[n-1].Scale
	}
	i := sort.Search(n, func(i int) bool { return table[i].Key > v }) // table[i-1].Key <= v < table[i].Key
	lo, hi := table[i-1], table[i]
	t := (v - lo.Key) / (hi.Key - lo.Key)
	return lo.Scale + (hi.Scale-lo.Scale)*t
}

// PushScreenScale adds a screen-area breakpoint.
func (m *Manager) PushScreenScale(area, scale float64) {
	m.screenScales = insertBreakpoint(m.screenScales, ScaleBreakpoint{Key: area, Scale: scale})
}

// PushDPIScale adds a DPI breakpoint and drops the cached DPI scale.
func (m *Manager) PushDPIScale(dpi, scale float64) {
	m.dpiScales = insertBreakpoint(m.dpiScales, ScaleBreakpoint{Key: dpi, Scale: scale})
	m.InvalidateDPIScale()
}

// SetDPI sets the display DPI and drops the cached DPI scale.
func (m *Manager) SetDPI(dpi float64) {
	m.dpi = dpi
	m.InvalidateDPIScale()
}

// DPI returns the display DPI.
func (m *Manager) DPI() float64 { return m.dpi }

// InvalidateDPIScale forces the DPI scale to be recomputed on next use.
// Call it when the display configuration changes.
func (m *Manager) InvalidateDPIScale() {
	m.dpiCached = false
}

// DPIScale returns the DPI component of the global scale, computing it once.
func (m *Manager) DPIScale() float64 {
	if !m.dpiCached {
		m.dpiScale = interpolateScale(m.dpiScales, m.dpi)
		m.dpiCached = true
	}
	return m.dpiScale
}

// ScreenScale returns the screen-area component of the global scale.
func (m *Manager) ScreenScale(w, h float64) float64 {
	return interpolateScale(m.screenScales, w*h)
}

// FindScaleForSize returns the global scale for a w×h screen: the
// screen-area scale multiplied by the DPI scale.
func (m *Manager) FindScaleForSize(w, h float64) float64 {
	return m.ScreenScale(w, h) * m.DPIScale()
}
