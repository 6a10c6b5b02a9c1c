package field

// Window is the physical extent of the sampling plane and the color scale.
// The plane spans [-HalfWidth, HalfWidth] x [-HalfHeight, HalfHeight]
// meters; the averaged variant also spans [-HalfDepth, HalfDepth] along the
// plane normal.
type Window struct {
	HalfWidth  float64 `json:"half_width" yaml:"half_width"`
	HalfHeight float64 `json:"half_height" yaml:"half_height"`
	HalfDepth  float64 `json:"half_depth" yaml:"half_depth"`

	// NormConst is the fixed divisor applied by the split-fixed and
	// phase-wheel policies. Smaller values mean brighter output.
	NormConst float64 `json:"norm_const" yaml:"norm_const"`
}

// Bounds returns xmin, xmax, ymin, ymax.
func (w Window) Bounds() (xmin, xmax, ymin, ymax float64) {
	return -w.HalfWidth, w.HalfWidth, -w.HalfHeight, w.HalfHeight
}

// Zoom multiplies both in-plane half-extents by factor.
func (w *Window) Zoom(factor float64) {
	w.HalfWidth *= factor
	w.HalfHeight *= factor
}

// ScaleSensitivity multiplies the color divisor by factor.
func (w *Window) ScaleSensitivity(factor float64) {
	w.NormConst *= factor
}
