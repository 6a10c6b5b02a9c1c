package geom

// Orientation is the camera direction for the sampling plane: Theta is the
// polar tilt and Phi the azimuthal rotation, both in radians and unbounded.
type Orientation struct {
	Theta float64 `json:"theta" yaml:"theta"`
	Phi   float64 `json:"phi" yaml:"phi"`
}

// Basis returns the sampling plane frame for this orientation.
func (o Orientation) Basis() Basis {
	return PlaneBasis(o.Phi, o.Theta)
}

// Rotate adds dTheta and dPhi to the orientation.
func (o *Orientation) Rotate(dTheta, dPhi float64) {
	o.Theta += dTheta
	o.Phi += dPhi
}
