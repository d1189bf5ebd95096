package view

import "math"

const settleEpsilon = 0.01

// Spring is a damped spring on one axis. Each Step does
// vel += (target-pos)*Stiffness; vel *= Damping; pos += vel.
type Spring struct {
	Pos, Vel  float64
	Stiffness float64
	Damping   float64
}

// NewSpring clamps the constants into the stable region: stiffness in
// (0, 1], damping in [0, 1) and stiffness*damping below 1.
func NewSpring(stiffness, damping float64) Spring {
	if stiffness <= 0 || math.IsNaN(stiffness) {
		stiffness = 0.45
	}
	if stiffness > 1 {
		stiffness = 1
	}
	if damping < 0 || math.IsNaN(damping) {
		damping = 0
	}
	if damping >= 1 {
		damping = 0.99
	}
	if stiffness*damping >= 1 {
		damping = 0.99 / stiffness
	}
	return Spring{Stiffness: stiffness, Damping: damping}
}

func (s *Spring) Step(target float64) {
	s.Vel += (target - s.Pos) * s.Stiffness
	s.Vel *= s.Damping
	s.Pos += s.Vel
}

func (s *Spring) Snap(target float64) {
	s.Pos = target
	s.Vel = 0
}

func (s *Spring) Settled(target float64) bool {
	return math.Abs(target-s.Pos) < settleEpsilon && math.Abs(s.Vel) < settleEpsilon
}

// Cell rounds the position to the nearest cell.
func (s *Spring) Cell() int {
	return int(math.Round(s.Pos))
}

// Spring2 is two independent springs, used for the file cursor.
type Spring2 struct {
	X, Y Spring
}

func NewSpring2(stiffness, damping float64) Spring2 {
	return Spring2{X: NewSpring(stiffness, damping), Y: NewSpring(stiffness, damping)}
}

func (s *Spring2) Step(tx, ty float64) {
	s.X.Step(tx)
	s.Y.Step(ty)
}

func (s *Spring2) Snap(tx, ty float64) {
	s.X.Snap(tx)
	s.Y.Snap(ty)
}

func (s *Spring2) Settled(tx, ty float64) bool {
	return s.X.Settled(tx) && s.Y.Settled(ty)
}

func (s *Spring2) Cell() (int, int) {
	return s.X.Cell(), s.Y.Cell()
}
