package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/circlesim/common"
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
	"go.uber.org/zap"
)

const (
	distanceEpsilon = 1e-9
	approachEpsilon = 1e-6
)

// NormalSource records which rule produced a contact normal.
type NormalSource uint8

const (
	NormalFromCenters NormalSource = iota
	NormalFromApproach
	NormalFromIdentity
)

func (s NormalSource) String() string {
	switch s {
	case NormalFromCenters:
		return "centers"
	case NormalFromApproach:
		return "approach"
	default:
		return "identity"
	}
}

// Manifold describes one overlapping pair. Normal points from B towards A;
// the corrections are the position deltas for A and B.
type Manifold struct {
	Normal      cp.Vector
	Overlap     float64
	Source      NormalSource
	CorrectionA cp.Vector
	CorrectionB cp.Vector
}

// CollisionSystem resolves every overlapping pair of registered bodies with
// mass-weighted separation and a restitution impulse. Pairs are visited once
// in ascending slot order and resolved one after another.
type CollisionSystem struct {
	Tuning common.Tuning

	log *zap.Logger
}

func NewCollisionSystem(t common.Tuning, log *zap.Logger) *CollisionSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollisionSystem{Tuning: t, log: log}
}

func (s *CollisionSystem) Step(w *ecs.World, tick Tick, contacts ContactReport) ContactReport {
	out := contacts.Clone()
	if s == nil || w == nil {
		return out
	}
	ents, bodies := liveBodies(w, component.ColliderComponent.ID())
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			m, ok := Collide(a, b, ents[i].Index(), ents[j].Index())
			if !ok {
				continue
			}
			out.Set(ents[i], component.ContactColliding)
			out.Set(ents[j], component.ContactColliding)
			if m.Source == NormalFromIdentity {
				s.log.Debug("coincident bodies, using identity normal",
					zap.Stringer("a", ents[i]),
					zap.Stringer("b", ents[j]),
					zap.Float64("overlap", m.Overlap),
				)
			}
			Resolve(a, b, m, s.Tuning.Restitution)
		}
	}
	return out
}

// Collide detects overlap between a and b. ia and ib are the stable arena
// indices of the bodies, used only when no geometric normal exists.
func Collide(a, b *component.Body, ia, ib int) (Manifold, bool) {
	d := a.Position.Sub(b.Position)
	dist := d.Length()
	overlap := a.Radius + b.Radius - dist
	if overlap <= 0 {
		return Manifold{}, false
	}

	m := Manifold{Overlap: overlap}
	rel := a.Velocity.Sub(b.Velocity)
	switch speed := rel.Length(); {
	case dist > distanceEpsilon:
		m.Normal = d.Mult(1 / dist)
		m.Source = NormalFromCenters
	case speed > approachEpsilon:
		m.Normal = rel.Mult(-1 / speed)
		m.Source = NormalFromApproach
	default:
		m.Normal = identityNormal(ia, ib)
		m.Source = NormalFromIdentity
	}

	invA, invB := a.InverseMass(), b.InverseMass()
	sum := invA + invB
	if sum == 0 {
		return m, true
	}
	ca := overlap * invA / sum
	cb := overlap * invB / sum
	if invA > 0 && invB > 0 {
		ca = math.Min(ca, overlap/2)
		cb = math.Min(cb, overlap/2)
	}
	m.CorrectionA = m.Normal.Mult(ca)
	m.CorrectionB = m.Normal.Mult(-cb)
	return m, true
}

// Resolve applies the manifold's position corrections and, unless the
// bodies already separate along the normal, the restitution impulse.
func Resolve(a, b *component.Body, m Manifold, restitution float64) {
	a.Position = a.Position.Add(m.CorrectionA)
	b.Position = b.Position.Add(m.CorrectionB)

	invA, invB := a.InverseMass(), b.InverseMass()
	sum := invA + invB
	if sum == 0 {
		return
	}
	vn := a.Velocity.Sub(b.Velocity).Dot(m.Normal)
	if vn > 0 {
		return
	}
	j := -(1 + restitution) * vn / sum
	a.Velocity = a.Velocity.Add(m.Normal.Mult(j * invA))
	b.Velocity = b.Velocity.Sub(m.Normal.Mult(j * invB))
}

// identityNormal derives a unit vector from the unordered index pair. The
// lower index always gets the same direction so swapping the pair mirrors it.
func identityNormal(ia, ib int) cp.Vector {
	lo, hi, sign := ia, ib, 1.0
	if lo > hi {
		lo, hi, sign = hi, lo, -1.0
	}
	h := mix64(uint64(uint32(lo))<<32 | uint64(uint32(hi)))
	angle := float64(h>>11) / (1 << 53) * 2 * math.Pi
	return cp.ForAngle(angle).Mult(sign)
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
