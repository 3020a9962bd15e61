package system

import (
	"maps"

	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
)

// ContactReport carries the transient contact flags of every body from one
// stage to the next. Stages never mutate the report they receive.
type ContactReport map[ecs.Entity]component.Contact

func NewContactReport() ContactReport {
	return make(ContactReport)
}

func (r ContactReport) Of(e ecs.Entity) component.Contact {
	return r[e]
}

func (r ContactReport) Has(e ecs.Entity, f component.Contact) bool {
	return r[e].Has(f)
}

func (r ContactReport) Set(e ecs.Entity, f component.Contact) {
	r[e] = r[e].With(f)
}

func (r ContactReport) Clear(e ecs.Entity, f component.Contact) {
	c := r[e].Without(f)
	if c == component.ContactNone {
		delete(r, e)
		return
	}
	r[e] = c
}

// Clone returns an independent copy; a nil report clones to an empty one.
func (r ContactReport) Clone() ContactReport {
	out := make(ContactReport, len(r))
	maps.Copy(out, r)
	return out
}
