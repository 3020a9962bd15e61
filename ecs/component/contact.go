package component

import "strings"

// Contact is the set of transient per-tick flags of a body.
type Contact uint8

const (
	ContactColliding Contact = 1 << iota
	ContactGround
	ContactCeiling
	ContactLeft
	ContactRight

	ContactNone Contact = 0
	ContactSide         = ContactLeft | ContactRight
)

func (c Contact) Has(f Contact) bool {
	return c&f != 0
}

func (c Contact) With(f Contact) Contact {
	return c | f
}

func (c Contact) Without(f Contact) Contact {
	return c &^ f
}

func (c Contact) String() string {
	if c == ContactNone {
		return "none"
	}
	names := make([]string, 0, 5)
	for _, f := range []struct {
		flag Contact
		name string
	}{
		{ContactColliding, "colliding"},
		{ContactGround, "ground"},
		{ContactCeiling, "ceiling"},
		{ContactLeft, "left"},
		{ContactRight, "right"},
	} {
		if c.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, "|")
}
