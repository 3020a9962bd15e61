package ecs

// IntersectsAll reports whether slot id is present in every set.
func IntersectsAll(id int, sets []*SparseSet) bool {
	for _, s := range sets {
		if !s.Has(id) {
			return false
		}
	}
	return true
}
