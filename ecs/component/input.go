package component

// Input is one frame's snapshot of the held control keys.
type Input struct {
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Jump   bool
	Grow   bool
	Shrink bool
	Delete bool
}
