package component

// Stage membership tags. A body takes part in a stage only while it holds
// that stage's tag.

type InputTarget struct{}

var InputTargetComponent = NewComponent[InputTarget]()

type Dynamic struct{}

var DynamicComponent = NewComponent[Dynamic]()

type Bounded struct{}

var BoundedComponent = NewComponent[Bounded]()

type Collider struct{}

var ColliderComponent = NewComponent[Collider]()
