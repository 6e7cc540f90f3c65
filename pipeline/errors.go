package pipeline

import "fmt"

// ResourceExhaustedError reports that a fixed-capacity resource space
// has no room for another entry; BindlessTable returns it when one of
// its slot spaces is full. It is always fatal: the pipeline has
// no eviction policy for device-resident resources that must survive
// until teardown.
type ResourceExhaustedError struct {
	Kind     string
	Capacity int
}

func (e *ResourceExhaustedError) Error() string {
	return fmt.Sprintf("pipeline: %s capacity of %d exhausted", e.Kind, e.Capacity)
}
