package advanced

import "github.com/pkg/errors"

// Threading errors up and down every step of the mesh surgery would add a ton
// of complexity to the code. Internal states that should be unreachable panic
// instead, and the root package recovers to convert them to an error. A
// topology that has panicked is not safe to keep using.

type TopologyError struct {
	error
}

// Panic with a TopologyError.
func fatalf(format string, args ...interface{}) {
	panic(TopologyError{errors.Errorf(format, args...)})
}

func HandleTopologyPanicRecover(r interface{}) error {
	if r != nil {
		if topologyError, ok := r.(TopologyError); ok {
			return topologyError.error
		}
		panic(r)
	}
	return nil
}
