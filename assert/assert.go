// Package assert panics when an internal invariant of the simulation is broken. It is reserved for
// conditions that valid configuration can never produce.
package assert

import "fmt"

// IsTrue panics with a formatted message if ok is false.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(fmt.Errorf("assertion failed: "+message, args...))
	}
}
