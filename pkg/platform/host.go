package platform

import "sync"

var detectOnce = sync.OnceValue(func() Classifier {
	rawOS, rawArch := hostNames()
	return NewClassifier(rawOS, rawArch)
})

// Detect returns the classifier of the running host. The probe runs once per
// process; later calls return the same value.
func Detect() Classifier {
	return detectOnce()
}
