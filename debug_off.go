//go:build !ovectordebug

package ovector

// debugChecks enables precondition assertions. Build with -tags ovectordebug.
const debugChecks = false
