//go:build ovectordebug

package ovector

const debugChecks = true
