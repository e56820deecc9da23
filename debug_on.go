//go:build allocdebug

package alloc

const debugChecks = true
