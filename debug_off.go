//go:build !allocdebug

package alloc

// debugChecks enables the assertions that need bookkeeping. Build with
// -tags allocdebug to turn them on.
const debugChecks = false
