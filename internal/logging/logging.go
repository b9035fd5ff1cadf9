// Package logging is the ambient logger shared by every package in this
// module. It wraps zap the way the rest of the pack does (luxfi-adx depends
// on go.uber.org/zap directly for exactly this purpose): a single
// package-level logger, nop by default, swappable by the host process.
package logging

import "go.uber.org/zap"

var log *zap.Logger = zap.NewNop()

// SetLogger replaces the package-level logger. Call once at process start;
// nil resets to a no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		log = zap.NewNop()
		return
	}
	log = l
}

// L returns the current logger.
func L() *zap.Logger {
	return log
}
