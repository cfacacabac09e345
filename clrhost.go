package clrhost

import (
	"go.uber.org/zap"

	"github.com/wippyai/clrhost/engine"
	"github.com/wippyai/clrhost/property"
)

// SetLogger routes the logs of every package to l.
// Call it before binding the runtime library.
func SetLogger(l *zap.Logger) {
	engine.SetLogger(l)
	property.SetLogger(l)
}
