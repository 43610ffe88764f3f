package vec

import (
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// UseLogger set the logger that growth events are reported to. The
// package logs nothing by default.
func UseLogger(zapLogger *zap.Logger) {
	logger = zapLogger
}
