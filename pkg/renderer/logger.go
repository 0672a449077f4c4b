package renderer

import (
	"github.com/golang/glog"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger on top of glog
type DefaultLogger struct{}

// Printf logs at info level
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	glog.Infof(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}
