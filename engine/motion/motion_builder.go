package motion

import "go.uber.org/zap"

// ControllerOption is a functional option for configuring a Controller.
type ControllerOption func(*controllerImpl)

// WithLogger sets the logger used for degenerate-direction diagnostics.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - ControllerOption: functional option to set the logger
func WithLogger(log *zap.Logger) ControllerOption {
	return func(c *controllerImpl) {
		if log != nil {
			c.log = log
		}
	}
}
