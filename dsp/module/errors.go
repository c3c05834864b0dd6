package module

import "errors"

// ErrNotInitialized is returned by Process when the stage has not been
// successfully initialized since construction or its last reconfiguration.
var ErrNotInitialized = errors.New("module: not initialized")
