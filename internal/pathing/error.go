package pathing

import "errors"

// ErrRootNotAbsolute occurs when a [Resolver] is to be created for a root
// that cannot be made absolute.
var ErrRootNotAbsolute = errors.New("root is not an absolute path")
