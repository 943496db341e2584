package resolve

import "errors"

var (
	errEmptySeed      = errors.New("seed is empty")
	errNoNameResolver = errors.New("no name resolver configured for bare-name seeds")
	errNameNotFound   = errors.New("name did not resolve to a URL")
	errNoHost         = errors.New("seed URL has no host")
)
