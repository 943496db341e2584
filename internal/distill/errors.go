package distill

import "errors"

// errUnderfilled is wrapped into a DistillationFailed when the parsed
// object yields fewer schema fields than the configured minimum.
var errUnderfilled = errors.New("distill: fewer than the minimum number of schema fields were present")
