package extract

import "errors"

// errAllPagesFailed is wrapped into an ExtractionFailed when every
// selected page failed to produce extractable text.
var errAllPagesFailed = errors.New("extract: zero pages produced extractable text")
