package pathselect

import "errors"

// errEmptySelection is wrapped into a SelectionFailed when the model
// returns zero valid paths — either selected_paths was empty/missing,
// or every entry was rejected as outside the candidate set.
var errEmptySelection = errors.New("pathselect: no candidate paths were selected")
