package gomem

import "errors"

// ErrorNotFound address is not tracked by the manager; the block, if
// any, is left untouched.
var ErrorNotFound = errors.New("mm.notfound")

// ErrorInvalidManager manager reference is nil or already freed.
var ErrorInvalidManager = errors.New("mm.invalidmanager")
