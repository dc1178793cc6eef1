package audio

import "errors"

// ErrRender wraps every decode, mix, encode, and tag failure. It is the only
// error kind that aborts a report run.
var ErrRender = errors.New("audio render failed")
