package render

import "errors"

// ErrRender covers malformed or incomplete quotation data at render time.
// Reasons are wrapped onto it so the boundary can map the whole family.
var ErrRender = errors.New("unable to render quotation document")
