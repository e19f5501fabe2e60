//go:build !gojson

package gojson

import (
	"io"

	eng "github.com/reoring/godeko/internal/engine"
	jsontree "github.com/reoring/godeko/json"
	jsonsrc "github.com/reoring/godeko/source/json"
)

// Driver returns a stub driver when the gojson tag is not enabled. It
// delegates to the encoding/json-based source directly to avoid recursion.
func Driver() jsontree.Driver { return stub{} }

type stub struct{}

func (stub) NewBytes(b []byte) eng.TokenSource { return jsonsrc.NewBytes(b) }
func (stub) Name() string                      { return "encoding/json (gojson stub)" }

// NewReader mirrors the tagged implementation's surface.
func NewReader(r io.Reader) eng.TokenSource { return jsonsrc.NewReader(r) }

// NewBytes mirrors the tagged implementation's surface.
func NewBytes(b []byte) eng.TokenSource { return jsonsrc.NewBytes(b) }
