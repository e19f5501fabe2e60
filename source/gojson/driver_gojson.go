//go:build gojson

package gojson

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/godeko/internal/engine"
	jsontree "github.com/reoring/godeko/json"
)

// Driver returns a json.Driver backed by goccy/go-json.
func Driver() jsontree.Driver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewBytes(b []byte) eng.TokenSource { return NewBytes(b) }
func (driverGoJSON) Name() string                      { return "go-json" }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	buf   []byte
	stack []frame
	prev  int
	last  int
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource {
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return &source{dec: dec, buf: b}
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return errorSource{err: err}
	}
	return NewBytes(b)
}

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	end := int(s.dec.InputOffset())
	start := s.tokenStart(end)
	s.prev = end
	s.last = end

	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Start: start, End: end}, nil
		case '}':
			s.pop()
			s.valueDone()
			return eng.Token{Kind: eng.KindEndObject, Start: start, End: end}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return eng.Token{Kind: eng.KindBeginArray, Start: start, End: end}, nil
		case ']':
			s.pop()
			s.valueDone()
			return eng.Token{Kind: eng.KindEndArray, Start: start, End: end}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return eng.Token{Kind: eng.KindKey, String: v, Start: start, End: end}, nil
			}
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v, Start: start, End: end}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v, Start: start, End: end}, nil
	case j.Number:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Start: start, End: end}, nil
	case nil:
		s.valueDone()
		return eng.Token{Kind: eng.KindNull, Start: start, End: end}, nil
	}

	s.valueDone()
	return eng.Token{Kind: eng.KindNull, Start: start, End: end}, nil
}

func (s *source) tokenStart(end int) int {
	for i := s.prev; i < end && i < len(s.buf); i++ {
		switch s.buf[i] {
		case ' ', '\t', '\r', '\n', ',', ':':
		default:
			return i
		}
	}
	return end
}

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *source) Location() int { return s.last }

type errorSource struct{ err error }

func (s errorSource) NextToken() (eng.Token, error) { return eng.Token{}, s.err }
func (s errorSource) Location() int                 { return -1 }
