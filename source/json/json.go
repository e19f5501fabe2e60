package json

import (
	"bytes"
	"encoding/json"
	"io"

	eng "github.com/reoring/godeko/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// jsonSource tokenizes a JSON buffer with encoding/json, reconstructing each
// token's byte span against the original buffer: the decoder reports only the
// offset after a token, so the start is recovered by skipping the structural
// characters between the previous token and the current one.
type jsonSource struct {
	dec   *json.Decoder
	buf   []byte
	stack []frame
	prev  int
	last  int
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return &jsonSource{dec: dec, buf: b}
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON. The
// reader is drained up front; token ranges require the whole buffer.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return errorSource{err: err}
	}
	return NewBytes(b)
}

func (s *jsonSource) NextToken() (eng.Token, error) {
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
	case json.Delim:
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
	case json.Number:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Start: start, End: end}, nil
	case nil:
		s.valueDone()
		return eng.Token{Kind: eng.KindNull, Start: start, End: end}, nil
	}

	s.valueDone()
	return eng.Token{Kind: eng.KindNull, Start: start, End: end}, nil
}

// tokenStart skips whitespace and the separators between the previous token
// and the current one. Exact for well-formed input since the decoder never
// leaves token text behind.
func (s *jsonSource) tokenStart(end int) int {
	for i := s.prev; i < end && i < len(s.buf); i++ {
		switch s.buf[i] {
		case ' ', '\t', '\r', '\n', ',', ':':
		default:
			return i
		}
	}
	return end
}

func (s *jsonSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

func (s *jsonSource) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *jsonSource) Location() int { return s.last }

type errorSource struct{ err error }

func (s errorSource) NextToken() (eng.Token, error) { return eng.Token{}, s.err }
func (s errorSource) Location() int                 { return -1 }
