package json

import (
	"encoding/json"
	"errors"
	"io"
	"sync"

	godeko "github.com/reoring/godeko"
	eng "github.com/reoring/godeko/internal/engine"
	jsonsrc "github.com/reoring/godeko/source/json"
)

// Options configures the parser.
type Options struct {
	// OnDuplicateKey controls whether repeated object keys produce a
	// parse-phase diagnostic with the given severity. Ignore disables the
	// check entirely.
	OnDuplicateKey godeko.Severity
	// MaxDepth caps container nesting; 0 means unlimited.
	MaxDepth int
	// MaxBytes caps the consumed input size; 0 means unlimited.
	MaxBytes int
}

// Driver converts raw JSON bytes into a token source. The default is backed
// by encoding/json; swap it with SetDriver (see source/gojson for a
// goccy/go-json driver behind the gojson build tag).
type Driver interface {
	NewBytes(b []byte) eng.TokenSource
	Name() string
}

var (
	driverMu      sync.RWMutex
	currentDriver Driver = defaultDriver{}
)

// SetDriver replaces the global token driver; nil values are ignored.
func SetDriver(d Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	currentDriver = d
	driverMu.Unlock()
}

// UseDefaultDriver restores the encoding/json-backed driver.
func UseDefaultDriver() {
	driverMu.Lock()
	currentDriver = defaultDriver{}
	driverMu.Unlock()
}

func getDriver() Driver {
	driverMu.RLock()
	d := currentDriver
	driverMu.RUnlock()
	return d
}

type defaultDriver struct{}

func (defaultDriver) NewBytes(b []byte) eng.TokenSource { return jsonsrc.NewBytes(b) }
func (defaultDriver) Name() string                      { return "encoding/json" }

// Root is the result of parsing one JSON source: a best-effort tree plus the
// parse-phase diagnostics.
type Root struct {
	value  *Node
	diags  godeko.Diagnostics
	source string
}

// Value returns the root value node. ok is false when nothing usable was
// parsed; the parse diagnostics already explain why.
func (r *Root) Value() (*Node, bool) {
	if r.value == nil || r.value.kind == KindBogus {
		return nil, false
	}
	return r.value, true
}

// Diagnostics returns the parse-phase diagnostics in source order.
func (r *Root) Diagnostics() godeko.Diagnostics { return r.diags }

// Source returns the original text the tree was parsed from.
func (r *Root) Source() string { return r.source }

// Parse tokenizes and tree-builds source. It never fails outright: defects
// become diagnostics and the tree keeps whatever was built before the first
// unrecoverable token error.
func Parse(source string, opts Options) *Root {
	src := getDriver().NewBytes([]byte(source))

	var diags godeko.Diagnostics
	if opts.OnDuplicateKey != godeko.Ignore || opts.MaxDepth > 0 || opts.MaxBytes > 0 {
		dup := eng.DupIgnore
		if opts.OnDuplicateKey != godeko.Ignore {
			dup = eng.DupReport
		}
		src = eng.WrapWithEnforcement(src, eng.EnforceOptions{
			OnDuplicate: dup,
			MaxDepth:    opts.MaxDepth,
			MaxBytes:    opts.MaxBytes,
			IssueSink: func(si eng.SimpleIssue) {
				if si.Code == godeko.CodeDuplicateKey {
					diags.Push(godeko.NewDuplicateKey(si.Key, opts.OnDuplicateKey, godeko.Range{Start: si.Start, End: si.End}))
				}
			},
		})
	}

	p := &parser{src: src, diags: &diags}
	var value *Node
	if tok, ok := p.next(); ok {
		value = p.parseValue(tok)
		p.expectEOF()
	}
	return &Root{value: value, diags: diags, source: source}
}

type parser struct {
	src    eng.TokenSource
	diags  *godeko.Diagnostics
	failed bool
	end    int
}

// next pulls one token. After the first token error the stream is dead:
// every later call reports failure without another diagnostic.
func (p *parser) next() (eng.Token, bool) {
	if p.failed {
		return eng.Token{}, false
	}
	tok, err := p.src.NextToken()
	if err != nil {
		p.fail(err)
		return eng.Token{}, false
	}
	if tok.End > p.end {
		p.end = tok.End
	}
	return tok, true
}

func (p *parser) fail(err error) {
	p.failed = true
	at := godeko.Range{Start: p.end, End: p.end}

	if errors.Is(err, io.EOF) {
		p.diags.Push(godeko.NewParseError("unexpected end of input", at))
		return
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		d := godeko.NewParseError(ie.Message, godeko.Range{Start: ie.Start, End: ie.End})
		d.Code = ie.Code
		p.diags.Push(d)
		return
	}
	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		at = godeko.Range{Start: int(serr.Offset), End: int(serr.Offset)}
	}
	p.diags.Push(godeko.NewParseError(err.Error(), at))
}

func (p *parser) parseValue(tok eng.Token) *Node {
	rng := godeko.Range{Start: tok.Start, End: tok.End}
	switch tok.Kind {
	case eng.KindNull:
		return &Node{kind: KindNull, rng: rng}
	case eng.KindBool:
		return &Node{kind: KindBool, rng: rng, boolean: tok.Bool}
	case eng.KindNumber:
		return &Node{kind: KindNumber, rng: rng, text: tok.Number}
	case eng.KindString:
		return &Node{kind: KindString, rng: rng, text: tok.String}
	case eng.KindBeginArray:
		return p.parseArray(tok)
	case eng.KindBeginObject:
		return p.parseObject(tok)
	default:
		p.diags.Push(godeko.NewParseError("unexpected token", rng))
		return &Node{kind: KindBogus, rng: rng}
	}
}

func (p *parser) parseArray(open eng.Token) *Node {
	n := &Node{kind: KindArray, rng: godeko.Range{Start: open.Start, End: open.End}}
	for {
		tok, ok := p.next()
		if !ok {
			break
		}
		if tok.Kind == eng.KindEndArray {
			n.rng.End = tok.End
			return n
		}
		n.elems = append(n.elems, p.parseValue(tok))
		if p.failed {
			break
		}
	}
	n.rng.End = p.end
	return n
}

func (p *parser) parseObject(open eng.Token) *Node {
	n := &Node{kind: KindObject, rng: godeko.Range{Start: open.Start, End: open.End}}
	for {
		tok, ok := p.next()
		if !ok {
			break
		}
		if tok.Kind == eng.KindEndObject {
			n.rng.End = tok.End
			return n
		}
		if tok.Kind != eng.KindKey {
			p.diags.Push(godeko.NewParseError("expected object key", godeko.Range{Start: tok.Start, End: tok.End}))
			break
		}
		key := &Node{kind: KindString, rng: godeko.Range{Start: tok.Start, End: tok.End}, text: tok.String}
		vtok, ok := p.next()
		if !ok {
			// value missing; keep the keyed slot so consumers see the gap
			n.members = append(n.members, Member{Key: key})
			break
		}
		n.members = append(n.members, Member{Key: key, Value: p.parseValue(vtok)})
		if p.failed {
			break
		}
	}
	n.rng.End = p.end
	return n
}

// expectEOF reports content left after the root value.
func (p *parser) expectEOF() {
	if p.failed {
		return
	}
	tok, err := p.src.NextToken()
	if err == nil {
		p.diags.Push(godeko.NewParseError("unexpected trailing content", godeko.Range{Start: tok.Start, End: tok.End}))
		return
	}
	if !errors.Is(err, io.EOF) {
		p.fail(err)
	}
}
