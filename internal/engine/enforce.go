package engine

// Enforcement wrapper for TokenSource to apply duplicate key detection,
// max depth checks, and max bytes truncation in a streaming fashion.

// DuplicateStrictness selects how repeated object keys are handled.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupReport
)

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int
	// IssueSink receives duplicate-key issues; depth and size violations are
	// additionally returned as IssueError since the stream cannot continue.
	IssueSink func(SimpleIssue)
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key
// policy, maximum nesting depth, and maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []dupFrame
	depth int
}

func (e *enforcingTokenSource) report(si SimpleIssue) {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindBeginObject:
		e.stack = append(e.stack, dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			si := SimpleIssue{Code: "parse_error", Message: "max depth exceeded", Start: tok.Start, End: tok.End}
			e.report(si)
			return Token{}, IssueError{si}
		}
	case KindBeginArray:
		e.stack = append(e.stack, dupFrame{kind: kindArray})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			si := SimpleIssue{Code: "parse_error", Message: "max depth exceeded", Start: tok.Start, End: tok.End}
			e.report(si)
			return Token{}, IssueError{si}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		if e.depth > 0 {
			e.depth--
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if e.opt.OnDuplicate != DupIgnore {
					if _, ok := top.keys[tok.String]; ok {
						e.report(SimpleIssue{
							Code:    "duplicate_key",
							Message: "key '" + tok.String + "' duplicated",
							Key:     tok.String,
							Start:   tok.Start,
							End:     tok.End,
						})
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			si := SimpleIssue{Code: "truncated", Message: "max bytes exceeded", Start: tok.Start, End: tok.End}
			e.report(si)
			return Token{}, IssueError{si}
		}
	}

	return tok, nil
}

// valueDone flips the enclosing object frame back to key position after a
// member value completes.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (e *enforcingTokenSource) Location() int { return e.inner.Location() }
