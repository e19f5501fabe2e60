package engine

import (
	"errors"
	"io"
	"testing"
)

type sliceSource struct {
	toks []Token
	pos  int
	loc  int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.pos >= len(s.toks) {
		return Token{}, io.EOF
	}
	tok := s.toks[s.pos]
	s.pos++
	if tok.End > s.loc {
		s.loc = tok.End
	}
	return tok, nil
}

func (s *sliceSource) Location() int { return s.loc }

func obj(toks ...Token) []Token {
	out := []Token{{Kind: KindBeginObject}}
	out = append(out, toks...)
	return append(out, Token{Kind: KindEndObject})
}

func key(k string) Token { return Token{Kind: KindKey, String: k} }
func num(n string) Token { return Token{Kind: KindNumber, Number: n} }

func TestDuplicateKeysReported(t *testing.T) {
	var issues []SimpleIssue
	src := WrapWithEnforcement(&sliceSource{toks: obj(
		key("a"), num("1"),
		key("b"), num("2"),
		key("a"), num("3"),
	)}, EnforceOptions{
		OnDuplicate: DupReport,
		IssueSink:   func(si SimpleIssue) { issues = append(issues, si) },
	})

	for {
		if _, err := src.NextToken(); err != nil {
			break
		}
	}
	if len(issues) != 1 {
		t.Fatalf("expected one duplicate issue, got %v", issues)
	}
	if issues[0].Code != "duplicate_key" || issues[0].Key != "a" {
		t.Fatalf("unexpected issue %+v", issues[0])
	}
}

func TestStringValueIsNotAKey(t *testing.T) {
	var issues []SimpleIssue
	// { "a": "a" } repeats the text but not the key position
	src := WrapWithEnforcement(&sliceSource{toks: obj(
		key("a"), Token{Kind: KindString, String: "a"},
	)}, EnforceOptions{
		OnDuplicate: DupReport,
		IssueSink:   func(si SimpleIssue) { issues = append(issues, si) },
	})
	for {
		if _, err := src.NextToken(); err != nil {
			break
		}
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestMaxDepthAbortsTheStream(t *testing.T) {
	toks := []Token{
		{Kind: KindBeginArray},
		{Kind: KindBeginArray},
		{Kind: KindBeginArray},
	}
	src := WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{MaxDepth: 2})

	var err error
	for err == nil {
		_, err = src.NextToken()
	}
	var ie IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected an IssueError, got %v", err)
	}
	if ie.Code != "parse_error" {
		t.Fatalf("unexpected code %q", ie.Code)
	}
}

func TestMaxBytesAbortsTheStream(t *testing.T) {
	toks := []Token{
		{Kind: KindBeginArray, Start: 0, End: 1},
		{Kind: KindNumber, Number: "1", Start: 1, End: 2},
		{Kind: KindNumber, Number: "2", Start: 3, End: 4},
		{Kind: KindEndArray, Start: 4, End: 5},
	}
	var issues []SimpleIssue
	src := WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{
		MaxBytes:  2,
		IssueSink: func(si SimpleIssue) { issues = append(issues, si) },
	})

	var err error
	for err == nil {
		_, err = src.NextToken()
	}
	var ie IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected an IssueError, got %v", err)
	}
	if ie.Code != "truncated" {
		t.Fatalf("unexpected code %q", ie.Code)
	}
	if len(issues) != 1 {
		t.Fatalf("the sink must see the violation too, got %v", issues)
	}
}

func TestNestedObjectsTrackKeysIndependently(t *testing.T) {
	var issues []SimpleIssue
	toks := []Token{
		{Kind: KindBeginObject},
		key("a"), {Kind: KindBeginObject},
		key("a"), num("1"),
		{Kind: KindEndObject},
		{Kind: KindEndObject},
	}
	src := WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{
		OnDuplicate: DupReport,
		IssueSink:   func(si SimpleIssue) { issues = append(issues, si) },
	})
	for {
		if _, err := src.NextToken(); err != nil {
			break
		}
	}
	if len(issues) != 0 {
		t.Fatalf("the inner 'a' lives in its own object, got %v", issues)
	}
}
