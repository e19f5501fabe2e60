package engine

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with its byte span in the input.
// Start and End are -1 when the source cannot locate tokens.
type Token struct {
	Kind   Kind
	String string // Stored for key/string tokens.
	Number string // Stored as text; the consumer decides interpretation.
	Bool   bool
	Start  int
	End    int
}

// TokenSource is the minimal interface required by tree builders.
type TokenSource interface {
	NextToken() (Token, error)
	// Location reports the byte offset consumed so far; -1 if unknown.
	Location() int
}

// SimpleIssue is a lightweight issue emitted by the enforcement layer.
type SimpleIssue struct {
	Code    string
	Message string
	Key     string
	Start   int
	End     int
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }
