package token

// Token is a lightweight reference into a source file buffer.  It carries no
// string payload of its own: its spelling is recovered by asking the
// Tokenizer that owns FileIndex (see ExtractToken / PositionInfo below).
type Token struct {
	FileIndex uint32
	Position  uint32
	Length    uint16
	Kind      Kind
}

// Zero reports whether this is the unset/zero Token.
func (t Token) Zero() bool {
	return t.Length == 0 && t.Kind == Kind(0) && t.Position == 0
}

// Position is a resolved {line, column} pair, both one-indexed, as produced
// by a Tokenizer's PositionInfo.
type Position struct {
	Line, Col int
}

// Tokenizer is the external collaborator that owns one file's source buffer
// and can recover a Token's spelling and human-readable position.  The
// checker never scans source text itself; it only asks the Tokenizer that
// produced a Token to resolve it.
type Tokenizer interface {
	// FilePath is the path to the file this tokenizer scanned, used in
	// diagnostic rendering.
	FilePath() string

	// ExtractToken recovers the exact source text a Token spans.
	ExtractToken(tok Token) string

	// PositionInfo resolves a Token to a human-readable line/column.
	PositionInfo(tok Token) Position
}
