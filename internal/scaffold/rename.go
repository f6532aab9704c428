package scaffold

import (
	"bytes"
	"regexp"
	"unicode/utf8"
)

// sniffLen is how much of a file is checked for NUL bytes.
const sniffLen = 8000

// Renamer rewrites whole-word occurrences of one identifier.
type Renamer struct {
	from, to string
	re       *regexp.Regexp
}

// NewRenamer returns a Renamer replacing from with to. Matching is
// case-sensitive and bounded by word boundaries, so "GPIOS_X" is left alone
// when from is "GPIOS".
func NewRenamer(from, to string) *Renamer {
	return &Renamer{
		from: from,
		to:   to,
		re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(from) + `\b`),
	}
}

// Count returns the number of whole-word matches in data.
func (r *Renamer) Count(data []byte) int {
	return len(r.re.FindAllIndex(data, -1))
}

// Rename returns data with every match replaced and the number of
// replacements. The replacement is literal; "$" in the new name is not
// expanded.
func (r *Renamer) Rename(data []byte) ([]byte, int) {
	n := r.Count(data)
	if n == 0 {
		return data, 0
	}
	return r.re.ReplaceAllLiteral(data, []byte(r.to)), n
}

// IsText reports whether data looks like a text file: valid UTF-8 with no NUL
// byte in its first sniffLen bytes.
func IsText(data []byte) bool {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return false
	}
	return utf8.Valid(data)
}
