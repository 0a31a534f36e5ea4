package gen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Group is one `marker(key:'value' ...)` section of a scoped annotation.
type Group struct {
	Name    string
	Pos     token.Position
	Entries []Entry
}

// Entry is one key:'value' pair inside a group.
type Entry struct {
	Key   string
	Value string
	Pos   token.Position
}

// groupScanner walks scoped annotation text. Positions are reported
// relative to base, which points at the first byte of text.
type groupScanner struct {
	text string
	base token.Position
	off  int
}

func newGroupScanner(s Scoped) *groupScanner {
	return &groupScanner{text: s.Text, base: s.Pos}
}

func (g *groupScanner) pos(off int) token.Position {
	return shift(g.base, off)
}

func (g *groupScanner) eof() bool {
	return g.off >= len(g.text)
}

func (g *groupScanner) peek() rune {
	if g.eof() {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(g.text[g.off:])
	return r
}

func (g *groupScanner) skipSpace() {
	for !g.eof() {
		r, n := utf8.DecodeRuneInString(g.text[g.off:])
		if !unicode.IsSpace(r) {
			return
		}
		g.off += n
	}
}

// skipSeparators consumes whitespace and commas between groups or entries.
func (g *groupScanner) skipSeparators() bool {
	start := g.off
	for !g.eof() {
		r, n := utf8.DecodeRuneInString(g.text[g.off:])
		if r != ',' && !unicode.IsSpace(r) {
			break
		}
		g.off += n
	}
	return g.off > start
}

func isKeyRune(r rune, first bool) bool {
	if r == '_' || unicode.IsLetter(r) {
		return true
	}
	if first {
		return false
	}
	return unicode.IsDigit(r) || r == '-' || r == '.'
}

// ident scans a group name or entry key.
func (g *groupScanner) ident(what string) (string, token.Position, error) {
	start := g.off
	for !g.eof() {
		r, n := utf8.DecodeRuneInString(g.text[g.off:])
		if !isKeyRune(r, g.off == start) {
			break
		}
		if what == "marker name" && (r == '-' || r == '.') {
			break
		}
		g.off += n
	}
	if g.off == start {
		return "", g.pos(start), g.unexpected(what)
	}
	return g.text[start:g.off], g.pos(start), nil
}

func (g *groupScanner) unexpected(want string) error {
	if g.eof() {
		return diagnostic(ErrParse, g.pos(g.off), "expected %s, found end of annotation", want)
	}
	return diagnostic(ErrParse, g.pos(g.off), "expected %s, found %q", want, g.peek())
}

func (g *groupScanner) expect(r rune, want string) error {
	g.skipSpace()
	if g.peek() != r {
		return g.unexpected(want)
	}
	g.off += utf8.RuneLen(r)
	return nil
}

// quoted scans '...' with \' as an escaped quote.
func (g *groupScanner) quoted() (string, error) {
	if g.peek() != '\'' {
		return "", g.unexpected("quoted value")
	}
	open := g.off
	g.off++

	var b strings.Builder
	for !g.eof() {
		c := g.text[g.off]
		switch {
		case c == '\\' && g.off+1 < len(g.text) && g.text[g.off+1] == '\'':
			b.WriteByte('\'')
			g.off += 2
		case c == '\'':
			g.off++
			return b.String(), nil
		default:
			b.WriteByte(c)
			g.off++
		}
	}
	return "", diagnostic(ErrParse, g.pos(open), "unterminated quoted value")
}

// header scans `name (` and returns the group name.
func (g *groupScanner) header() (string, token.Position, error) {
	name, pos, err := g.ident("marker name")
	if err != nil {
		return "", pos, err
	}
	if err := g.expect('(', "'(' after "+name); err != nil {
		return "", pos, err
	}
	return name, pos, nil
}

// body scans entries up to and including the closing paren.
func (g *groupScanner) body() ([]Entry, error) {
	var entries []Entry
	for {
		g.skipSeparators()
		if g.peek() == ')' {
			g.off++
			return entries, nil
		}
		if g.eof() {
			return nil, g.unexpected("')'")
		}

		key, pos, err := g.ident("key")
		if err != nil {
			return nil, err
		}
		if err := g.expect(':', "':' after "+key); err != nil {
			return nil, err
		}
		g.skipSpace()
		value, err := g.quoted()
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Value: value, Pos: pos})

		if !g.eof() && g.peek() != ')' && g.peek() != ',' && !unicode.IsSpace(g.peek()) {
			return nil, g.unexpected("separator")
		}
	}
}

// skipBody consumes a group body without interpreting entries, honoring
// quoted values so a ')' inside quotes does not end the group.
func (g *groupScanner) skipBody(open token.Position) error {
	for !g.eof() {
		switch g.text[g.off] {
		case ')':
			g.off++
			return nil
		case '\'':
			if _, err := g.quoted(); err != nil {
				return err
			}
		default:
			g.off++
		}
	}
	return diagnostic(ErrParse, open, "unterminated group, expected ')'")
}

// ParseGroups parses every group of a scoped annotation with its entries.
func ParseGroups(s Scoped) ([]Group, error) {
	g := newGroupScanner(s)
	var groups []Group
	for {
		g.skipSeparators()
		if g.eof() {
			return groups, nil
		}
		name, pos, err := g.header()
		if err != nil {
			return nil, err
		}
		entries, err := g.body()
		if err != nil {
			return nil, err
		}
		groups = append(groups, Group{Name: name, Pos: pos, Entries: entries})
	}
}

// GroupNames returns the group names of a scoped annotation without
// interpreting their content. A malformed group is reported and scanning
// resumes after its closing paren, so later groups are still returned.
func GroupNames(s Scoped) ([]Group, error) {
	g := newGroupScanner(s)
	var (
		groups []Group
		diags  Diagnostics
	)
	for {
		g.skipSeparators()
		if g.eof() {
			return groups, diags.Err()
		}
		name, pos, err := g.header()
		if err != nil {
			diags.Append(err)
			g.resync()
			continue
		}
		if err := g.skipBody(pos); err != nil {
			diags.Append(err)
			return groups, diags.Err()
		}
		groups = append(groups, Group{Name: name, Pos: pos})
	}
}

// resync advances past the next ')' outside quotes, or to the end of text.
func (g *groupScanner) resync() {
	for !g.eof() {
		switch g.text[g.off] {
		case ')':
			g.off++
			return
		case '\'':
			if _, err := g.quoted(); err != nil {
				g.off = len(g.text)
			}
		default:
			g.off++
		}
	}
}
