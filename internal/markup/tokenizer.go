package markup

import "strings"

const maxHeadingLevel = 6

// Tokenize splits fragment into runs in a single left-to-right pass.
// Unterminated or malformed markers are kept as plain text.
func Tokenize(fragment string) []Run {
	t := tokenizer{src: fragment}
	t.run()
	return t.runs
}

type tokenizer struct {
	src   string
	pos   int
	plain strings.Builder
	runs  []Run
}

func (t *tokenizer) run() {
	for t.pos < len(t.src) {
		if t.heading() || t.strong() || t.emphasis() || t.code() {
			continue
		}
		c := t.src[t.pos]
		if isEmphasisChar(c) && t.pos+1 < len(t.src) && t.src[t.pos+1] == c {
			// An unmatched double marker stays together as text so its second
			// character is not reread as an emphasis opener.
			t.plain.WriteString(t.src[t.pos : t.pos+2])
			t.pos += 2
			continue
		}
		t.plain.WriteByte(c)
		t.pos++
	}
	t.flush()
}

func (t *tokenizer) emit(r Run) {
	t.flush()
	t.runs = append(t.runs, r)
}

func (t *tokenizer) flush() {
	if t.plain.Len() == 0 {
		return
	}
	t.runs = append(t.runs, Run{Kind: Plain, Content: t.plain.String()})
	t.plain.Reset()
}

// heading matches "#{1,6} text" at the start of the fragment or a line.
func (t *tokenizer) heading() bool {
	if t.src[t.pos] != '#' || (t.pos > 0 && t.src[t.pos-1] != '\n') {
		return false
	}
	level := 0
	for t.pos+level < len(t.src) && t.src[t.pos+level] == '#' {
		level++
	}
	if level > maxHeadingLevel {
		return false
	}
	i := t.pos + level
	if i >= len(t.src) || t.src[i] != ' ' {
		return false
	}
	for i < len(t.src) && t.src[i] == ' ' {
		i++
	}
	end := strings.IndexByte(t.src[i:], '\n')
	if end < 0 {
		end = len(t.src)
	} else {
		end += i
	}
	if i == end {
		return false
	}
	t.emit(Run{Kind: Heading, Level: level, Content: t.src[i:end]})
	t.pos = end
	return true
}

// strong matches a doubled marker, content, and the next matching doubled
// marker on the same line.
func (t *tokenizer) strong() bool {
	c := t.src[t.pos]
	if !isEmphasisChar(c) || t.pos+1 >= len(t.src) || t.src[t.pos+1] != c {
		return false
	}
	start := t.pos + 2
	for j := start + 1; j+1 < len(t.src); j++ {
		if t.src[j] == '\n' {
			return false
		}
		if t.src[j] == c && t.src[j+1] == c {
			if t.src[start] == '\n' {
				return false
			}
			t.emit(Run{Kind: Strong, Content: t.src[start:j]})
			t.pos = j + 2
			return true
		}
	}
	return false
}

// emphasis matches a lone marker, content, and a closing marker that is not
// the first half of a doubled marker.
func (t *tokenizer) emphasis() bool {
	c := t.src[t.pos]
	if !isEmphasisChar(c) {
		return false
	}
	if t.pos+1 < len(t.src) && t.src[t.pos+1] == c {
		return false
	}
	if t.pos > 0 && t.src[t.pos-1] == c {
		return false
	}
	start := t.pos + 1
	if start >= len(t.src) || t.src[start] == '\n' {
		return false
	}
	for j := start + 1; j < len(t.src); j++ {
		switch {
		case t.src[j] == '\n':
			return false
		case t.src[j] == c && (j+1 >= len(t.src) || t.src[j+1] != c):
			t.emit(Run{Kind: Emphasis, Content: t.src[start:j]})
			t.pos = j + 1
			return true
		}
	}
	return false
}

// code matches a backtick span on a single line.
func (t *tokenizer) code() bool {
	if t.src[t.pos] != '`' {
		return false
	}
	start := t.pos + 1
	for j := start; j < len(t.src); j++ {
		switch t.src[j] {
		case '\n':
			return false
		case '`':
			if j == start {
				return false
			}
			t.emit(Run{Kind: Code, Content: t.src[start:j]})
			t.pos = j + 1
			return true
		}
	}
	return false
}

func isEmphasisChar(c byte) bool {
	return c == '*' || c == '_'
}
