package scroll

// Entry is one unit of content. An entry's text must not change once it has
// been handed to a Scrollable; publish a new entry instead.
type Entry struct {
	ID      string
	Content string
}

// Source is an ordered, append-only sequence of entries.
type Source interface {
	Len() int
	At(i int) Entry
}

// Entries is a Source backed by a slice.
type Entries []Entry

// Len implements Source.
func (e Entries) Len() int { return len(e) }

// At implements Source.
func (e Entries) At(i int) Entry { return e[i] }

// Line is a viewport row: either Content or Padding.
type Line interface {
	isLine()
}

// Content is a row backed by text from the entry at Index.
type Content struct {
	ID    string
	Index int
	Text  string
}

// Padding is a row with nothing behind it.
type Padding struct{}

func (Content) isLine() {}
func (Padding) isLine() {}

// IsPadding reports whether l is a Padding row.
func IsPadding(l Line) bool {
	_, ok := l.(Padding)
	return ok
}
