package scroll

import (
	"iter"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Position locates the first visible line within the content.
type Position struct {
	// Index is the entry the line belongs to, -1 without content.
	Index int
	// Line counts lines into the entry; the visible line is Line-1.
	Line int
	// Absolute is the line number across all entries.
	Absolute int
}

// View is the rendered window of a Scrollable.
type View struct {
	// Lines holds exactly Height rows, padding included.
	Lines []Line
	// Messages holds the same rows with consecutive rows of one entry merged.
	Messages    []Line
	HasPrevious bool
	HasNext     bool
}

type wrapped struct {
	content string
	lines   []string
}

// Scrollable is a virtual viewport over a Source. The offset is the
// absolute line shown in the first row and may be negative or run past the
// end of the content.
type Scrollable struct {
	source Source
	width  int
	height int
	offset int

	cache map[string]wrapped
	// prefix[i] is the number of wrapped lines in entries 0 through i.
	prefix   []int
	tracking bool
}

// New creates a viewport over source.
func New(source Source, width, height int) *Scrollable {
	return &Scrollable{
		source: source,
		width:  max(width, 0),
		height: max(height, 0),
		cache:  make(map[string]wrapped),
	}
}

// SetSource swaps the content and drops all cached wrapping.
func (s *Scrollable) SetSource(source Source) {
	s.source = source
	s.invalidate()
	s.offset = 0
	s.follow()
}

// Source returns the content being viewed.
func (s *Scrollable) Source() Source { return s.source }

// Width returns the wrap width.
func (s *Scrollable) Width() int { return s.width }

// Height returns the number of visible rows.
func (s *Scrollable) Height() int { return s.height }

// Offset returns the absolute line shown in the first row.
func (s *Scrollable) Offset() int { return s.offset }

// Tracking reports whether the viewport follows the tail.
func (s *Scrollable) Tracking() bool { return s.tracking }

// SetWidth changes the wrap width, invalidating every cached entry.
func (s *Scrollable) SetWidth(width int) {
	width = max(width, 0)
	if width != s.width {
		s.width = width
		s.invalidate()
	}
	s.follow()
}

// SetHeight changes the height and shifts the offset so the last row stays put.
func (s *Scrollable) SetHeight(height int) {
	height = max(height, 0)
	s.offset += s.height - height
	s.height = height
	s.follow()
}

// SetDimensions changes width and height without touching the offset.
func (s *Scrollable) SetDimensions(width, height int) {
	width = max(width, 0)
	if width != s.width {
		s.width = width
		s.invalidate()
	}
	s.height = max(height, 0)
	s.follow()
}

// SetOffset moves the first row to the given absolute line.
func (s *Scrollable) SetOffset(offset int) {
	s.offset = offset
	s.follow()
}

// Update tells the viewport that entries were appended to the source.
func (s *Scrollable) Update() {
	s.follow()
}

// Refresh rewraps every entry. Use it after entries already handed to the
// viewport changed their content.
func (s *Scrollable) Refresh() {
	s.invalidate()
	s.follow()
}

func (s *Scrollable) invalidate() {
	clear(s.cache)
	s.prefix = s.prefix[:0]
}

// Scroll moves the viewport by delta lines and stops following the tail.
// A zero delta does nothing.
func (s *Scrollable) Scroll(delta int) {
	if delta == 0 {
		return
	}
	s.tracking = false
	s.offset += delta
}

// ScrollToTop shows the first line in the first row and stops following the tail.
func (s *Scrollable) ScrollToTop() {
	s.tracking = false
	s.offset = 0
}

// ScrollToBottom shows the last line in the last row.
func (s *Scrollable) ScrollToBottom() {
	s.offset = s.Length() - s.height
}

// Track pins the viewport to the tail until the next manual scroll.
func (s *Scrollable) Track() {
	s.tracking = true
	s.follow()
}

// Untrack stops following the tail.
func (s *Scrollable) Untrack() {
	s.tracking = false
}

func (s *Scrollable) follow() {
	if s.tracking {
		s.ScrollToBottom()
	}
}

// Length returns the number of wrapped lines across all entries.
func (s *Scrollable) Length() int {
	prefix := s.lengths()
	if len(prefix) == 0 {
		return 0
	}
	return prefix[len(prefix)-1]
}

// lengths extends the running line totals over entries appended since the
// last call.
func (s *Scrollable) lengths() []int {
	n := s.count()
	if n < len(s.prefix) {
		s.prefix = s.prefix[:0]
	}
	total := 0
	if len(s.prefix) > 0 {
		total = s.prefix[len(s.prefix)-1]
	}
	for i := len(s.prefix); i < n; i++ {
		total += len(s.entryLines(i))
		s.prefix = append(s.prefix, total)
	}
	return s.prefix
}

func (s *Scrollable) count() int {
	if s.source == nil {
		return 0
	}
	return s.source.Len()
}

// entryLines wraps entry i at the current width, reusing the cache while the
// entry's content is unchanged.
func (s *Scrollable) entryLines(i int) []string {
	entry := s.source.At(i)
	if cached, ok := s.cache[entry.ID]; ok && cached.content == entry.Content {
		return cached.lines
	}
	lines := wrapLines(entry.Content, s.width)
	s.cache[entry.ID] = wrapped{content: entry.Content, lines: lines}
	return lines
}

func wrapLines(content string, width int) []string {
	if width <= 0 || content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(ansi.Wrap(content, width, ""), "\n")
}

// FirstVisible finds the entry holding absolute line offset. An offset at
// or before zero is a position above the first entry. An offset past the
// end is reported against the last entry with Line beyond its length.
func (s *Scrollable) FirstVisible(offset int) Position {
	if offset <= 0 {
		return Position{Index: 0, Line: offset, Absolute: offset}
	}
	prefix := s.lengths()
	n := len(prefix)
	i, _ := slices.BinarySearch(prefix, offset)
	if i == n {
		total, last := 0, 0
		if n > 0 {
			total = prefix[n-1]
			last = total - before(prefix, n-1)
		}
		return Position{Index: n - 1, Line: last + offset - total, Absolute: total}
	}
	prev := before(prefix, i)
	return Position{Index: i, Line: offset - prev, Absolute: offset}
}

// before returns the number of lines ahead of entry i.
func before(prefix []int, i int) int {
	if i == 0 {
		return 0
	}
	return prefix[i-1]
}

// Lines yields the rows starting at absolute line start: padding before the
// content, the wrapped content, then padding forever.
func (s *Scrollable) Lines(start int) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for ; start < 0; start++ {
			if !yield(Padding{}) {
				return
			}
		}
		pos := s.FirstVisible(start + 1)
		skip := pos.Line - 1
		for i := max(pos.Index, 0); pos.Index >= 0 && i < s.count(); i++ {
			entry := s.source.At(i)
			for _, text := range s.entryLines(i) {
				if skip > 0 {
					skip--
					continue
				}
				if !yield(Content{ID: entry.ID, Index: i, Text: text}) {
					return
				}
			}
		}
		for {
			if !yield(Padding{}) {
				return
			}
		}
	}
}

// View renders the current window. One extra row on each side is read to
// detect whether more content exists in that direction.
func (s *Scrollable) View() View {
	s.follow()

	window := make([]Line, 0, s.height+2)
	for line := range s.Lines(s.offset - 1) {
		window = append(window, line)
		if len(window) == s.height+2 {
			break
		}
	}

	v := View{
		HasPrevious: !IsPadding(window[0]),
		HasNext:     !IsPadding(window[len(window)-1]),
		Lines:       window[1 : len(window)-1],
	}
	v.Messages = coalesce(v.Lines)
	return v
}

// HasPreviousLines reports whether content exists above the window.
func (s *Scrollable) HasPreviousLines() bool {
	return s.View().HasPrevious
}

// HasNextLines reports whether content exists below the window.
func (s *Scrollable) HasNextLines() bool {
	return s.View().HasNext
}

func coalesce(lines []Line) []Line {
	var out []Line
	for _, line := range lines {
		c, ok := line.(Content)
		if !ok {
			out = append(out, line)
			continue
		}
		if len(out) > 0 {
			if prev, ok := out[len(out)-1].(Content); ok && prev.ID == c.ID {
				prev.Text += "\n" + c.Text
				out[len(out)-1] = prev
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
