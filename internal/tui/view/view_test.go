package view

import (
	"context"
	"procdeck/internal/layout"
	"procdeck/internal/process"
	"procdeck/internal/selection"
	"procdeck/internal/tui/model"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(width, height int, scripts ...process.Script) *model.Model {
	store := process.NewStore("sh", scripts...)
	m := model.InitializeModel(context.Background(), store, model.TUIConfig{})
	m.Width, m.Height = width, height
	var groups []model.SidebarGroup
	for _, g := range store.Groups() {
		var names []string
		for _, p := range g.Processes {
			names = append(names, p.Name())
		}
		groups = append(groups, model.SidebarGroup{Title: g.Title, Names: names})
	}
	m.Layout = model.NewLayout(width, height, groups)
	return m
}

func TestRenderDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{name: "regular", width: 80, height: 24},
		{name: "narrow", width: 30, height: 10},
		{name: "two rows", width: 40, height: 2},
		{name: "one row", width: 40, height: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(tt.width, tt.height,
				process.Script{Name: "api", Command: "serve", Type: process.TypeService},
				process.Script{Name: "lint", Command: "lint"},
			)
			rows := strings.Split(Render(m), "\n")
			require.Len(t, rows, tt.height)
			for i, row := range rows {
				assert.Equal(t, tt.width, ansi.StringWidth(row), "row %d", i)
			}
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	m := &model.Model{}
	assert.Empty(t, Render(m))
}

func TestRenderShowsOutput(t *testing.T) {
	m := newModel(60, 12, process.Script{Name: "api", Command: "serve", Type: process.TypeService})
	p, err := m.Store.Get("api")
	require.NoError(t, err)
	p.Append("listening on :8080", process.Stdout)

	frame := ansi.Strip(Render(m))
	assert.Contains(t, frame, "listening on :8080")
	assert.Contains(t, frame, "Services")
}

func TestRenderNoOutputYet(t *testing.T) {
	m := newModel(60, 12, process.Script{Name: "api", Command: "serve", Type: process.TypeService})
	assert.Contains(t, ansi.Strip(Render(m)), "no output yet")
}

func TestRenderHelp(t *testing.T) {
	m := newModel(80, 24, process.Script{Name: "api", Command: "serve", Type: process.TypeService})
	m.Help.ShowAll = true
	frame := ansi.Strip(Render(m))
	assert.Len(t, strings.Split(frame, "\n"), 24)
	assert.Contains(t, frame, "Keys")
	assert.Contains(t, frame, "restart")
}

func TestThumb(t *testing.T) {
	tests := []struct {
		name                   string
		length, height, offset int
		top, size              int
		ok                     bool
	}{
		{name: "fits", length: 5, height: 10, ok: false},
		{name: "exact", length: 10, height: 10, ok: false},
		{name: "top", length: 40, height: 10, offset: 0, top: 0, size: 2, ok: true},
		{name: "bottom", length: 40, height: 10, offset: 30, top: 8, size: 2, ok: true},
		{name: "middle", length: 40, height: 10, offset: 15, top: 4, size: 2, ok: true},
		{name: "past the end", length: 40, height: 10, offset: 99, top: 8, size: 2, ok: true},
		{name: "before the start", length: 40, height: 10, offset: -5, top: 0, size: 2, ok: true},
		{name: "huge content", length: 10000, height: 10, offset: 0, top: 0, size: 1, ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, size, ok := Thumb(tt.length, tt.height, tt.offset)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.top, top)
				assert.Equal(t, tt.size, size)
			}
		})
	}
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "7s", FormatUptime(7*time.Second))
	assert.Equal(t, "3m05s", FormatUptime(3*time.Minute+5*time.Second))
	assert.Equal(t, "1h02m", FormatUptime(time.Hour+2*time.Minute+30*time.Second))
	assert.Equal(t, "0s", FormatUptime(200*time.Millisecond))
}

func TestHighlight(t *testing.T) {
	rows := []string{"hello world", "second row "}
	r := selection.Range{
		ID: "output",
		Rows: []selection.Segment{
			{Row: 10, Start: 26, End: 30},
			{Row: 11, Start: 20, End: 25},
		},
		Box: layout.Rect{X: 20, Y: 10, Width: 11, Height: 2},
	}
	highlight(rows, r, 20, 10)

	assert.Equal(t, "hello world", ansi.Strip(rows[0]))
	assert.Equal(t, "second row ", ansi.Strip(rows[1]))
	assert.Equal(t, 11, ansi.StringWidth(rows[0]))
	assert.Equal(t, 11, ansi.StringWidth(rows[1]))
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab   ", fit("ab", 5))
	assert.Equal(t, "abc", fit("abcdef", 3))
	assert.Equal(t, "", fit("abc", 0))
}

func TestStatusRight(t *testing.T) {
	m := newModel(60, 12, process.Script{Name: "api", Command: "serve", Type: process.TypeService})
	assert.Empty(t, statusRight(m))

	m.Output("api")
	assert.Equal(t, "following", statusRight(m))

	m.Filter.SetValue("ap")
	m.ShowDocs = true
	assert.Equal(t, "filter: ap · docs", statusRight(m))
}
