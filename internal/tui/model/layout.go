package model

import (
	"fmt"
	"procdeck/internal/layout"
	"procdeck/internal/tui/design"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Section is one titled list of the sidebar.
type Section struct {
	Title string
	Names []string
	Box   *layout.Box
	Items []*layout.Box
}

// Layout is the box tree of one dashboard frame. The view renders into
// these boxes and the interaction tree hit-tests against them, so both
// always agree on where things are.
type Layout struct {
	Width        int
	Height       int
	SidebarWidth int
	BodyHeight   int

	Screen    *layout.Box
	Header    *layout.Box
	Body      *layout.Box
	Sidebar   *layout.Box
	Separator *layout.Box
	Output    *layout.Box
	Content   *layout.Box
	Text      *layout.Box
	Scrollbar *layout.Box
	Status    *layout.Box

	Sections []Section
}

// SidebarGroup is the input of one sidebar section.
type SidebarGroup struct {
	Title string
	Names []string
}

// NewLayout arranges header, sidebar, output pane and status bar for a
// terminal of width by height cells.
//
//	header                     (1 row)
//	sidebar | output | bar     (height - 2 rows)
//	status                     (1 row)
func NewLayout(width, height int, groups []SidebarGroup) *Layout {
	l := &Layout{
		Width:      max(width, 0),
		Height:     max(height, 0),
		BodyHeight: max(height-2, 0),
	}
	l.SidebarWidth = sidebarWidth(l.Width, groups)
	outputWidth := max(l.Width-l.SidebarWidth-1, 0)

	l.Screen = layout.NewBox("screen", layout.Column).SetSize(l.Width, l.Height)
	l.Header = layout.NewBox("header", layout.Row).SetSize(l.Width, min(1, l.Height))
	l.Body = layout.NewBox("body", layout.Row).SetSize(l.Width, l.BodyHeight)
	l.Status = layout.NewBox("status", layout.Row).SetSize(l.Width, min(1, max(l.Height-1, 0)))
	l.Screen.Add(l.Header, l.Body, l.Status)

	l.Sidebar = layout.NewBox("sidebar", layout.Column).SetSize(l.SidebarWidth, l.BodyHeight)
	l.Separator = layout.NewBox("separator", layout.Column).SetSize(1, l.BodyHeight)
	l.Output = layout.NewBox("output", layout.Row).SetSize(outputWidth, l.BodyHeight)
	l.Body.Add(l.Sidebar, l.Separator, l.Output)

	l.Content = layout.NewBox("content", layout.Column).SetSize(max(outputWidth-1, 0), l.BodyHeight)
	l.Scrollbar = layout.NewBox("scrollbar", layout.Column).SetSize(min(outputWidth, 1), l.BodyHeight)
	l.Output.Add(l.Content, l.Scrollbar)

	l.Text = layout.NewBox("text", layout.Column).SetSize(max(outputWidth-1, 0), l.BodyHeight)
	l.Content.Add(l.Text)

	for _, g := range groups {
		if len(g.Names) == 0 {
			continue
		}
		section := Section{
			Title: g.Title,
			Names: g.Names,
			Box:   layout.NewBox("section:"+g.Title, layout.Column).SetSize(l.SidebarWidth, len(g.Names)+2),
		}
		section.Box.Add(layout.NewBox("title:"+g.Title, layout.Row).SetSize(l.SidebarWidth, 1))
		for _, name := range g.Names {
			item := layout.NewBox("item:"+name, layout.Row).SetSize(l.SidebarWidth, 1)
			section.Items = append(section.Items, item)
			section.Box.Add(item)
		}
		l.Sidebar.Add(section.Box)
		l.Sections = append(l.Sections, section)
	}
	return l
}

func sidebarWidth(width int, groups []SidebarGroup) int {
	longest := 0
	for _, g := range groups {
		longest = max(longest, runewidth.StringWidth(g.Title))
		for _, name := range g.Names {
			// dot, space and a cell of margin on both sides
			longest = max(longest, runewidth.StringWidth(name)+4)
		}
	}
	w := min(max(longest+2, design.MinSidebarWidth), design.MaxSidebarWidth)
	if width-w-1 < design.MinOutputWidth {
		w = max(width-design.MinOutputWidth-1, 0)
	}
	return w
}

// Signature identifies the sidebar structure. Frames with equal signatures
// can share one box tree.
func Signature(width, height int, groups []SidebarGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d", width, height)
	for _, g := range groups {
		b.WriteString("\x00" + g.Title)
		for _, name := range g.Names {
			b.WriteString("\x01" + name)
		}
	}
	return b.String()
}
