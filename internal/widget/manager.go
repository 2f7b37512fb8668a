package widget

import "image/color"

// Element is anything the manager can drive: a widget or a type that
// embeds one.
type Element interface {
	Base() *Widget
	CheckUpdate(ctx *RenderContext)
}

// Manager owns the dashboard widgets in insertion order.
type Manager struct {
	elements []Element
	byName   map[string]Element
}

func NewManager() *Manager {
	return &Manager{byName: make(map[string]Element)}
}

// Add appends e. A later widget with the same name shadows the earlier
// one in ByName.
func (m *Manager) Add(e Element) {
	m.elements = append(m.elements, e)
	m.byName[e.Base().Name] = e
}

func (m *Manager) Len() int { return len(m.elements) }

func (m *Manager) At(i int) Element { return m.elements[i] }

// Widgets returns the elements in insertion order.
func (m *Manager) Widgets() []Element {
	out := make([]Element, len(m.elements))
	copy(out, m.elements)
	return out
}

func (m *Manager) ByName(name string) (Element, bool) {
	e, ok := m.byName[name]
	return e, ok
}

// Tick runs the timed checks of every widget. With force set, widgets
// also follow the global brightness.
func (m *Manager) Tick(ctx *RenderContext, force bool) {
	for _, e := range m.elements {
		w := e.Base()
		w.CheckResetBrightness(ctx)
		w.CheckResetActive(ctx)
		if force {
			w.UpdateBrightness(ctx)
		}
		e.CheckUpdate(ctx)
	}
}

// Render redraws every active widget.
func (m *Manager) Render(ctx *RenderContext) {
	for _, e := range m.elements {
		e.Base().Render(ctx)
	}
}

// SetTextColor recolors the text of every widget.
func (m *Manager) SetTextColor(c color.RGBA) {
	for _, e := range m.elements {
		e.Base().SetTextColor(c)
	}
}

// Info is a read-only view of a widget for status reporting.
type Info struct {
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	Text    string `json:"text"`
	Icon    string `json:"icon"`
	Boosted bool   `json:"boosted"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// Infos describes every widget in insertion order.
func (m *Manager) Infos() []Info {
	out := make([]Info, 0, len(m.elements))
	for _, e := range m.elements {
		w := e.Base()
		b := w.Bounds()
		out = append(out, Info{
			Name:    w.Name,
			Active:  w.Active(),
			Text:    w.Text(),
			Icon:    w.IconKey(),
			Boosted: w.Boosted(),
			X:       b.Min.X,
			Y:       b.Min.Y,
			Width:   b.Dx(),
			Height:  b.Dy(),
		})
	}
	return out
}
