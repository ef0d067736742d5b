// Package terminal renders the hero slideshow in a terminal and feeds key,
// focus and autoplay events into a slideshow.Controller.
package terminal

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"dakota/models"
	"dakota/services/slideshow"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultBarWidth = 30
	maxBarWidth     = 60
)

// tickMsg carries an autoplay tick onto the program's event loop.
type tickMsg struct {
	fire func()
}

// Model is the bubbletea model wrapping one controller.
type Model struct {
	slides []models.Slide

	panels   []*toggle
	dots     []*toggle
	current  *label
	total    *label
	progress *meter

	ctrl     *slideshow.Controller
	styles   Styles
	barWidth int
	quitting bool
}

// NewModel builds the terminal view and a controller over it.
func NewModel(slides []models.Slide, scheduler slideshow.Scheduler, opts slideshow.Options) *Model {
	m := &Model{
		slides:   slides,
		current:  &label{},
		total:    &label{},
		progress: &meter{},
		styles:   DefaultStyles(),
		barWidth: defaultBarWidth,
	}

	view := slideshow.View{Progress: m.progress, Current: m.current, Total: m.total}
	for range slides {
		p, d := &toggle{}, &toggle{}
		m.panels = append(m.panels, p)
		m.dots = append(m.dots, d)
		view.Slides = append(view.Slides, p)
		view.Dots = append(view.Dots, d)
	}

	m.ctrl = slideshow.New(view, scheduler, opts)
	return m
}

// Controller exposes the underlying controller.
func (m *Model) Controller() *slideshow.Controller { return m.ctrl }

// Close stops autoplay.
func (m *Model) Close() { m.ctrl.Close() }

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		msg.fire()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.FocusMsg:
		m.ctrl.OnPointerEnter()
	case tea.BlurMsg:
		m.ctrl.OnPointerLeave()
	case tea.WindowSizeMsg:
		m.barWidth = clamp(msg.Width-16, 10, maxBarWidth)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "left", "h":
		m.ctrl.OnPrevious()
	case "right", "l":
		m.ctrl.OnNext()
	case "q", "esc", "ctrl+c":
		m.quitting = true
		m.ctrl.Close()
		return tea.Quit
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.slides) {
			m.ctrl.OnJump(n - 1)
		}
	}
	return nil
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.slides) == 0 {
		return m.styles.Frame.Render("No slides configured.")
	}

	slide := m.slides[m.activeIndex()]
	body := []string{
		m.styles.Title.Render(slide.Title),
	}
	if slide.Caption != "" {
		body = append(body, m.styles.Caption.Render(slide.Caption))
	}
	body = append(body,
		m.styles.Image.Render(slide.Alt+" ("+slide.Image+")"),
		"",
		m.renderDots(),
		m.styles.Counter.Render(m.current.text+" / "+m.total.text)+"  "+m.renderBar(),
		"",
		m.styles.Help.Render("←/h prev • →/l next • 1-9 jump • q quit"),
	)
	return m.styles.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

func (m *Model) activeIndex() int {
	for i, p := range m.panels {
		if p.active {
			return i
		}
	}
	return 0
}

func (m *Model) renderDots() string {
	parts := make([]string, len(m.dots))
	for i, d := range m.dots {
		if d.active {
			parts[i] = m.styles.DotActive.Render("●")
		} else {
			parts[i] = m.styles.DotIdle.Render("○")
		}
	}
	return strings.Join(parts, " ")
}

// filledWidth is the number of filled cells for the current progress.
func (m *Model) filledWidth() int {
	return clamp(int(math.Round(m.progress.fraction*float64(m.barWidth))), 0, m.barWidth)
}

func (m *Model) renderBar() string {
	filled := m.filledWidth()
	return m.styles.BarFilled.Render(strings.Repeat("█", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", m.barWidth-filled))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// relay hands wall-clock ticks to a program once it exists.
type relay struct {
	mu sync.RWMutex
	p  *tea.Program
}

func (r *relay) attach(p *tea.Program) {
	r.mu.Lock()
	r.p = p
	r.mu.Unlock()
}

func (r *relay) dispatch(fn func()) {
	r.mu.RLock()
	p := r.p
	r.mu.RUnlock()
	if p != nil {
		p.Send(tickMsg{fire: fn})
	}
}

// Run shows slides full screen until the user quits.
func Run(slides []models.Slide, opts slideshow.Options, programOpts ...tea.ProgramOption) error {
	r := &relay{}
	m := NewModel(slides, slideshow.NewTickerScheduler(r.dispatch), opts)
	defer m.Close()

	programOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}, programOpts...)
	p := tea.NewProgram(m, programOpts...)
	r.attach(p)

	_, err := p.Run()
	return err
}
