// Package slideshow drives the hero carousel: one active slide out of a fixed
// cyclic sequence, an autoplay timer that advances it, and the indicators that
// mirror the active slide.
package slideshow

import (
	"math"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultInterval is the autoplay period used when Options.Interval is unset.
	DefaultInterval = 5 * time.Second
	// DefaultSwipeThreshold is the horizontal distance, in pixels, a touch must
	// travel before it counts as a swipe.
	DefaultSwipeThreshold = 50.0
)

// Activatable is anything that can carry the "active" designation: a slide
// panel or a dot indicator.
type Activatable interface {
	SetActive(active bool)
}

// TextDisplay shows the numeric current-position or total-count indicator.
type TextDisplay interface {
	SetText(text string)
}

// ProgressBar shows the fraction of the sequence reached so far.
type ProgressBar interface {
	SetFraction(fraction float64)
}

// View holds the element references the controller drives. Only Slides is
// required; every other field may be left nil.
type View struct {
	Slides   []Activatable
	Dots     []Activatable
	Progress ProgressBar
	Current  TextDisplay
	Total    TextDisplay
}

// Options configures a Controller.
type Options struct {
	Autoplay       bool
	Interval       time.Duration
	SwipeThreshold float64
	Logger         *zap.Logger
}

// State is a snapshot of the carousel.
type State struct {
	CurrentIndex   int  `json:"currentIndex"`
	AutoplayActive bool `json:"autoplayActive"`
	TotalSlides    int  `json:"totalSlides"`
}

// Controller owns the carousel state. All navigation funnels through
// goToSlide; the exported On* methods are the only inputs.
type Controller struct {
	mu        sync.Mutex
	view      View
	scheduler Scheduler
	logger    *zap.Logger

	autoplay       bool
	interval       time.Duration
	swipeThreshold float64

	current int
	total   int

	timer    Timer
	timerGen uint64

	touchStartX float64
	touching    bool
	closed      bool
}

// New builds a controller over view, activates the first slide and, when
// opts.Autoplay is set, starts the autoplay timer on scheduler.
func New(view View, scheduler Scheduler, opts Options) *Controller {
	if scheduler == nil {
		scheduler = NewTickerScheduler(nil)
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.SwipeThreshold <= 0 {
		opts.SwipeThreshold = DefaultSwipeThreshold
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	c := &Controller{
		view:           view,
		scheduler:      scheduler,
		logger:         opts.Logger,
		autoplay:       opts.Autoplay,
		interval:       opts.Interval,
		swipeThreshold: opts.SwipeThreshold,
		total:          len(view.Slides),
	}

	if c.total == 0 {
		c.logger.Debug("slideshow has no slides, controller is inert")
		return c
	}

	for i := range c.view.Slides {
		c.mark(i, i == 0)
	}
	if c.view.Total != nil {
		c.view.Total.SetText(strconv.Itoa(c.total))
	}
	c.renderIndicator()
	c.startAutoplay()

	return c
}

// OnNext advances one slide and restarts the autoplay interval.
func (c *Controller) OnNext() {
	c.navigate(func() { c.goToSlide(c.current + 1) })
}

// OnPrevious goes back one slide and restarts the autoplay interval.
func (c *Controller) OnPrevious() {
	c.navigate(func() { c.goToSlide(c.current - 1) })
}

// OnJump activates the slide at index, as a dot click does.
func (c *Controller) OnJump(index int) {
	c.navigate(func() { c.goToSlide(index) })
}

// OnKey maps keyboard keys to navigation. It reports whether the key was
// consumed.
func (c *Controller) OnKey(key string) bool {
	switch key {
	case "ArrowLeft":
		c.OnPrevious()
	case "ArrowRight":
		c.OnNext()
	default:
		return false
	}
	return true
}

// OnSwipeStart records where a touch began and pauses autoplay.
func (c *Controller) OnSwipeStart(x float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.touchStartX = x
	c.touching = true
	c.pauseAutoplay()
}

// OnSwipeEnd interprets the finished touch. A horizontal travel larger than
// the swipe threshold moves one slide; right-to-left advances.
func (c *Controller) OnSwipeEnd(x float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.touching {
		return
	}
	c.touching = false

	delta := c.touchStartX - x
	if math.Abs(delta) > c.swipeThreshold {
		if delta > 0 {
			c.goToSlide(c.current + 1)
		} else {
			c.goToSlide(c.current - 1)
		}
	}
	c.resetAutoplay()
}

// OnPointerEnter pauses autoplay while a pointer hovers the carousel.
func (c *Controller) OnPointerEnter() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.pauseAutoplay()
}

// OnPointerLeave resumes autoplay without restarting the interval.
func (c *Controller) OnPointerLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.startAutoplay()
}

// OnTimerTick advances one slide, as an autoplay tick does.
func (c *Controller) OnTimerTick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.goToSlide(c.current + 1)
}

// StartAutoplay starts the autoplay timer. It is a no-op when one is running.
func (c *Controller) StartAutoplay() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.startAutoplay()
}

// PauseAutoplay stops the autoplay timer. It is a no-op when none is running.
func (c *Controller) PauseAutoplay() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pauseAutoplay()
}

// ResetAutoplay restarts the autoplay interval from now.
func (c *Controller) ResetAutoplay() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetAutoplay()
}

// State returns a snapshot of the carousel.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		CurrentIndex:   c.current,
		AutoplayActive: c.timer != nil,
		TotalSlides:    c.total,
	}
}

// Close stops autoplay. Every input after Close is ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pauseAutoplay()
	c.closed = true
}

func (c *Controller) navigate(move func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	move()
	c.resetAutoplay()
}

// goToSlide wraps target by exactly one step past either end; callers only
// ever ask for current±1 or a dot index.
func (c *Controller) goToSlide(target int) {
	if c.total == 0 {
		return
	}

	c.mark(c.current, false)

	switch {
	case target >= c.total:
		target = 0
	case target < 0:
		target = c.total - 1
	}
	c.current = target

	c.mark(c.current, true)
	c.renderIndicator()

	c.logger.Debug("slide activated", zap.Int("index", c.current), zap.Int("total", c.total))
}

func (c *Controller) mark(index int, active bool) {
	if index < len(c.view.Slides) && c.view.Slides[index] != nil {
		c.view.Slides[index].SetActive(active)
	}
	if index < len(c.view.Dots) && c.view.Dots[index] != nil {
		c.view.Dots[index].SetActive(active)
	}
}

func (c *Controller) renderIndicator() {
	if c.view.Current != nil {
		c.view.Current.SetText(strconv.Itoa(c.current + 1))
	}
	if c.view.Progress != nil {
		c.view.Progress.SetFraction(Fraction(c.current, c.total))
	}
}

func (c *Controller) startAutoplay() {
	if c.closed || !c.autoplay || c.total == 0 || c.timer != nil {
		return
	}

	c.timerGen++
	gen := c.timerGen
	c.timer = c.scheduler.Every(c.interval, func() { c.tick(gen) })
}

func (c *Controller) pauseAutoplay() {
	if c.timer == nil {
		return
	}
	c.timer.Stop()
	c.timer = nil
}

func (c *Controller) resetAutoplay() {
	c.pauseAutoplay()
	c.startAutoplay()
}

// tick drops deliveries from a timer that has since been cancelled.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.timer == nil || gen != c.timerGen {
		return
	}
	c.goToSlide(c.current + 1)
}

// Fraction is the progress value for the slide at index out of total.
func Fraction(index, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(index+1) / float64(total)
}

// ProgressWidth formats Fraction as a CSS percentage, e.g. "50%".
func ProgressWidth(index, total int) string {
	return strconv.FormatFloat(Fraction(index, total)*100, 'f', -1, 64) + "%"
}
