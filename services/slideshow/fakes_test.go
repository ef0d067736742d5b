package slideshow_test

import (
	"time"

	"dakota/services/slideshow"
)

type fakeElement struct {
	active bool
}

func (e *fakeElement) SetActive(active bool) {
	e.active = active
}

type fakeText struct {
	text string
}

func (t *fakeText) SetText(text string) {
	t.text = text
}

type fakeBar struct {
	fraction float64
}

func (b *fakeBar) SetFraction(fraction float64) {
	b.fraction = fraction
}

type fakeView struct {
	slides  []*fakeElement
	dots    []*fakeElement
	current *fakeText
	total   *fakeText
	bar     *fakeBar
}

func newFakeView(n int) *fakeView {
	v := &fakeView{
		current: &fakeText{},
		total:   &fakeText{},
		bar:     &fakeBar{},
	}
	for i := 0; i < n; i++ {
		v.slides = append(v.slides, &fakeElement{})
		v.dots = append(v.dots, &fakeElement{})
	}
	return v
}

func (v *fakeView) view() slideshow.View {
	out := slideshow.View{
		Progress: v.bar,
		Current:  v.current,
		Total:    v.total,
	}
	for _, s := range v.slides {
		out.Slides = append(out.Slides, s)
	}
	for _, d := range v.dots {
		out.Dots = append(out.Dots, d)
	}
	return out
}

func activeIndices(elements []*fakeElement) []int {
	var out []int
	for i, e := range elements {
		if e.active {
			out = append(out, i)
		}
	}
	return out
}

// recordingScheduler hands out timers whose callbacks the test fires by hand.
type recordingScheduler struct {
	timers []*recordedTimer
}

type recordedTimer struct {
	interval time.Duration
	fn       func()
	stopped  bool
}

func (t *recordedTimer) Stop() {
	t.stopped = true
}

func (s *recordingScheduler) Every(interval time.Duration, fn func()) slideshow.Timer {
	t := &recordedTimer{interval: interval, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *recordingScheduler) live() []*recordedTimer {
	var out []*recordedTimer
	for _, t := range s.timers {
		if !t.stopped {
			out = append(out, t)
		}
	}
	return out
}
