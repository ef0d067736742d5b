package slideshow_test

import (
	"math/rand"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"dakota/services/slideshow"
)

var _ = Describe("Controller", func() {
	var (
		fv    *fakeView
		sched *slideshow.VirtualScheduler
		ctrl  *slideshow.Controller
	)

	build := func(n int, autoplay bool) {
		fv = newFakeView(n)
		sched = slideshow.NewVirtualScheduler()
		ctrl = slideshow.New(fv.view(), sched, slideshow.Options{
			Autoplay: autoplay,
			Interval: 5 * time.Second,
		})
	}

	expectActive := func(index int) {
		ExpectWithOffset(1, ctrl.State().CurrentIndex).To(Equal(index))
		ExpectWithOffset(1, activeIndices(fv.slides)).To(Equal([]int{index}))
		ExpectWithOffset(1, activeIndices(fv.dots)).To(Equal([]int{index}))
	}

	Context("when initialized with six slides", func() {
		BeforeEach(func() {
			build(6, true)
		})

		It("should activate the first slide and render the indicator", func() {
			expectActive(0)
			Expect(fv.total.text).To(Equal("6"))
			Expect(fv.current.text).To(Equal("1"))
			Expect(fv.bar.fraction).To(BeNumerically("~", 1.0/6.0, 1e-9))
		})

		It("should start autoplay", func() {
			Expect(ctrl.State()).To(Equal(slideshow.State{
				CurrentIndex:   0,
				AutoplayActive: true,
				TotalSlides:    6,
			}))
			Expect(sched.Pending()).To(Equal(1))
		})

		It("should wrap to the first slide after the last", func() {
			ctrl.OnJump(5)
			expectActive(5)

			ctrl.OnNext()
			expectActive(0)
		})

		It("should wrap to the last slide before the first", func() {
			ctrl.OnPrevious()
			expectActive(5)
		})

		It("should wrap out-of-range jumps by one step rather than clamp", func() {
			ctrl.OnJump(6)
			expectActive(0)

			ctrl.OnJump(3)
			ctrl.OnJump(-1)
			expectActive(5)
		})

		It("should keep exactly one active slide over any navigation sequence", func() {
			rng := rand.New(rand.NewSource(42))
			expected := 0

			for i := 0; i < 500; i++ {
				switch rng.Intn(4) {
				case 0:
					ctrl.OnNext()
					expected = (expected + 1) % 6
				case 1:
					ctrl.OnPrevious()
					expected = (expected + 5) % 6
				case 2:
					target := rng.Intn(6)
					ctrl.OnJump(target)
					expected = target
				case 3:
					sched.Advance(5 * time.Second)
					expected = (expected + 1) % 6
				}

				state := ctrl.State()
				Expect(state.CurrentIndex).To(BeNumerically(">=", 0))
				Expect(state.CurrentIndex).To(BeNumerically("<", 6))
				expectActive(expected)
			}
		})

		It("should keep the indicator consistent with the active slide", func() {
			for i := 0; i < 6; i++ {
				ctrl.OnJump(i)
				Expect(fv.current.text).To(Equal(strconv.Itoa(i + 1)))
				Expect(fv.bar.fraction).To(BeNumerically("~", float64(i+1)/6.0, 1e-9))
			}
		})

		It("should map arrow keys to navigation", func() {
			Expect(ctrl.OnKey("ArrowRight")).To(BeTrue())
			expectActive(1)

			Expect(ctrl.OnKey("ArrowLeft")).To(BeTrue())
			Expect(ctrl.OnKey("ArrowLeft")).To(BeTrue())
			expectActive(5)

			Expect(ctrl.OnKey("Enter")).To(BeFalse())
			expectActive(5)
		})

		It("should advance after one autoplay interval", func() {
			sched.Advance(5 * time.Second)

			expectActive(1)
			Expect(fv.current.text).To(Equal("2"))
			Expect(slideshow.ProgressWidth(ctrl.State().CurrentIndex, 6)).To(HavePrefix("33.33"))
			Expect(slideshow.ProgressWidth(ctrl.State().CurrentIndex, 6)).To(HaveSuffix("%"))
		})

		It("should restart the interval after a manual navigation", func() {
			sched.Advance(5 * time.Second)
			expectActive(1)

			sched.Advance(2 * time.Second)
			ctrl.OnNext()
			expectActive(2)

			next, ok := sched.NextTick()
			Expect(ok).To(BeTrue())
			Expect(next).To(Equal(12 * time.Second))

			sched.Advance(5*time.Second - time.Millisecond)
			expectActive(2)

			sched.Advance(time.Millisecond)
			expectActive(3)
		})

		It("should keep a single timer when started twice", func() {
			ctrl.StartAutoplay()
			ctrl.StartAutoplay()
			Expect(sched.Pending()).To(Equal(1))

			sched.Advance(5 * time.Second)
			expectActive(1)
		})

		It("should tolerate pausing twice", func() {
			ctrl.PauseAutoplay()
			ctrl.PauseAutoplay()
			Expect(sched.Pending()).To(Equal(0))
			Expect(ctrl.State().AutoplayActive).To(BeFalse())

			sched.Advance(20 * time.Second)
			expectActive(0)
		})

		It("should reset from the paused state", func() {
			ctrl.PauseAutoplay()
			sched.Advance(time.Second)

			ctrl.ResetAutoplay()
			next, _ := sched.NextTick()
			Expect(next).To(Equal(6 * time.Second))
		})

		It("should pause while hovered and resume on leave", func() {
			ctrl.OnPointerEnter()
			Expect(ctrl.State().AutoplayActive).To(BeFalse())

			sched.Advance(15 * time.Second)
			expectActive(0)

			ctrl.OnPointerLeave()
			Expect(ctrl.State().AutoplayActive).To(BeTrue())
			sched.Advance(5 * time.Second)
			expectActive(1)
		})

		It("should not restart a running interval on pointer leave", func() {
			sched.Advance(3 * time.Second)
			ctrl.OnPointerLeave()

			sched.Advance(2 * time.Second)
			expectActive(1)
		})

		It("should advance on a timer tick without restarting the interval", func() {
			sched.Advance(3 * time.Second)
			ctrl.OnTimerTick()
			expectActive(1)

			next, _ := sched.NextTick()
			Expect(next).To(Equal(5 * time.Second))
		})

		Describe("swipe gestures", func() {
			It("should ignore a travel equal to the dead-zone", func() {
				ctrl.OnSwipeStart(200)
				ctrl.OnSwipeEnd(150)
				expectActive(0)
			})

			It("should advance on a right-to-left travel past the dead-zone", func() {
				ctrl.OnSwipeStart(200)
				ctrl.OnSwipeEnd(149)
				expectActive(1)
			})

			It("should go back on a left-to-right travel past the dead-zone", func() {
				ctrl.OnSwipeStart(100)
				ctrl.OnSwipeEnd(151)
				expectActive(5)
			})

			It("should pause during the touch and reset afterwards", func() {
				sched.Advance(time.Second)
				ctrl.OnSwipeStart(100)
				Expect(sched.Pending()).To(Equal(0))

				sched.Advance(10 * time.Second)
				expectActive(0)

				ctrl.OnSwipeEnd(100)
				Expect(sched.Pending()).To(Equal(1))
				next, _ := sched.NextTick()
				Expect(next).To(Equal(16 * time.Second))
			})

			It("should ignore a touch end without a touch start", func() {
				ctrl.OnSwipeEnd(0)
				ctrl.OnSwipeEnd(500)
				expectActive(0)
			})
		})

		It("should stop everything on close", func() {
			ctrl.Close()
			Expect(sched.Pending()).To(Equal(0))

			ctrl.OnNext()
			ctrl.OnPointerLeave()
			ctrl.StartAutoplay()
			sched.Advance(time.Minute)

			expectActive(0)
			Expect(sched.Pending()).To(Equal(0))
		})
	})

	Context("when a cancelled timer delivers late", func() {
		It("should drop the stale tick", func() {
			fv = newFakeView(3)
			rec := &recordingScheduler{}
			ctrl = slideshow.New(fv.view(), rec, slideshow.Options{Autoplay: true})

			Expect(rec.timers).To(HaveLen(1))
			stale := rec.timers[0]
			Expect(stale.interval).To(Equal(slideshow.DefaultInterval))

			ctrl.OnNext()
			Expect(stale.stopped).To(BeTrue())
			Expect(rec.live()).To(HaveLen(1))

			stale.fn()
			Expect(ctrl.State().CurrentIndex).To(Equal(1))

			rec.live()[0].fn()
			Expect(ctrl.State().CurrentIndex).To(Equal(2))
		})
	})

	Context("when autoplay is disabled", func() {
		BeforeEach(func() {
			build(4, false)
		})

		It("should never start a timer", func() {
			Expect(sched.Pending()).To(Equal(0))

			ctrl.OnNext()
			ctrl.OnPointerLeave()
			ctrl.OnSwipeStart(0)
			ctrl.OnSwipeEnd(0)
			ctrl.StartAutoplay()

			Expect(sched.Pending()).To(Equal(0))
			expectActive(1)
		})
	})

	Context("when there are no slides", func() {
		It("should accept every input silently", func() {
			sched = slideshow.NewVirtualScheduler()

			Expect(func() {
				ctrl = slideshow.New(slideshow.View{}, sched, slideshow.Options{Autoplay: true})
				ctrl.OnNext()
				ctrl.OnPrevious()
				ctrl.OnJump(2)
				ctrl.OnKey("ArrowRight")
				ctrl.OnSwipeStart(10)
				ctrl.OnSwipeEnd(300)
				ctrl.OnPointerEnter()
				ctrl.OnPointerLeave()
				ctrl.OnTimerTick()
				ctrl.ResetAutoplay()
				sched.Advance(time.Minute)
				ctrl.Close()
			}).NotTo(Panic())

			Expect(ctrl.State()).To(Equal(slideshow.State{}))
			Expect(sched.Pending()).To(Equal(0))
		})
	})

	Context("when optional elements are missing", func() {
		It("should navigate with slides only", func() {
			slides := []*fakeElement{{}, {}, {}}
			view := slideshow.View{}
			for _, s := range slides {
				view.Slides = append(view.Slides, s)
			}

			ctrl = slideshow.New(view, slideshow.NewVirtualScheduler(), slideshow.Options{})
			ctrl.OnPrevious()

			Expect(activeIndices(slides)).To(Equal([]int{2}))
		})

		It("should tolerate fewer dots than slides", func() {
			fv = newFakeView(4)
			fv.dots = fv.dots[:2]

			ctrl = slideshow.New(fv.view(), slideshow.NewVirtualScheduler(), slideshow.Options{})
			Expect(func() {
				ctrl.OnJump(3)
				ctrl.OnNext()
			}).NotTo(Panic())

			Expect(activeIndices(fv.slides)).To(Equal([]int{0}))
			Expect(activeIndices(fv.dots)).To(Equal([]int{0}))
		})
	})
})
