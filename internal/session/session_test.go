package session_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/sequence"
	"github.com/san-kum/algoviz/internal/session"
)

type recorder struct {
	mu    sync.Mutex
	steps []string
}

func (r *recorder) StateChanged(from, to session.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, from.String()+">"+to.String())
}

func (r *recorder) Transitions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.steps...)
}

// pauseOnSorted pauses the session at the first position marked sorted.
type pauseOnSorted struct {
	c    *session.Controller
	once sync.Once
}

func (p *pauseOnSorted) OnEvent(ev algo.Event) {
	if ev.Kind == algo.KindMarkSorted {
		p.once.Do(p.c.PauseResume)
	}
}

func waitResult(c *session.Controller) (*algo.Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.Wait(ctx)
}

var _ = Describe("Controller", func() {
	var (
		c   *session.Controller
		rec *recorder
	)

	newController := func(values []int, speedMs int) {
		rec = &recorder{}
		c = session.New(values, session.Options{
			SpeedMs:   speedMs,
			Listeners: []session.Listener{rec},
		})
	}

	AfterEach(func() {
		c.Close()
	})

	Context("a run to completion", func() {
		BeforeEach(func() {
			newController([]int{5, 3, 8, 1}, 1)
		})

		It("sorts and ends in Done", func() {
			Expect(c.State()).To(Equal(session.Idle))
			Expect(c.Start("bubble", algo.Params{})).To(Succeed())

			res, err := waitResult(c)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(algo.Sorted))
			Expect(c.Values()).To(Equal([]int{1, 3, 5, 8}))
			Eventually(c.State).Should(Equal(session.Done))
			Eventually(rec.Transitions).Should(ContainElements("idle>running", "running>done"))
		})

		It("passes through Idle when started again from Done", func() {
			Expect(c.Start("bubble", algo.Params{})).To(Succeed())
			_, err := waitResult(c)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.Start("selection", algo.Params{})).To(Succeed())
			_, err = waitResult(c)
			Expect(err).NotTo(HaveOccurred())
			Eventually(rec.Transitions).Should(ContainElements("done>idle"))
			Expect(c.Result().Algorithm).To(Equal("selection"))
		})

		It("reports search outcomes without errors", func() {
			Expect(c.NewSequence([]int{7, 2, 9, 4})).To(Succeed())
			Expect(c.Start("linear", algo.Params{Target: 9})).To(Succeed())

			res, err := waitResult(c)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(algo.Found))
			Expect(res.Index).To(Equal(2))
			Expect(res.Stats.Steps).To(BeEquivalentTo(3))
		})
	})

	Context("with a slow run in flight", func() {
		BeforeEach(func() {
			newController([]int{9, 8, 7, 6, 5, 4, 3, 2, 1}, 20)
			Expect(c.Start("bubble", algo.Params{})).To(Succeed())
		})

		It("rejects a second start", func() {
			Expect(c.Start("quick", algo.Params{})).To(MatchError(session.ErrBusy))
			Expect(c.Algorithm()).To(Equal("bubble"))
		})

		It("keeps the sequence frozen while paused and finishes identically", func() {
			time.Sleep(50 * time.Millisecond)
			c.PauseResume()
			Expect(c.State()).To(Equal(session.Paused))

			frozen := c.Values()
			Consistently(c.Values, 100*time.Millisecond, 10*time.Millisecond).Should(Equal(frozen))
			Expect(c.Start("heap", algo.Params{})).To(MatchError(session.ErrBusy))

			Expect(c.SetSpeed(1)).To(Succeed())
			c.PauseResume()
			Expect(c.State()).To(Equal(session.Running))

			res, err := waitResult(c)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(algo.Sorted))
			Expect(c.Values()).To(Equal([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}))
		})

		It("cancels on a new sequence and leaves the session idle", func() {
			time.Sleep(30 * time.Millisecond)
			Expect(c.NewSequence([]int{4, 4, 1})).To(Succeed())

			Expect(c.State()).To(Equal(session.Idle))
			_, err := waitResult(c)
			Expect(err).To(MatchError(algo.ErrCanceled))
			Consistently(c.Values, 60*time.Millisecond, 10*time.Millisecond).Should(Equal([]int{4, 4, 1}))
			Expect(rec.Transitions()).To(ContainElement("running>idle"))
		})

		It("cancels while paused", func() {
			c.PauseResume()
			Expect(c.NewSequence([]int{2, 1})).To(Succeed())
			Expect(c.State()).To(Equal(session.Idle))
			Expect(c.Values()).To(Equal([]int{2, 1}))
		})

		It("restores the starting values on reset", func() {
			time.Sleep(60 * time.Millisecond)
			c.Reset()

			Expect(c.State()).To(Equal(session.Idle))
			Expect(c.Values()).To(Equal([]int{9, 8, 7, 6, 5, 4, 3, 2, 1}))
		})
	})

	Context("a pause after the last step", func() {
		var pauser *pauseOnSorted

		BeforeEach(func() {
			rec = &recorder{}
			pauser = &pauseOnSorted{}
			c = session.New([]int{1, 2}, session.Options{
				SpeedMs:   1,
				Observers: []algo.Observer{pauser},
				Listeners: []session.Listener{rec},
			})
			pauser.c = c
		})

		It("holds the run until resumed", func() {
			Expect(c.Start("bubble", algo.Params{})).To(Succeed())
			Eventually(c.State).Should(Equal(session.Paused))
			Consistently(c.State, 60*time.Millisecond, 10*time.Millisecond).Should(Equal(session.Paused))

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			_, err := c.Wait(ctx)
			Expect(err).To(MatchError(context.DeadlineExceeded))

			c.PauseResume()
			res, err := waitResult(c)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(algo.Sorted))
			Eventually(c.State).Should(Equal(session.Done))
			Eventually(rec.Transitions).Should(ContainElements("running>paused", "paused>running", "running>done"))
			Expect(rec.Transitions()).NotTo(ContainElement("paused>done"))
		})

		It("can still be canceled while held", func() {
			Expect(c.Start("bubble", algo.Params{})).To(Succeed())
			Eventually(c.State).Should(Equal(session.Paused))

			c.Reset()
			Expect(c.State()).To(Equal(session.Idle))
			_, err := waitResult(c)
			Expect(err).To(MatchError(algo.ErrCanceled))
		})
	})

	Context("control edge cases", func() {
		BeforeEach(func() {
			newController([]int{3, 1, 2}, 5)
		})

		It("ignores pause-resume while idle", func() {
			c.PauseResume()
			Expect(c.State()).To(Equal(session.Idle))
			Expect(rec.Transitions()).To(BeEmpty())
		})

		It("rejects invalid speeds", func() {
			Expect(c.SetSpeed(0)).To(MatchError(session.ErrInvalidSpeed))
			Expect(c.SetSpeed(-10)).To(MatchError(session.ErrInvalidSpeed))
			Expect(c.Speed()).To(Equal(5))
			Expect(c.SetSpeed(120)).To(Succeed())
			Expect(c.Speed()).To(Equal(120))
		})

		It("rejects an empty sequence", func() {
			Expect(c.NewSequence(nil)).To(MatchError(sequence.ErrInvalidInput))
			Expect(c.Values()).To(Equal([]int{3, 1, 2}))
		})

		It("rejects binary search on unsorted input", func() {
			Expect(c.Start("binary", algo.Params{Target: 2})).To(MatchError(algo.ErrUnsorted))
			Expect(c.State()).To(Equal(session.Idle))
		})

		It("rejects unknown algorithms", func() {
			Expect(c.Start("bogo", algo.Params{})).To(MatchError(algo.ErrUnknownAlgorithm))
		})

		It("refuses to start after close", func() {
			c.Close()
			Expect(c.Start("bubble", algo.Params{})).To(MatchError(session.ErrClosed))
		})

		It("returns nothing from Wait before any run", func() {
			res, err := waitResult(c)
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(BeNil())
		})
	})
})
