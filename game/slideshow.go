package game

import (
	"fmt"
	"time"

	"github.com/memmaker/undergrowth/engine/util"
	"github.com/solarlune/gocoro"
)

// Slideshow calls advance every interval. The coroutine only counts the
// elapsed intervals; advance itself runs inside Update, on the thread that
// drives the render loop.
type Slideshow struct {
	interval  time.Duration
	advance   func()
	coroutine gocoro.Coroutine
	pending   int
	stopped   bool
}

func NewSlideshow(interval time.Duration, advance func()) *Slideshow {
	return &Slideshow{
		interval: interval,
		advance:  advance,
		stopped:  true,
	}
}

func (s *Slideshow) Start() error {
	s.Stop()
	s.stopped = false
	s.pending = 0
	s.coroutine = gocoro.NewCoroutine()
	return s.coroutine.Run(s.script)
}

func (s *Slideshow) script(exe *gocoro.Execution) {
	util.LogSceneDebug(fmt.Sprintf("[Slideshow] Advancing every %s", s.interval))
	for {
		if err := exe.YieldTime(s.interval); err != nil {
			return
		}
		s.pending++
		if err := exe.Yield(); err != nil {
			return
		}
	}
}

// Update resumes the coroutine once and runs advance for an elapsed
// interval. Call it once per frame from the render thread.
func (s *Slideshow) Update() {
	if s.stopped || !s.coroutine.Running() {
		return
	}
	s.coroutine.Update()
	if s.pending > 0 && !s.stopped {
		s.pending = 0
		s.advance()
	}
}

func (s *Slideshow) Running() bool {
	return !s.stopped && s.coroutine.Running()
}

// Stop ends the coroutine. advance is not called again until the next Start.
func (s *Slideshow) Stop() {
	if !s.stopped && s.coroutine.Running() {
		s.coroutine.Stop()
	}
	s.stopped = true
	s.pending = 0
}
