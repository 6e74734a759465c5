package util

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type TimerState struct {
	name         string
	lastDuration float64

	totalDuration  float64
	executionCount int64

	minDuration float64
	maxDuration float64
}

func (t *TimerState) Name() string {
	return t.name
}

func (t *TimerState) Last() float64 {
	return t.lastDuration
}

func (t *TimerState) Count() int64 {
	return t.executionCount
}

func (t *TimerState) Average() float64 {
	if t.executionCount == 0 {
		return 0
	}
	return t.totalDuration / float64(t.executionCount)
}

func (t *TimerState) String() string {
	return fmt.Sprintf("%s last: %.2fms, avg: %.2fms, min: %.2fms, max: %.2fms (%d runs)", t.name, t.lastDuration, t.Average(), t.minDuration, t.maxDuration, t.executionCount)
}

// Timer collects wall clock durations per named step, in milliseconds.
// Not safe for concurrent use.
type Timer struct {
	states     map[string]*TimerState
	timerNames []string
}

func NewTimer() *Timer {
	return &Timer{
		states: make(map[string]*TimerState),
	}
}

func (t *Timer) GetState(name string) *TimerState {
	return t.states[name]
}

// Names lists the timed steps in the order they were first started.
func (t *Timer) Names() []string {
	return append([]string(nil), t.timerNames...)
}

func (t *Timer) Reset() {
	for _, state := range t.states {
		state.lastDuration = 0
		state.totalDuration = 0
		state.executionCount = 0
		state.minDuration = math.MaxInt64
		state.maxDuration = math.MinInt64
	}
}

func (t *Timer) String() string {
	var sb strings.Builder
	for _, name := range t.timerNames {
		sb.WriteString(t.states[name].String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Start begins timing the named step. The returned func stops it and
// reports the duration.
func (t *Timer) Start(name string) func() float64 {
	var state *TimerState
	var ok bool
	if state, ok = t.states[name]; !ok {
		t.timerNames = append(t.timerNames, name)
		state = &TimerState{
			name:        name,
			minDuration: math.MaxInt64,
			maxDuration: math.MinInt64,
		}
		t.states[name] = state
	}
	start := time.Now()
	return func() float64 {
		durationInMS := float64(time.Since(start).Microseconds()) / 1000.0
		state.lastDuration = durationInMS
		state.totalDuration += durationInMS
		state.executionCount++
		if durationInMS < state.minDuration {
			state.minDuration = durationInMS
		}
		if durationInMS > state.maxDuration {
			state.maxDuration = durationInMS
		}
		return durationInMS
	}
}
