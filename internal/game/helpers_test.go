package game

import (
	"context"
	"time"

	"github.com/verte-zerg/wordrush/internal/model"
)

// stepClock advances by step after every reading.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// offsetClock returns base plus the next scripted offset, repeating the last.
type offsetClock struct {
	base    time.Time
	offsets []time.Duration
}

func (c *offsetClock) Now() time.Time {
	off := c.offsets[0]
	if len(c.offsets) > 1 {
		c.offsets = c.offsets[1:]
	}
	return c.base.Add(off)
}

type seqSource struct {
	ints []int
}

func (s *seqSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

type savedSession struct {
	rec   model.SessionRecord
	wrong []model.WrongAnswer
}

type fakeRecorder struct {
	saved []savedSession
	err   error
}

func (r *fakeRecorder) InsertSession(_ context.Context, rec model.SessionRecord, wrong []model.WrongAnswer) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.saved = append(r.saved, savedSession{rec: rec, wrong: wrong})
	return "session-1", nil
}

type fakeMisses struct {
	counts map[string]int
	window int
}

func (f *fakeMisses) MissCounts(_ context.Context, window int) (map[string]int, error) {
	f.window = window
	return f.counts, nil
}
