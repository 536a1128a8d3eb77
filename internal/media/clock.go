package media

import (
	"sync"
	"time"
)

const notifyInterval = 250 * time.Millisecond

// Clock is a wall-clock Source for editing without a real player attached.
// Position advances in real time while playing and stops at the duration.
type Clock struct {
	mu       sync.Mutex
	duration float64
	position float64
	playing  bool
	started  time.Time

	nextSub int
	subs    map[int]func(t float64)
	stop    chan struct{}
	done    sync.WaitGroup
	closed  bool

	now func() time.Time
}

func NewClock(duration float64) *Clock {
	if duration < 0 {
		duration = 0
	}
	return &Clock{
		duration: duration,
		subs:     map[int]func(t float64){},
		now:      time.Now,
	}
}

func (c *Clock) Duration() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

func (c *Clock) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked()
}

func (c *Clock) currentLocked() float64 {
	pos := c.position
	if c.playing {
		pos += c.now().Sub(c.started).Seconds()
	}
	if pos >= c.duration {
		pos = c.duration
		c.position = pos
		c.playing = false
	}
	return pos
}

func (c *Clock) SetCurrentTime(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t < 0 {
		t = 0
	}
	if t > c.duration {
		t = c.duration
	}
	c.position = t
	if c.playing {
		c.started = c.now()
	}
}

func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentLocked()
	return c.playing
}

func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing || c.closed {
		return
	}
	if c.position >= c.duration {
		c.position = 0
	}
	c.playing = true
	c.started = c.now()
	if c.stop == nil && len(c.subs) > 0 {
		c.startNotifierLocked()
	}
}

func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return
	}
	c.position = c.currentLocked()
	c.playing = false
}

// Subscribe registers fn for periodic position updates during playback.
func (c *Clock) Subscribe(fn func(t float64)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	if c.playing && c.stop == nil {
		c.startNotifierLocked()
	}
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Clock) startNotifierLocked() {
	stop := make(chan struct{})
	c.stop = stop
	c.done.Add(1)
	go func() {
		defer c.done.Done()
		ticker := time.NewTicker(notifyInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.mu.Lock()
				if !c.playing {
					c.mu.Unlock()
					continue
				}
				pos := c.currentLocked()
				fns := make([]func(t float64), 0, len(c.subs))
				for _, fn := range c.subs {
					fns = append(fns, fn)
				}
				c.mu.Unlock()
				for _, fn := range fns {
					fn(pos)
				}
			}
		}
	}()
}

func (c *Clock) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.playing = false
	stop := c.stop
	c.stop = nil
	c.mu.Unlock()
	if stop != nil {
		close(stop)
	}
	c.done.Wait()
	return nil
}
