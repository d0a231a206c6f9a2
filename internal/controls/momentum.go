package controls

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type sample struct {
	delta mgl64.Vec2
	at    time.Time
}

func (c *Controls) addMomentum(delta mgl64.Vec3) {
	now := c.now()
	c.evictMomentum(now)
	c.momentum = append(c.momentum, sample{delta: mgl64.Vec2{delta.X(), delta.Y()}, at: now})
}

// currentMomentum weights recent samples linearly by age: the oldest sample
// in the window counts for nothing and the newest for (n-1)/n.
func (c *Controls) currentMomentum() mgl64.Vec2 {
	c.evictMomentum(c.now())
	var m mgl64.Vec2
	n := float64(len(c.momentum))
	for i, s := range c.momentum {
		m = m.Add(s.delta.Mul(float64(i) / n))
	}
	return m
}

func (c *Controls) evictMomentum(now time.Time) {
	keep := 0
	for _, s := range c.momentum {
		if now.Sub(s.at) < momentumWindow {
			c.momentum[keep] = s
			keep++
		}
	}
	c.momentum = c.momentum[:keep]
}
