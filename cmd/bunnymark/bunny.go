package main

import "github.com/gogpu/sprite"

const (
	gravity = 0.75

	// stepScale converts seconds into the per-tick units the speeds are
	// tuned for.
	stepScale = 25
)

// rng is a Lehmer generator (MINSTD, multiplier 48271).
type rng struct {
	state uint32
}

func newRNG(seed uint32) *rng {
	seed %= 0x7fffffff
	if seed == 0 {
		seed = 4
	}
	return &rng{state: seed}
}

// float returns a value in (0, 1).
func (r *rng) float() float32 {
	r.state = uint32(uint64(r.state) * 48271 % 0x7fffffff)
	return float32(r.state) / 0x7fffffff
}

type bounds struct {
	left, top, right, bottom float32
}

type bunny struct {
	pos, vel sprite.Point
}

func newBunny(r *rng) bunny {
	return bunny{
		pos: sprite.Pt(r.float()*800, 7),
		vel: sprite.Pt(r.float()*10, r.float()*10-5),
	}
}

func (b *bunny) update(r *rng, bb bounds, gravity, step float32) {
	b.pos = b.pos.Add(b.vel.Mul(step * stepScale))
	b.vel.Y += gravity * step * stepScale

	switch {
	case b.pos.X > bb.right:
		b.vel.X = -b.vel.X
		b.pos.X = bb.right
	case b.pos.X < bb.left:
		b.vel.X = -b.vel.X
		b.pos.X = bb.left
	}

	switch {
	case b.pos.Y > bb.bottom:
		b.vel.Y *= -0.85
		b.pos.Y = bb.bottom
		if r.float() > 0.5 {
			b.vel.Y -= r.float() * 6
		}
	case b.pos.Y < bb.top:
		b.vel.Y = 0
		b.pos.Y = bb.top
	}
}

// spriteQueue collects axis-aligned sprites for the next draw.
type spriteQueue interface {
	AddSprite(minXY, maxXY [2]float32) error
	Clear()
}

// queueBunnies adds one sprite of the given size per bunny. On error the
// queue is cleared so a partial frame is never drawn.
func queueBunnies(q spriteQueue, bunnies []bunny, size sprite.Point) error {
	for _, b := range bunnies {
		end := b.pos.Add(size)
		if err := q.AddSprite(b.pos.XY(), end.XY()); err != nil {
			q.Clear()
			return err
		}
	}
	return nil
}
