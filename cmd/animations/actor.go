package main

import (
	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/asset"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// actor is an animated sprite moving back and forth between two points.
type actor struct {
	anim      *sprite.Animation[string]
	transform sprite.Matrix

	// weighted animations count 60 Hz ticks instead of seconds.
	weighted bool

	from, to sprite.Point
	tween    *gween.Tween
	reverse  bool
}

type actorRole struct {
	animation   string
	frameMillis float32
	speed       float32
	looped      bool
	from, to    sprite.Point
	seconds     float32
	easing      ease.TweenFunc
}

var roles = []actorRole{
	{animation: "orbit", speed: 5, looped: true, from: sprite.Pt(20, 20), to: sprite.Pt(140, 20), seconds: 2, easing: ease.InOutQuad},
	{animation: "orbit", frameMillis: 100, speed: 1, looped: true, from: sprite.Pt(20, 40), to: sprite.Pt(140, 40), seconds: 2, easing: ease.Linear},
	{animation: "orbit", speed: -5, looped: true, from: sprite.Pt(140, 60), to: sprite.Pt(20, 60), seconds: 3, easing: ease.InOutSine},
	{animation: "blink", frameMillis: 250, speed: 1, looped: false, from: sprite.Pt(80, 10), to: sprite.Pt(80, 60), seconds: 1.5, easing: ease.OutBounce},
}

func cast(sheet *asset.Sheet) ([]*actor, error) {
	actors := make([]*actor, 0, len(roles))
	for _, role := range roles {
		a, err := newActor(sheet, role)
		if err != nil {
			return nil, err
		}
		actors = append(actors, a)
	}
	return actors, nil
}

func newActor(sheet *asset.Sheet, role actorRole) (*actor, error) {
	anim, err := sheet.Animation(role.animation, role.frameMillis)
	if err != nil {
		return nil, err
	}
	anim.SetSpeed(role.speed)
	anim.SetLooped(role.looped)
	anim.Play()

	a := &actor{
		anim:     anim,
		weighted: role.frameMillis != 0,
		from:     role.from,
		to:       role.to,
		tween:    gween.New(0, 1, role.seconds, role.easing),
	}
	a.place(0)
	return a, nil
}

// quad returns the vertices of the current frame, sized and anchored by
// that frame's own entry in sheet.
func (a *actor) quad(sheet *asset.Sheet) ([4]sprite.Vertex, error) {
	name := a.anim.CurrentItem()
	spr, err := sheet.Sprite(name, sprite.WithTransform(a.transform))
	if err != nil {
		return [4]sprite.Vertex{}, err
	}
	return sheet.Quad(name, spr)
}

func (a *actor) place(t float32) {
	from, to := a.from, a.to
	if a.reverse {
		from, to = to, from
	}
	p := from.Add(to.Sub(from).Mul(t))
	a.transform = sprite.Identity().Translate(p.X, p.Y)
}

func (a *actor) update(dt float32) {
	step := dt
	if a.weighted {
		step = dt * 60
	}
	if _, wrapped, ok := a.anim.Update(step); ok && wrapped && !a.anim.Looped() {
		// Bounce one-shot animations between their ends.
		a.anim.SetSpeed(-a.anim.Speed())
		a.anim.Play()
	}

	t, done := a.tween.Update(dt)
	a.place(t)
	if done {
		// Walk the path back on the next leg.
		a.reverse = !a.reverse
		a.tween.Reset()
	}
}
