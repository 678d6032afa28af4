package systems

import (
	"testing"

	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

func newAnimatedEntity(em *ecs.EntityManager, loop bool) (ecs.EntityID, []*ebiten.Image) {
	frames := []*ebiten.Image{ebiten.NewImage(10, 10), ebiten.NewImage(10, 10), ebiten.NewImage(10, 10)}
	id := em.CreateEntity()
	em.AddComponent(id, &components.AnimationComponent{Frames: frames, FPS: 5, Loop: loop})
	em.AddComponent(id, &components.SpriteComponent{Image: frames[0]})
	return id, frames
}

// TestAnimationFrameAdvance 5 帧/秒：0.2 秒前进一帧
func TestAnimationFrameAdvance(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewAnimationSystem(em)
	id, frames := newAnimatedEntity(em, true)

	system.Update(0.1)
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
	if sprite.Image != frames[0] {
		t.Error("Expected frame 0 after 0.1s")
	}

	system.Update(0.125)
	if sprite.Image != frames[1] {
		t.Error("Expected frame 1 after 0.225s")
	}
}

// TestAnimationLooping 循环动画回到第0帧
func TestAnimationLooping(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewAnimationSystem(em)
	id, frames := newAnimatedEntity(em, true)

	system.Update(0.65) // 3.25 帧
	anim, _ := ecs.GetComponent[*components.AnimationComponent](em, id)
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
	if anim.Finished {
		t.Error("Looping animation should never finish")
	}
	if sprite.Image != frames[0] {
		t.Errorf("Expected wrap to frame 0, got frame position %f", anim.Frame)
	}
}

// TestAnimationNonLooping 非循环动画停在最后一帧
func TestAnimationNonLooping(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewAnimationSystem(em)
	id, frames := newAnimatedEntity(em, false)

	system.Update(1.0)
	anim, _ := ecs.GetComponent[*components.AnimationComponent](em, id)
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
	if !anim.Finished {
		t.Error("Expected animation to be finished")
	}
	if sprite.Image != frames[2] {
		t.Error("Expected last frame")
	}

	system.Update(1.0)
	if anim.Frame != 2 {
		t.Errorf("Finished animation should not advance, got %f", anim.Frame)
	}
}
