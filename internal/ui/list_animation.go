package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// AnimationTickMsg advances appear animations by one frame.
type AnimationTickMsg time.Time

// appearAnim is the remaining displacement of a newly inserted bubble.
type appearAnim struct {
	alpha     float64
	translate int
}

func (a *appearAnim) done() bool {
	return a.translate == 0 && a.alpha >= 1
}

// step moves the animation one frame closer to rest: the offset halves and
// the bubble fades in linearly.
func (a *appearAnim) step() {
	a.translate /= 2
	a.alpha = min(a.alpha+AlphaStep, 1)
}

// AnimationTick schedules the next animation frame.
func AnimationTick() tea.Cmd {
	return tea.Tick(AnimationInterval, func(t time.Time) tea.Msg {
		return AnimationTickMsg(t)
	})
}

// Animating reports whether any bubble is still moving into place.
func (l *MessageList) Animating() bool {
	return len(l.anims) > 0
}

func (l *MessageList) startAnimation() tea.Cmd {
	if l.animating || len(l.anims) == 0 {
		return nil
	}
	l.animating = true
	return AnimationTick()
}

func (l *MessageList) advanceAnimation() tea.Cmd {
	for id, a := range l.anims {
		a.step()
		if a.done() {
			delete(l.anims, id)
		}
	}
	if len(l.anims) == 0 {
		l.animating = false
		return nil
	}
	return AnimationTick()
}
