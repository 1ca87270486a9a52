package events

// ScoreChange is published after every successful click. Consumers use
// the new global total as the signal to recompute derived views.
type ScoreChange struct {
	Identity    string
	UserClicks  int
	GlobalTotal int
}

type Bus struct {
	ScoreChanges chan ScoreChange
}

func NewBus() *Bus {
	return &Bus{
		ScoreChanges: make(chan ScoreChange, 16),
	}
}

// Publish never blocks the click path: if consumers are behind, the
// event is dropped and the next click re-triggers the recompute.
func (b *Bus) Publish(ev ScoreChange) {
	select {
	case b.ScoreChanges <- ev:
	default:
	}
}
