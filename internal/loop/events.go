package loop

// Listener receives the engine's outbound events. Calls happen synchronously
// inside Step, on the goroutine driving the engine.
type Listener interface {
	OnScore(total int)
	OnLifeLost(remaining int)
	OnGameOver(finalScore int)
}

// ListenerFuncs adapts plain functions to Listener; nil fields are skipped.
type ListenerFuncs struct {
	Score    func(total int)
	LifeLost func(remaining int)
	GameOver func(finalScore int)
}

func (l ListenerFuncs) OnScore(total int) {
	if l.Score != nil {
		l.Score(total)
	}
}

func (l ListenerFuncs) OnLifeLost(remaining int) {
	if l.LifeLost != nil {
		l.LifeLost(remaining)
	}
}

func (l ListenerFuncs) OnGameOver(finalScore int) {
	if l.GameOver != nil {
		l.GameOver(finalScore)
	}
}

type nopListener struct{}

func (nopListener) OnScore(int)    {}
func (nopListener) OnLifeLost(int) {}
func (nopListener) OnGameOver(int) {}
