package loop

import (
	"slices"

	"github.com/tomz197/meteorfall/internal/loop/config"
	"github.com/tomz197/meteorfall/internal/object"
	"github.com/tomz197/meteorfall/internal/physics"
)

// populateGrids clears and re-inserts meteors and enemies into their grids.
func (e *Engine) populateGrids() {
	s := e.session
	e.meteorGrid.Clear()
	for i, m := range s.Meteors {
		e.meteorGrid.Insert(m.X, m.Y, i)
	}
	e.enemyGrid.Clear()
	for i, en := range s.Enemies {
		e.enemyGrid.Insert(en.X, en.Y, i)
	}
}

// resolveBulletHits lets every player bullet, newest first, damage at most
// one target: the newest overlapping meteor, or failing that the newest
// overlapping enemy. Hit bullets are removed. Targets reaching zero hit
// points are removed and scored exactly once.
func (e *Engine) resolveBulletHits() {
	s := e.session
	if len(s.Bullets) == 0 {
		return
	}
	e.populateGrids()

	killed := false
	for i := len(s.Bullets) - 1; i >= 0; i-- {
		b := s.Bullets[i]

		if j := e.meteorGrid.Highest(b.X, b.Y, func(j int) bool {
			m := s.Meteors[j]
			return m.HP > 0 && physics.Overlap(b, m)
		}); j >= 0 {
			m := s.Meteors[j]
			m.HP--
			if m.HP <= 0 {
				killed = true
				e.addScore(m.Score())
			}
			s.Bullets = slices.Delete(s.Bullets, i, i+1)
			continue
		}

		if j := e.enemyGrid.Highest(b.X, b.Y, func(j int) bool {
			en := s.Enemies[j]
			return en.HP > 0 && physics.Overlap(b, en)
		}); j >= 0 {
			en := s.Enemies[j]
			en.HP--
			if en.HP <= 0 {
				killed = true
				e.addScore(object.EnemyScore(e.level))
			}
			s.Bullets = slices.Delete(s.Bullets, i, i+1)
		}
	}

	if killed {
		s.Meteors = slices.DeleteFunc(s.Meteors, func(m *object.Meteor) bool { return m.HP <= 0 })
		s.Enemies = slices.DeleteFunc(s.Enemies, func(en *object.Enemy) bool { return en.HP <= 0 })
	}
}

func (e *Engine) addScore(points int) {
	e.session.Score += points
	e.listener.OnScore(e.session.Score)
}

// resolvePlayerHazards counts down invulnerability and, once it has run out,
// checks the ship against meteors (which survive the contact) and then enemy
// bullets (which are consumed). At most one life is lost per frame. It
// reports whether the game ended.
func (e *Engine) resolvePlayerHazards() (gameOver bool) {
	s := e.session
	p := s.Player
	if p.Invuln > 0 {
		p.Invuln--
	}
	if p.Invuln > 0 {
		return false
	}

	hit := false
	for i := len(s.Meteors) - 1; i >= 0; i-- {
		if physics.Overlap(p, s.Meteors[i]) {
			hit = true
			break
		}
	}
	if !hit {
		for i := len(s.EnemyBullets) - 1; i >= 0; i-- {
			if physics.Overlap(p, s.EnemyBullets[i]) {
				s.EnemyBullets = slices.Delete(s.EnemyBullets, i, i+1)
				hit = true
				break
			}
		}
	}
	if !hit {
		return false
	}

	s.Lives--
	p.Invuln = config.InvulnerabilityFrames
	e.log.Debug("life lost", "lives", s.Lives, "tick", s.Tick)
	e.listener.OnLifeLost(s.Lives)

	if s.Lives <= 0 {
		e.phase = GameOver
		e.log.Debug("game over", "score", s.Score, "tick", s.Tick)
		e.listener.OnGameOver(s.Score)
		return true
	}
	return false
}
