package loop

import (
	"github.com/tomz197/meteorfall/internal/loop/config"
	"github.com/tomz197/meteorfall/internal/object"
)

// Session holds everything that belongs to one play-through: the ship, the
// four entity stores and the counters. Restart replaces it wholesale.
type Session struct {
	Player       *object.Player
	Bullets      []*object.Bullet
	EnemyBullets []*object.EnemyBullet
	Meteors      []*object.Meteor
	Enemies      []*object.Enemy

	Score int
	Lives int
	Tick  int
}

// NewSession creates a session with the ship at its start position.
func NewSession(screen object.Screen) *Session {
	return &Session{
		Player: object.NewPlayer(screen),
		Lives:  config.InitialLives,
	}
}

// SpawnBullet implements object.Spawner.
func (s *Session) SpawnBullet(b *object.Bullet) {
	s.Bullets = append(s.Bullets, b)
}

// SpawnEnemyBullet implements object.Spawner.
func (s *Session) SpawnEnemyBullet(b *object.EnemyBullet) {
	s.EnemyBullets = append(s.EnemyBullets, b)
}

// SpawnMeteor implements object.Spawner.
func (s *Session) SpawnMeteor(m *object.Meteor) {
	s.Meteors = append(s.Meteors, m)
}

// SpawnEnemy implements object.Spawner.
func (s *Session) SpawnEnemy(e *object.Enemy) {
	s.Enemies = append(s.Enemies, e)
}

var _ object.Spawner = (*Session)(nil)
