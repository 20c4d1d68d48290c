package object

// Spawn interval tuning, in frames.
const (
	meteorIntervalBase  = 36
	meteorIntervalStep  = 2
	meteorIntervalFloor = 16

	enemyIntervalBase  = 160
	enemyIntervalStep  = 10
	enemyIntervalFloor = 60
)

// MeteorInterval is the number of frames between meteor spawns at level.
func MeteorInterval(level int) int {
	return max(meteorIntervalFloor, meteorIntervalBase-level*meteorIntervalStep)
}

// EnemyInterval is the number of frames between enemy spawns at level.
func EnemyInterval(level int) int {
	return max(enemyIntervalFloor, enemyIntervalBase-level*enemyIntervalStep)
}

// HazardSpawner drops meteors and enemies into the playfield on a fixed
// frame cadence that tightens with the level.
type HazardSpawner struct{}

// Update spawns whatever is due on tick. A meteor is created before an enemy
// when both are due, so random draws happen in a fixed order.
func (HazardSpawner) Update(tick int, ctx UpdateContext) {
	if tick%MeteorInterval(ctx.Level) == 0 {
		ctx.Spawner.SpawnMeteor(NewMeteor(ctx.Level, ctx.Screen, ctx.Rand))
	}
	if tick%EnemyInterval(ctx.Level) == 0 {
		ctx.Spawner.SpawnEnemy(NewEnemy(ctx.Level, ctx.Screen, ctx.Rand))
	}
}
