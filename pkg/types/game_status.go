package types

// GameStatus 关卡进行状态
type GameStatus string

const (
	StatusIdle      GameStatus = "idle"
	StatusPlaying   GameStatus = "playing"
	StatusPaused    GameStatus = "paused"
	StatusCompleted GameStatus = "completed"
	StatusFailed    GameStatus = "failed"
)

// Difficulty 游戏难度
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid 检查难度取值是否合法
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Next 按 easy → medium → hard → easy 循环
func (d Difficulty) Next() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyHard
	}
	return DifficultyEasy
}
