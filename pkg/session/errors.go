package session

import "errors"

var (
	// ErrWrongPattern 当前加载的小游戏不支持该操作
	ErrWrongPattern = errors.New("action does not belong to the loaded mini-game")
	// ErrNotPlaying 关卡不在进行中
	ErrNotPlaying = errors.New("level is not playing")
	// ErrUnknownLevel 关卡不存在
	ErrUnknownLevel = errors.New("unknown level")
	// ErrPatternLocked 模式尚未解锁
	ErrPatternLocked = errors.New("pattern is locked")
)
