package session

import (
	"time"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/games/decorator"
	"github.com/decker502/patternquest/pkg/games/factory"
	"github.com/decker502/patternquest/pkg/games/observer"
	"github.com/decker502/patternquest/pkg/games/singleton"
	"github.com/decker502/patternquest/pkg/games/strategy"
	"github.com/decker502/patternquest/pkg/objective"
	"github.com/decker502/patternquest/pkg/patterns"
	"github.com/decker502/patternquest/pkg/types"
)

// MiniGame 所有小游戏的公共能力：向目标评估提供状态
type MiniGame interface {
	objective.Source
}

// buildParams 构造小游戏所需的参数
type buildParams struct {
	level          *config.LevelConfig
	catalog        *config.Catalog
	rng            strategy.Rand
	now            func() time.Time
	animationSpeed float64
}

// newGameFactory 按模式注册五个小游戏的构造函数
func newGameFactory() *patterns.Factory[buildParams, MiniGame] {
	f := patterns.NewFactory[buildParams, MiniGame]()

	f.Register(types.PatternObserver.String(), func(p buildParams) (MiniGame, error) {
		return observer.New(p.level, p.catalog,
			observer.WithClock(p.now),
			observer.WithAnimationSpeed(p.animationSpeed))
	})
	f.Register(types.PatternSingleton.String(), func(p buildParams) (MiniGame, error) {
		return singleton.New(p.level), nil
	})
	f.Register(types.PatternFactory.String(), func(p buildParams) (MiniGame, error) {
		return factory.New(p.level, p.catalog), nil
	})
	f.Register(types.PatternStrategy.String(), func(p buildParams) (MiniGame, error) {
		return strategy.New(p.level, p.catalog, p.rng)
	})
	f.Register(types.PatternDecorator.String(), func(p buildParams) (MiniGame, error) {
		return decorator.New(p.level, p.catalog)
	})
	return f
}

// gameSnapshot 返回小游戏的只读视图
func gameSnapshot(g MiniGame) any {
	switch g := g.(type) {
	case *observer.Game:
		return g.Snapshot()
	case *singleton.Game:
		return g.Snapshot()
	case *factory.Game:
		return g.Snapshot()
	case *strategy.Game:
		return g.Snapshot()
	case *decorator.Game:
		return g.Snapshot()
	}
	return nil
}
