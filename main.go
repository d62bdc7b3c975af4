package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/patternquest/pkg/app"
	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/embedded"
	"github.com/decker502/patternquest/pkg/game"
	"github.com/decker502/patternquest/pkg/logger"
	"github.com/decker502/patternquest/pkg/types"
)

var (
	profileFlag = flag.String("profile", "", "存档用户名（默认读取 PQ_PROFILE）")
	patternFlag = flag.String("pattern", "", "跳过菜单直接开始的模式，如 observer")
	seedFlag    = flag.Uint64("seed", 0, "随机种子，0 表示读取 PQ_SEED")
	verboseFlag = flag.Bool("verbose", false, "输出 debug 日志")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadAppConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("load config")
	}
	if *verboseFlag {
		cfg.LogLevel = "debug"
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := logger.For("main")

	embedded.Init(dataFS)
	content, err := cfg.LoadContent()
	if err != nil {
		log.WithError(err).Fatal("load content")
	}

	// 设置存储失败时仍可运行，只是不会持久化
	var settings *game.SettingsManager
	store, err := gdata.Open(gdata.Config{AppName: cfg.AppName})
	if err != nil {
		log.WithError(err).Warn("settings storage unavailable")
		settings = game.NewSettingsManager(nil)
	} else {
		settings = game.NewSettingsManager(store)
	}

	appCfg := app.Config{
		Profile: cfg.Profile,
		Seed:    cfg.Seed,
		Pattern: types.PatternType(*patternFlag),
	}
	if *profileFlag != "" {
		appCfg.Profile = *profileFlag
	}
	if *seedFlag != 0 {
		appCfg.Seed = *seedFlag
	}
	if appCfg.Pattern != types.PatternNone && !appCfg.Pattern.Valid() {
		log.WithField("pattern", *patternFlag).Error("unknown pattern")
		os.Exit(2)
	}

	a, err := app.NewApp(appCfg, content, settings)
	if err != nil {
		log.WithError(err).Fatal("create app")
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("设计模式大冒险")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		log.WithError(err).Fatal("game loop")
	}
	if err := settings.Save(); err != nil {
		log.WithError(err).Warn("save settings")
	}
}
