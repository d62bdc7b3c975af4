package app

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/game"
	"github.com/decker502/patternquest/pkg/games/decorator"
	"github.com/decker502/patternquest/pkg/session"
	"github.com/decker502/patternquest/pkg/types"
)

func loadContent(t *testing.T) *config.Content {
	t.Helper()
	content, err := config.LoadContentDir("../../data")
	if err != nil {
		t.Fatalf("LoadContentDir() error: %v", err)
	}
	return content
}

func startSession(t *testing.T, content *config.Content, p types.PatternType) *session.Session {
	t.Helper()
	ctrl := game.NewController(content)
	ctrl.UnlockPattern(p)
	s := session.New(content, ctrl, session.WithSeed(1))
	if ok, err := s.Start(p, 1); !ok || err != nil {
		t.Fatalf("Start(%s, 1) = %v, %v", p, ok, err)
	}
	return s
}

func press(t *testing.T, s *session.Session, bindings []Binding, key ebiten.Key) string {
	t.Helper()
	for _, b := range bindings {
		if b.Key == key {
			msg, err := b.Run(s)
			if err != nil {
				t.Fatalf("%s: %v", b.Label, err)
			}
			return msg
		}
	}
	t.Fatalf("no binding for %v", key)
	return ""
}

func TestBindingsForEveryPattern(t *testing.T) {
	content := loadContent(t)
	for _, p := range types.AllPatterns {
		level, ok := content.Level(p, 1)
		if !ok {
			t.Fatalf("%s has no level 1", p)
		}
		bs := BindingsFor(p, level, content.Catalog)
		if len(bs) == 0 {
			t.Errorf("%s: no bindings", p)
		}
		seen := make(map[ebiten.Key]string)
		for _, b := range bs {
			if prev, dup := seen[b.Key]; dup {
				t.Errorf("%s: key %v bound to %q and %q", p, b.Key, prev, b.Label)
			}
			seen[b.Key] = b.Label
		}
	}
}

func TestObserverBindingsCompleteFirstLevel(t *testing.T) {
	content := loadContent(t)
	s := startSession(t, content, types.PatternObserver)
	level, _ := content.Level(types.PatternObserver, 1)
	bs := BindingsFor(types.PatternObserver, level, content.Catalog)

	if msg := press(t, s, bs, ebiten.Key1); !strings.Contains(msg, "dragon1 subscribed to tower1: true") {
		t.Errorf("toggle message = %q", msg)
	}
	press(t, s, bs, ebiten.Key2)
	if msg := press(t, s, bs, ebiten.KeyQ); !strings.Contains(msg, "fire reached 2 creatures") {
		t.Errorf("signal message = %q", msg)
	}

	if st := s.Controller().Status(); st != types.StatusCompleted {
		t.Errorf("Status = %v, want completed", st)
	}
}

func TestDecoratorBindingsTargetSelectedEquipment(t *testing.T) {
	content := loadContent(t)
	s := startSession(t, content, types.PatternDecorator)
	level, _ := content.Level(types.PatternDecorator, 1)
	bs := BindingsFor(types.PatternDecorator, level, content.Catalog)

	press(t, s, bs, ebiten.Key2) // shield
	press(t, s, bs, ebiten.KeyW) // ice

	snap, ok := s.Snapshot().Game.(decorator.Snapshot)
	if !ok {
		t.Fatalf("Game = %T, want decorator.Snapshot", s.Snapshot().Game)
	}
	for _, e := range snap.Equipment {
		want := 0
		if e.ID == "shield" {
			want = 1
		}
		if e.Depth != want {
			t.Errorf("%s depth = %d, want %d", e.ID, e.Depth, want)
		}
	}
}

func TestSingletonDrawNeedsConnection(t *testing.T) {
	content := loadContent(t)
	s := startSession(t, content, types.PatternSingleton)
	level, _ := content.Level(types.PatternSingleton, 1)
	bs := BindingsFor(types.PatternSingleton, level, content.Catalog)

	if msg := press(t, s, bs, ebiten.KeyD); msg != "connect a wizard first" {
		t.Errorf("draw before connect = %q", msg)
	}
	press(t, s, bs, ebiten.Key1)
	if msg := press(t, s, bs, ebiten.KeyD); !strings.Contains(msg, "wizard1 drew 10") {
		t.Errorf("draw after connect = %q", msg)
	}
}

func TestMenuStartsUnlockedPatternsOnly(t *testing.T) {
	content := loadContent(t)
	ctrl := game.NewController(content)
	s := session.New(content, ctrl, session.WithSeed(1))

	sm := NewSceneManager()
	var loaded types.PatternType
	sm.SetSceneFactory(func(p types.PatternType) Scene {
		loaded = p
		return &mockScene{}
	})
	menu := NewMenuScene(s, sm, game.NewSettingsManager(nil))
	sm.SetMenu(menu)
	sm.SwitchTo(menu)

	menu.start(types.PatternDecorator)
	if sm.GetCurrentScene() != menu || menu.message == "" {
		t.Errorf("locked pattern: current=%v message=%q", sm.GetCurrentScene(), menu.message)
	}
	if !strings.Contains(menu.text(), "decorator  locked") {
		t.Errorf("menu text = %q", menu.text())
	}

	menu.start(types.PatternObserver)
	if loaded != types.PatternObserver || sm.GetCurrentScene() == Scene(menu) {
		t.Errorf("observer not loaded: loaded=%v", loaded)
	}
	if st := ctrl.Status(); st != types.StatusPlaying {
		t.Errorf("Status = %v, want playing", st)
	}
}

func TestMenuSettingsKeys(t *testing.T) {
	content := loadContent(t)
	s := session.New(content, game.NewController(content), session.WithSeed(1))
	settings := game.NewSettingsManager(nil)
	menu := NewMenuScene(s, NewSceneManager(), settings)

	menu.cycleDifficulty()
	menu.toggleSound()
	menu.scaleAnimation(2)
	menu.scaleAnimation(2)
	menu.scaleAnimation(2)

	got := settings.GetSettings()
	want := game.GameSettings{Difficulty: types.DifficultyMedium, SoundEnabled: false, AnimationSpeed: game.MaxAnimationSpeed}
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
	if !strings.Contains(menu.text(), "difficulty=medium  sound=false  speed=x4") {
		t.Errorf("menu text = %q", menu.text())
	}

	for range 5 {
		menu.scaleAnimation(0.5)
	}
	if speed := settings.GetSettings().AnimationSpeed; speed != game.MinAnimationSpeed {
		t.Errorf("AnimationSpeed = %v, want %v", speed, game.MinAnimationSpeed)
	}
}

func TestMenuShowsUnlockNoticeOnce(t *testing.T) {
	content := loadContent(t)
	ctrl := game.NewController(content)
	ctrl.UnlockPattern(types.PatternSingleton)
	s := session.New(content, ctrl, session.WithSeed(1))
	menu := NewMenuScene(s, NewSceneManager(), game.NewSettingsManager(nil))

	menu.showUnlockNotice()
	if menu.message != "new pattern unlocked: singleton" {
		t.Errorf("message = %q", menu.message)
	}
	menu.message = ""
	menu.showUnlockNotice()
	if menu.message != "" {
		t.Errorf("notice should be shown once, got %q", menu.message)
	}
}
