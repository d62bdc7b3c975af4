// Package api 通过 HTTP/JSON 暴露会话操作与只读状态
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/game"
	"github.com/decker502/patternquest/pkg/logger"
	"github.com/decker502/patternquest/pkg/metrics"
	"github.com/decker502/patternquest/pkg/session"
)

// Options 服务器选项
type Options struct {
	Seed     uint64                // 战斗随机种子，0 表示按时间播种
	Settings *game.SettingsManager // 可为 nil，此时使用不落盘的默认设置
	Recorder *metrics.Recorder     // 可为 nil，此时不导出 /metrics
}

// Server 处理 HTTP 请求，每个用户对应一个会话
type Server struct {
	content  *config.Content
	profiles *game.ProfileManager
	opts     Options

	mu       sync.Mutex
	sessions map[string]*session.Session

	log       *logrus.Entry
	startTime time.Time
}

// NewServer 创建服务器
func NewServer(content *config.Content, profiles *game.ProfileManager, opts Options) *Server {
	if opts.Settings == nil {
		opts.Settings = game.NewSettingsManager(nil)
	}
	return &Server{
		content:   content,
		profiles:  profiles,
		opts:      opts,
		sessions:  make(map[string]*session.Session),
		log:       logger.For("API"),
		startTime: time.Now(),
	}
}

// Routes 注册路由和中间件
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)
	if s.opts.Recorder != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Recorder.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/patterns", s.handleListPatterns)
		r.Get("/patterns/{pattern}/levels", s.handleListLevels)

		r.Get("/settings", s.handleGetSettings)
		r.Patch("/settings", s.handleUpdateSettings)

		r.Get("/profiles", s.handleListProfiles)
		r.Post("/profiles", s.handleCreateProfile)

		r.Route("/profiles/{profile}", func(r chi.Router) {
			r.Get("/", s.handleSnapshot)
			r.Patch("/", s.handleRenameProfile)
			r.Delete("/", s.handleDeleteProfile)
			r.Get("/patterns/{pattern}", s.handlePatternStatus)

			r.Post("/start", s.handleStart)
			r.Post("/pause", s.handleTransition(func(ss *session.Session) bool { return ss.Pause() }))
			r.Post("/resume", s.handleTransition(func(ss *session.Session) bool { return ss.Resume() }))
			r.Post("/fail", s.handleTransition(func(ss *session.Session) bool { return ss.Fail() }))
			r.Post("/reset", s.handleTransition(func(ss *session.Session) bool { return ss.Reset() }))
			r.Post("/check", s.handleTransition(func(ss *session.Session) bool { return ss.CheckCompletion() }))
			r.Post("/reset-progress", s.handleResetProgress)

			r.Route("/observer", func(r chi.Router) {
				r.Post("/subscribe", s.handleSubscribe)
				r.Post("/unsubscribe", s.handleUnsubscribe)
				r.Post("/toggle", s.handleToggle)
				r.Post("/signal", s.handleSendSignal)
				r.Post("/towers/{tower}/active", s.handleTowerActive)
			})
			r.Route("/singleton", func(r chi.Router) {
				r.Post("/connect", s.handleConnect)
				r.Post("/draw", s.handleDrawEnergy)
				r.Post("/recharge", s.handleRecharge)
				r.Post("/verify", s.handleVerify)
				r.Post("/reset", s.handleResetCrystal)
			})
			r.Route("/factory", func(r chi.Router) {
				r.Post("/weapons", s.handleCreateWeapon)
				r.Post("/orders/{order}/fulfill", s.handleFulfillOrder)
			})
			r.Route("/strategy", func(r chi.Router) {
				r.Post("/strategy", s.handleSetStrategy)
				r.Post("/round", s.handleExecuteRound)
			})
			r.Route("/decorator", func(r chi.Router) {
				r.Post("/enchant", s.handleEnchant)
			})
		})
	})

	return r
}

// sessionFor 返回用户的会话，首次访问时创建
func (s *Server) sessionFor(profile string) (*session.Session, error) {
	ctrl, err := s.profiles.Controller(profile)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ss, ok := s.sessions[profile]; ok && ss.Controller() == ctrl {
		return ss, nil
	}

	opts := []session.Option{
		session.WithSeed(s.opts.Seed),
		session.WithSettings(s.opts.Settings.GetSettings()),
	}
	if s.opts.Recorder != nil {
		opts = append(opts, session.WithRecorder(s.opts.Recorder))
		ctrl.Events().Attach(s.opts.Recorder)
	}
	ss := session.New(s.content, ctrl, opts...)
	s.sessions[profile] = ss
	return ss, nil
}

func (s *Server) dropSession(profile string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, profile)
}

// moveSession 用户改名后会话跟随新名字
func (s *Server) moveSession(oldName, newName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ss, ok := s.sessions[oldName]; ok {
		delete(s.sessions, oldName)
		s.sessions[newName] = ss
	}
}

// applySettings 把设置推送给所有已有会话，下一次开始关卡时生效
func (s *Server) applySettings(settings game.GameSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ss := range s.sessions {
		ss.ApplySettings(settings)
	}
}

// loggingMiddleware 记录每个请求的方法、路径、状态码和耗时
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request completed")
	})
}

// writeJSON 写出 JSON 响应
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Warn("failed to encode response")
	}
}
