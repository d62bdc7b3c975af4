package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/decker502/patternquest/pkg/game"
	"github.com/decker502/patternquest/pkg/games/observer"
	"github.com/decker502/patternquest/pkg/patterns"
	"github.com/decker502/patternquest/pkg/session"
	"github.com/decker502/patternquest/pkg/types"
)

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Patterns  int    `json:"patterns"`
	Profiles  int    `json:"profiles"`
	GoVersion string `json:"go_version"`
}

// ActionResponse 领域操作响应：操作结果加上操作后的会话状态
type ActionResponse struct {
	Result  any              `json:"result,omitempty"`
	Changed *bool            `json:"changed,omitempty"`
	Session session.Snapshot `json:"session"`
}

// PatternInfo 模式列表中的一项
type PatternInfo struct {
	Pattern  types.PatternType     `json:"pattern"`
	Category types.PatternCategory `json:"category"`
	Levels   int                   `json:"levels"`
}

// LevelSummary 关卡列表中的一项
type LevelSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Reward      int    `json:"reward"`
	Objectives  int    `json:"objectives"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Patterns:  len(s.content.Levels),
		Profiles:  len(s.profiles.List()),
		GoVersion: runtime.Version(),
	})
}

func (s *Server) handleListPatterns(w http.ResponseWriter, r *http.Request) {
	list := make([]PatternInfo, 0, len(types.AllPatterns))
	for _, p := range types.AllPatterns {
		info := PatternInfo{Pattern: p, Category: p.Category()}
		if set, ok := s.content.LevelSet(p); ok {
			info.Levels = len(set.Levels)
		}
		list = append(list, info)
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	p := types.PatternType(chi.URLParam(r, "pattern"))
	set, ok := s.content.LevelSet(p)
	if !ok {
		s.writeError(w, r, fmt.Errorf("%w: %s", session.ErrUnknownLevel, p))
		return
	}
	list := make([]LevelSummary, 0, len(set.Levels))
	for _, l := range set.Levels {
		list = append(list, LevelSummary{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
			Reward:      l.Reward,
			Objectives:  len(l.Objectives),
		})
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.profiles.List())
}

type createProfileRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if !s.decode(w, r, &req) {
		return
	}
	if _, err := s.profiles.Create(req.Name); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSnapshot(w, r, req.Name, http.StatusCreated)
}

type renameProfileRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleRenameProfile(w http.ResponseWriter, r *http.Request) {
	var req renameProfileRequest
	if !s.decode(w, r, &req) {
		return
	}
	name := chi.URLParam(r, "profile")
	if err := s.profiles.Rename(name, req.Name); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.moveSession(name, req.Name)
	s.writeSnapshot(w, r, req.Name, http.StatusOK)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "profile")
	if err := s.profiles.Delete(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.dropSession(name)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.writeSnapshot(w, r, chi.URLParam(r, "profile"), http.StatusOK)
}

func (s *Server) writeSnapshot(w http.ResponseWriter, r *http.Request, profile string, status int) {
	ss, err := s.sessionFor(profile)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, status, ss.Snapshot())
}

func (s *Server) handlePatternStatus(w http.ResponseWriter, r *http.Request) {
	ss, ok := s.session(w, r)
	if !ok {
		return
	}
	p := types.PatternType(chi.URLParam(r, "pattern"))
	s.writeJSON(w, http.StatusOK, ss.PatternStatus(p))
}

type startRequest struct {
	Pattern types.PatternType `json:"pattern"`
	Level   int               `json:"level"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	ss, ok := s.sessionAndBody(w, r, &req)
	if !ok {
		return
	}
	if req.Level == 0 {
		req.Level = 1
	}
	changed, err := ss.Start(req.Pattern, req.Level)
	s.respond(w, r, ss, nil, &changed, err)
}

// handleTransition 进度状态迁移，非法迁移返回 changed=false
func (s *Server) handleTransition(fn func(*session.Session) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ss, ok := s.session(w, r)
		if !ok {
			return
		}
		changed := fn(ss)
		s.respond(w, r, ss, nil, &changed, nil)
	}
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	ss, ok := s.session(w, r)
	if !ok {
		return
	}
	ss.ResetProgress()
	s.respond(w, r, ss, nil, nil, nil)
}

// --- 设置 ---

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.opts.Settings.GetSettings())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req game.SettingsUpdate
	if !s.decode(w, r, &req) {
		return
	}
	settings, err := s.opts.Settings.Update(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.opts.Settings.Save(); err != nil {
		s.log.WithError(err).Warn("failed to persist settings")
	}
	s.applySettings(settings)
	s.writeJSON(w, http.StatusOK, settings)
}

// --- 观察者 ---

type subscriptionRequest struct {
	Creature string `json:"creature"`
	Tower    string `json:"tower"`
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if ss, ok := s.sessionAndBody(w, r, &req); ok {
		changed, err := ss.Subscribe(req.Creature, req.Tower)
		s.respond(w, r, ss, nil, &changed, err)
	}
}

func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if ss, ok := s.sessionAndBody(w, r, &req); ok {
		changed, err := ss.Unsubscribe(req.Creature, req.Tower)
		s.respond(w, r, ss, nil, &changed, err)
	}
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if ss, ok := s.sessionAndBody(w, r, &req); ok {
		subscribed, err := ss.ToggleSubscription(req.Creature, req.Tower)
		s.respond(w, r, ss, map[string]bool{"subscribed": subscribed}, nil, err)
	}
}

type signalRequest struct {
	Tower   string `json:"tower"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Power   int    `json:"power"`
}

func (s *Server) handleSendSignal(w http.ResponseWriter, r *http.Request) {
	var req signalRequest
	if ss, ok := s.sessionAndBody(w, r, &req); ok {
		delivered, err := ss.SendSignal(req.Tower, observer.Signal{
			Type:    req.Type,
			Message: req.Message,
			Power:   req.Power,
		})
		s.respond(w, r, ss, map[string]int{"delivered": delivered}, nil, err)
	}
}

type towerActiveRequest struct {
	Active bool `json:"active"`
}

func (s *Server) handleTowerActive(w http.ResponseWriter, r *http.Request) {
	var req towerActiveRequest
	if ss, ok := s.sessionAndBody(w, r, &req); ok {
		err := ss.SetTowerActive(chi.URLParam(r, "tower"), req.Active)
		s.respond(w, r, ss, nil, nil, err)
	}
}

// --- 单例 ---

type wizardRequest struct {
	Wizard string `json:"wizard"`
	Amount int    `json:"amount"`
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req wizardRequest
	if ss, ok := s.sessionAndBody(w, r, &req); ok {
		res, err := ss.Connect(req.Wizard)
		s.respond(w, r, ss, res, nil, err)
	}
}

func (s *Server) handleDrawEnergy(w http.ResponseWriter, r *http.Request) {
	var req wizardRequest
	if ss, ok := s.sessionAndBody(w, r, &req); ok {
		drawn, err := ss.DrawEnergy(req.Wizard, req.Amount)
		s.respond(w, r, ss, map[string]int{"drawn": drawn}, nil, err)
	}
}

func (s *Server) handleRecharge(w http.ResponseWriter, r *http.Request) {
	var req wizardRequest
	if ss, ok := s.sessionAndBody(w, r, &req); ok {
		energy, err := ss.Recharge(req.Amount)
		s.respond(w, r, ss, map[string]int{"energy": energy}, nil, err)
	}
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if ss, ok := s.session(w, r); ok {
		verified, err := ss.Verify()
		s.respond(w, r, ss, map[string]bool{"verified": verified}, nil, err)
	}
}

func (s *Server) handleResetCrystal(w http.ResponseWriter, r *http.Request) {
	if ss, ok := s.session(w, r); ok {
		s.respond(w, r, ss, nil, nil, ss.ResetCrystal())
	}
}

// --- 工厂 ---

type weaponRequest struct {
	Type    string `json:"type"`
	Quality string `json:"quality"`
}

func (s *Server) handleCreateWeapon(w http.ResponseWriter, r *http.Request) {
	var req weaponRequest
	if ss, ok := s.sessionAndBody(w, r, &req); ok {
		weapon, err := ss.CreateWeapon(req.Type, req.Quality)
		s.respond(w, r, ss, weapon, nil, err)
	}
}

type fulfillRequest struct {
	Weapon patterns.InstanceID `json:"weapon,omitempty"` // 为空时使用库存中任意匹配的武器
}

func (s *Server) handleFulfillOrder(w http.ResponseWriter, r *http.Request) {
	var req fulfillRequest
	ss, ok := s.sessionAndBody(w, r, &req)
	if !ok {
		return
	}
	order := chi.URLParam(r, "order")

	var (
		reward int
		err    error
	)
	if req.Weapon == "" {
		reward, err = ss.FulfillFromInventory(order)
	} else {
		reward, err = ss.FulfillOrder(order, req.Weapon)
	}
	s.respond(w, r, ss, map[string]int{"reward": reward}, nil, err)
}

// --- 策略 ---

type strategyRequest struct {
	Strategy string `json:"strategy"`
}

func (s *Server) handleSetStrategy(w http.ResponseWriter, r *http.Request) {
	var req strategyRequest
	if ss, ok := s.sessionAndBody(w, r, &req); ok {
		s.respond(w, r, ss, nil, nil, ss.SetStrategy(req.Strategy))
	}
}

func (s *Server) handleExecuteRound(w http.ResponseWriter, r *http.Request) {
	if ss, ok := s.session(w, r); ok {
		round, err := ss.ExecuteRound()
		s.respond(w, r, ss, round, nil, err)
	}
}

// --- 装饰器 ---

type enchantRequest struct {
	Equipment   string `json:"equipment"`
	Enchantment string `json:"enchantment"`
}

func (s *Server) handleEnchant(w http.ResponseWriter, r *http.Request) {
	var req enchantRequest
	if ss, ok := s.sessionAndBody(w, r, &req); ok {
		view, err := ss.Enchant(req.Equipment, req.Enchantment)
		s.respond(w, r, ss, view, nil, err)
	}
}

// --- 辅助函数 ---

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	ss, err := s.sessionFor(chi.URLParam(r, "profile"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return ss, true
}

func (s *Server) sessionAndBody(w http.ResponseWriter, r *http.Request, body any) (*session.Session, bool) {
	ss, ok := s.session(w, r)
	if !ok {
		return nil, false
	}
	if !s.decode(w, r, body) {
		return nil, false
	}
	return ss, true
}

// decode 解析 JSON 请求体，空请求体视为空对象
func (s *Server) decode(w http.ResponseWriter, r *http.Request, body any) bool {
	if r.Body == nil {
		return true
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(body); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, ss *session.Session, result any, changed *bool, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ActionResponse{
		Result:  result,
		Changed: changed,
		Session: ss.Snapshot(),
	})
}
