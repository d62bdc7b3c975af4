package game

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"
	"time"

	"github.com/decker502/patternquest/pkg/logger"
)

var (
	ErrInvalidProfileName = errors.New("invalid profile name")
	ErrProfileExists      = errors.New("profile already exists")
	ErrProfileNotFound    = errors.New("profile not found")
)

// MaxProfileNameLength 用户名最大长度
const MaxProfileNameLength = 20

var profileNamePattern = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)

// ProfileMetadata 用户元数据
type ProfileMetadata struct {
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

type profile struct {
	meta       ProfileMetadata
	seq        int
	controller *Controller
}

// ProfileManager 多用户进度管理器
//
// 每个用户拥有独立的 Controller（即一份 GameProgressState），只保存在内存中。
type ProfileManager struct {
	mu       sync.Mutex
	levels   LevelCatalog
	profiles map[string]*profile
	current  string
	seq      int
	now      func() time.Time
}

// NewProfileManager 创建用户管理器
func NewProfileManager(levels LevelCatalog) *ProfileManager {
	return &ProfileManager{
		levels:   levels,
		profiles: make(map[string]*profile),
		now:      time.Now,
	}
}

// ValidateProfileName 验证用户名合法性
//
// 规则：
//   - 不能为空
//   - 只能包含字母、数字、空格、下划线和连字符
//   - 长度限制 1-20 字符
func ValidateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidProfileName)
	}
	if len(name) > MaxProfileNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidProfileName, MaxProfileNameLength)
	}
	if !profileNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidProfileName, name)
	}
	return nil
}

// Create 创建新用户并切换为当前用户
func (pm *ProfileManager) Create(name string) (*Controller, error) {
	if err := ValidateProfileName(name); err != nil {
		return nil, err
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	if _, ok := pm.profiles[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrProfileExists, name)
	}

	now := pm.now()
	pm.seq++
	p := &profile{
		meta:       ProfileMetadata{Name: name, CreatedAt: now, LastLoginAt: now},
		seq:        pm.seq,
		controller: NewController(pm.levels),
	}
	pm.profiles[name] = p
	pm.current = name

	logger.For("ProfileManager").WithField("profile", name).Info("profile created")
	return p.controller, nil
}

// Ensure 返回用户的控制器，不存在时创建
func (pm *ProfileManager) Ensure(name string) (*Controller, error) {
	if c, err := pm.Controller(name); err == nil {
		return c, nil
	}
	c, err := pm.Create(name)
	if errors.Is(err, ErrProfileExists) {
		return pm.Controller(name)
	}
	return c, err
}

// Controller 返回指定用户的控制器
func (pm *ProfileManager) Controller(name string) (*Controller, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	p, ok := pm.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return p.controller, nil
}

// Switch 切换当前用户并更新最后登录时间
func (pm *ProfileManager) Switch(name string) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	p, ok := pm.profiles[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	p.meta.LastLoginAt = pm.now()
	pm.current = name
	return nil
}

// Rename 重命名用户，进度保留
func (pm *ProfileManager) Rename(oldName, newName string) error {
	if err := ValidateProfileName(newName); err != nil {
		return err
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	p, ok := pm.profiles[oldName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, oldName)
	}
	if _, ok := pm.profiles[newName]; ok {
		return fmt.Errorf("%w: %q", ErrProfileExists, newName)
	}

	delete(pm.profiles, oldName)
	p.meta.Name = newName
	pm.profiles[newName] = p
	if pm.current == oldName {
		pm.current = newName
	}
	return nil
}

// Delete 删除用户，删除当前用户时清空当前用户
func (pm *ProfileManager) Delete(name string) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if _, ok := pm.profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	delete(pm.profiles, name)
	if pm.current == name {
		pm.current = ""
	}
	return nil
}

// Current 当前用户名，空字符串表示未登录
func (pm *ProfileManager) Current() string {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.current
}

// List 按创建顺序返回所有用户
func (pm *ProfileManager) List() []ProfileMetadata {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	profiles := make([]*profile, 0, len(pm.profiles))
	for _, p := range pm.profiles {
		profiles = append(profiles, p)
	}
	slices.SortFunc(profiles, func(a, b *profile) int { return a.seq - b.seq })

	list := make([]ProfileMetadata, len(profiles))
	for i, p := range profiles {
		list[i] = p.meta
	}
	return list
}
