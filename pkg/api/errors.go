package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/decker502/patternquest/pkg/game"
	"github.com/decker502/patternquest/pkg/patterns"
	"github.com/decker502/patternquest/pkg/session"
)

// 错误类型
const (
	ErrTypeBadRequest = "bad_request"
	ErrTypeNotFound   = "not_found"
	ErrTypeConflict   = "conflict"
	ErrTypeForbidden  = "forbidden"
	ErrTypeRejected   = "rejected"
)

// ErrorResponse 错误响应
type ErrorResponse struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// errBadRequest 请求体或参数无法解析
var errBadRequest = errors.New("bad request")

// classify 把错误映射为 HTTP 状态码与错误类型
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, game.ErrInvalidProfileName),
		errors.Is(err, game.ErrInvalidDifficulty):
		return http.StatusBadRequest, ErrTypeBadRequest
	case errors.Is(err, game.ErrProfileNotFound), errors.Is(err, session.ErrUnknownLevel):
		return http.StatusNotFound, ErrTypeNotFound
	case errors.Is(err, session.ErrPatternLocked):
		return http.StatusForbidden, ErrTypeForbidden
	case errors.Is(err, game.ErrProfileExists),
		errors.Is(err, session.ErrWrongPattern),
		errors.Is(err, session.ErrNotPlaying),
		errors.Is(err, patterns.ErrConstructionInProgress):
		return http.StatusConflict, ErrTypeConflict
	}
	// 其余为小游戏的领域错误：请求合法但被规则拒绝
	return http.StatusUnprocessableEntity, ErrTypeRejected
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, errType := classify(err)
	s.writeJSON(w, status, ErrorResponse{
		Type:      errType,
		Message:   err.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	})
}
