// Package health отдаёт состояние сервиса и его хранилищ.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Status статус компонента.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

const checkTimeout = 3 * time.Second

// Check результат одной проверки.
type Check struct {
	Status     Status `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Response полный ответ health-эндпоинта.
type Response struct {
	Status        Status           `json:"status"`
	Version       string           `json:"version,omitempty"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	Checks        map[string]Check `json:"checks,omitempty"`
}

// CheckFunc проверяет доступность компонента, обычно Ping хранилища.
type CheckFunc func(ctx context.Context) error

// Handler собирает проверки компонентов и обслуживает healthz/readyz.
type Handler struct {
	mu        sync.RWMutex
	checks    map[string]CheckFunc
	version   string
	startTime time.Time
}

// NewHandler создаёт handler без зарегистрированных проверок.
func NewHandler(version string) *Handler {
	return &Handler{
		checks:    make(map[string]CheckFunc),
		version:   version,
		startTime: time.Now(),
	}
}

// Register добавляет проверку под именем компонента.
func (h *Handler) Register(name string, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = fn
}

func (h *Handler) run(ctx context.Context) (Status, map[string]Check) {
	h.mu.RLock()
	checks := make(map[string]CheckFunc, len(h.checks))
	for name, fn := range h.checks {
		checks[name] = fn
	}
	h.mu.RUnlock()

	overall := StatusUp
	results := make(map[string]Check, len(checks))
	for name, fn := range checks {
		start := time.Now()
		err := fn(ctx)
		check := Check{Status: StatusUp, DurationMs: time.Since(start).Milliseconds()}
		if err != nil {
			check.Status = StatusDown
			check.Error = err.Error()
			overall = StatusDown
		}
		results[name] = check
	}
	return overall, results
}

// ServeHTTP отвечает полным отчётом, 503 если хоть один компонент недоступен.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	overall, checks := h.run(ctx)
	response := Response{
		Status:        overall,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Checks:        checks,
	}

	statusCode := http.StatusOK
	if overall == StatusDown {
		statusCode = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// Liveness всегда отвечает 200, процесс жив.
func Liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
