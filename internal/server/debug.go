package server

import (
	"encoding/json"
	"net/http"

	"synapse-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/stack", h.handleStack)
	mux.HandleFunc("/debug/turns", h.handleTurns)
	mux.HandleFunc("/debug/entities", h.handleEntities)
}

// /debug/stack - кадры стека заклинаний сверху вниз
func (h *DebugHandler) handleStack(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.DebugStack())
}

// /debug/turns - счетчик ходов и валидность текущего действия
func (h *DebugHandler) handleTurns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.DebugTurns())
}

// /debug/entities - дамп всех существ (включая скрытые поля)
func (h *DebugHandler) handleEntities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.DebugCreatures())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустой результат отдаем как [], а не null
	if data == nil {
		if _, err := w.Write([]byte("[]")); err != nil {
			return
		}
		return
	}

	_ = json.NewEncoder(w).Encode(data)
}
