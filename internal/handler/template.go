package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/3liantte/grocery-list-app/internal/store"
)

type TemplateHandler struct {
	store  *store.GroceryStore
	logger *slog.Logger
}

func NewTemplateHandler(s *store.GroceryStore, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{store: s, logger: logger}
}

func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.TemplateLists())
}

func (h *TemplateHandler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	tpl, err := h.store.SaveTemplateList(req.Name)
	if err != nil {
		writeStoreError(w, h.logger, "save template", err)
		return
	}

	writeJSON(w, http.StatusCreated, tpl)
}

func (h *TemplateHandler) LoadTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, ok := h.store.Template(id); !ok {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	if err := h.store.LoadTemplate(id); err != nil {
		writeStoreError(w, h.logger, "load template", err)
		return
	}

	writeJSON(w, http.StatusOK, h.store.Items())
}

func (h *TemplateHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveTemplate(r.PathValue("id")); err != nil {
		writeStoreError(w, h.logger, "delete template", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
