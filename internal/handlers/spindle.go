package handlers

import (
	"SpindleTracker/internal/model"
	"SpindleTracker/internal/service"
	"SpindleTracker/internal/view"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const spindlesPath = "/spindles"

// SpindleHandler — страницы списка и формы шпинделей.
type SpindleHandler struct {
	Service *service.SpindleService
	Logger  *zap.SugaredLogger
	pages   *pageRenderer
}

func NewSpindleHandler(svc *service.SpindleService, pages *pageRenderer, logger *zap.SugaredLogger) *SpindleHandler {
	return &SpindleHandler{Service: svc, Logger: logger, pages: pages}
}

// List список с фильтром ?q= по Referans ID
func (h *SpindleHandler) List(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := h.Service.List(q)
	if err != nil {
		internalError(w, h.Logger, "Spindles: list failed", err)
		return
	}
	h.pages.render(w, view.PageSpindleList, view.SpindleListPage{Layout: loggedIn(nil), Query: q, Items: items})
}

func (h *SpindleHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, true, model.Spindle{InstalledAt: h.Service.Today()}, nil)
}

func (h *SpindleHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Logger.Warnw("Spindles: invalid form", "error", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := spindleFromForm(r)
	id, err := h.Service.Create(in)
	if errors.Is(err, service.ErrValidation) {
		h.renderForm(w, true, in, requiredRefMessage)
		return
	}
	if err != nil {
		internalError(w, h.Logger, "Spindles: create failed", err)
		return
	}
	h.Logger.Debugw("Spindles: created", "id", id)
	http.Redirect(w, r, spindlesPath, http.StatusFound)
}

func (h *SpindleHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}
	h.renderForm(w, false, item, nil)
}

func (h *SpindleHandler) Edit(w http.ResponseWriter, r *http.Request) {
	current, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.Logger.Warnw("Spindles: invalid form", "error", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := spindleFromForm(r)
	in.ID = current.ID
	if _, err := h.Service.Update(current.ID, in); err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.renderForm(w, false, current, requiredRefMessage)
			return
		}
		internalError(w, h.Logger, "Spindles: update failed", err, "id", current.ID)
		return
	}
	http.Redirect(w, r, spindlesPath, http.StatusFound)
}

func (h *SpindleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Service.Delete(id); err != nil {
		internalError(w, h.Logger, "Spindles: delete failed", err, "id", id)
		return
	}
	http.Redirect(w, r, spindlesPath, http.StatusFound)
}

// load находит шпиндель из URL; если его нет — редирект на список.
func (h *SpindleHandler) load(w http.ResponseWriter, r *http.Request) (model.Spindle, bool) {
	id := chi.URLParam(r, "id")
	item, err := h.Service.Get(id)
	if errors.Is(err, service.ErrNotFound) {
		http.Redirect(w, r, spindlesPath, http.StatusFound)
		return model.Spindle{}, false
	}
	if err != nil {
		internalError(w, h.Logger, "Spindles: get failed", err, "id", id)
		return model.Spindle{}, false
	}
	return item, true
}

func (h *SpindleHandler) renderForm(w http.ResponseWriter, isAdd bool, item model.Spindle, msg *view.Message) {
	h.pages.render(w, view.PageSpindleForm, view.SpindleFormPage{Layout: loggedIn(msg), IsAdd: isAdd, Item: item})
}

func spindleFromForm(r *http.Request) model.Spindle {
	return model.Spindle{
		RefID:        r.PostFormValue(model.SpindleRefID),
		WorkingHours: r.PostFormValue(model.SpindleHours),
		Machine:      r.PostFormValue(model.SpindleMachine),
		InstalledAt:  r.PostFormValue(model.SpindleInstalledAt),
	}
}
