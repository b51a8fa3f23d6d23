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

const sparesPath = "/yedeks"

// SpareHandler — страницы запасных деталей (yedek).
type SpareHandler struct {
	Service *service.SpareService
	Logger  *zap.SugaredLogger
	pages   *pageRenderer
}

func NewSpareHandler(svc *service.SpareService, pages *pageRenderer, logger *zap.SugaredLogger) *SpareHandler {
	return &SpareHandler{Service: svc, Logger: logger, pages: pages}
}

func (h *SpareHandler) List(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := h.Service.List(q)
	if err != nil {
		internalError(w, h.Logger, "Yedeks: list failed", err)
		return
	}
	h.pages.render(w, view.PageSpareList, view.SpareListPage{Layout: loggedIn(nil), Query: q, Items: items})
}

// AddForm пустая форма: даты предзаполнены сегодняшним днём
func (h *SpareHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	today := h.Service.Today()
	h.renderForm(w, true, model.Spare{
		InRepair:       model.InRepairNo,
		SentToRepairAt: today,
		ReturnedAt:     today,
		RemovedAt:      today,
	}, nil)
}

func (h *SpareHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Logger.Warnw("Yedeks: invalid form", "error", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := spareFromForm(r)
	if _, err := h.Service.Create(in); err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.renderForm(w, true, in, requiredRefMessage)
			return
		}
		internalError(w, h.Logger, "Yedeks: create failed", err)
		return
	}
	http.Redirect(w, r, sparesPath, http.StatusFound)
}

func (h *SpareHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}
	h.renderForm(w, false, item, nil)
}

func (h *SpareHandler) Edit(w http.ResponseWriter, r *http.Request) {
	current, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.Logger.Warnw("Yedeks: invalid form", "error", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := spareFromForm(r)
	in.ID = current.ID
	if _, err := h.Service.Update(current.ID, in); err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.renderForm(w, false, current, requiredRefMessage)
			return
		}
		internalError(w, h.Logger, "Yedeks: update failed", err, "id", current.ID)
		return
	}
	http.Redirect(w, r, sparesPath, http.StatusFound)
}

func (h *SpareHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Service.Delete(id); err != nil {
		internalError(w, h.Logger, "Yedeks: delete failed", err, "id", id)
		return
	}
	http.Redirect(w, r, sparesPath, http.StatusFound)
}

func (h *SpareHandler) load(w http.ResponseWriter, r *http.Request) (model.Spare, bool) {
	id := chi.URLParam(r, "id")
	item, err := h.Service.Get(id)
	if errors.Is(err, service.ErrNotFound) {
		http.Redirect(w, r, sparesPath, http.StatusFound)
		return model.Spare{}, false
	}
	if err != nil {
		internalError(w, h.Logger, "Yedeks: get failed", err, "id", id)
		return model.Spare{}, false
	}
	return item, true
}

func (h *SpareHandler) renderForm(w http.ResponseWriter, isAdd bool, item model.Spare, msg *view.Message) {
	h.pages.render(w, view.PageSpareForm, view.SpareFormPage{Layout: loggedIn(msg), IsAdd: isAdd, Item: item})
}

func spareFromForm(r *http.Request) model.Spare {
	return model.Spare{
		RefID:              r.PostFormValue(model.SpareRefID),
		Description:        r.PostFormValue(model.SpareDescription),
		InRepair:           r.PostFormValue(model.SpareInRepair),
		SentToRepairAt:     r.PostFormValue(model.SpareSentAt),
		ReturnedAt:         r.PostFormValue(model.SpareReturnedAt),
		RemovedFromMachine: r.PostFormValue(model.SpareMachine),
		RemovedAt:          r.PostFormValue(model.SpareRemovedAt),
	}
}
