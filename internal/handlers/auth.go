package handlers

import (
	"SpindleTracker/internal/config"
	"SpindleTracker/internal/middleware"
	"SpindleTracker/internal/service"
	"SpindleTracker/internal/view"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// AuthHandler — вход и выход.
type AuthHandler struct {
	AuthService *service.AuthService
	Logger      *zap.SugaredLogger
	Config      *config.Config
	pages       *pageRenderer
}

func NewAuthHandler(auth *service.AuthService, pages *pageRenderer, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{AuthService: auth, Logger: logger, Config: cfg, pages: pages}
}

var invalidLoginMessage = &view.Message{Type: "danger", Text: "Kullanıcı adı veya şifre hatalı."}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, view.PageLogin, view.LoginPage{Layout: view.Layout{Title: view.AppTitle}})
}

// Login проверяет учётные данные формы и выдаёт cookie сессии
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Logger.Warnw("Login: invalid form", "error", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")

	sess, err := h.AuthService.Login(username, r.PostFormValue("password"))
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.Logger.Warnw("Login: invalid credentials", "username", username, "remote", r.RemoteAddr)
		h.pages.render(w, view.PageLogin, view.LoginPage{
			Layout:   view.Layout{Title: view.AppTitle, Message: invalidLoginMessage},
			Username: username,
		})
		return
	}
	if err != nil {
		internalError(w, h.Logger, "Login: session error", err)
		return
	}

	if err := middleware.SetLoginCookie(w, sess, h.Config.AuthSecret); err != nil {
		internalError(w, h.Logger, "Login: failed to set cookie", err)
		return
	}
	h.Logger.Infow("Login: ok", "username", sess.Username, "remote", r.RemoteAddr)
	http.Redirect(w, r, spindlesPath, http.StatusFound)
}

// Logout удаляет сессию и cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.SessionToken(r, h.Config.AuthSecret); ok {
		h.AuthService.Logout(token)
	}
	middleware.ClearLoginCookie(w)
	http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
}
