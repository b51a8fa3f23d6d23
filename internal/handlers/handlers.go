package handlers

import (
	"SpindleTracker/internal/config"
	"SpindleTracker/internal/middleware"
	"SpindleTracker/internal/service"
	"SpindleTracker/internal/session"
	"SpindleTracker/internal/view"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services — зависимости хендлеров из слоя сервиса.
type Services struct {
	Spindles *service.SpindleService
	Spares   *service.SpareService
	Export   *service.ExportService
	Auth     *service.AuthService
}

// NewHandler разводящий для хендлеров
func NewHandler(
	svc Services,
	sessions session.Store,
	renderer *view.Renderer,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret, sessions))

	// Handlers
	pages := &pageRenderer{renderer: renderer, logger: logger}
	authHandler := NewAuthHandler(svc.Auth, pages, logger, config)
	spindleHandler := NewSpindleHandler(svc.Spindles, pages, logger)
	spareHandler := NewSpareHandler(svc.Spares, pages, logger)
	exportHandler := NewExportHandler(svc.Export, logger)

	// Auth routes
	r.HandleFunc("/login", formOrSubmit(authHandler.LoginPage, authHandler.Login))
	r.HandleFunc("/logout", authHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)

		// Spindle routes
		r.HandleFunc("/", spindleHandler.List)
		r.HandleFunc("/spindles", spindleHandler.List)
		r.HandleFunc("/spindles/add", formOrSubmit(spindleHandler.AddForm, spindleHandler.Add))
		r.HandleFunc("/spindles/{id:[0-9]+}/edit", formOrSubmit(spindleHandler.EditForm, spindleHandler.Edit))
		r.Post("/spindles/{id:[0-9]+}/delete", spindleHandler.Delete)

		// Yedek routes
		r.HandleFunc("/yedeks", spareHandler.List)
		r.HandleFunc("/yedeks/add", formOrSubmit(spareHandler.AddForm, spareHandler.Add))
		r.HandleFunc("/yedeks/{id:[0-9]+}/edit", formOrSubmit(spareHandler.EditForm, spareHandler.Edit))
		r.Post("/yedeks/{id:[0-9]+}/delete", spareHandler.Delete)

		r.HandleFunc("/export", exportHandler.Export)
	})

	// неизвестные пути тоже только после входа
	notFound := middleware.RequireSession(http.HandlerFunc(NotFound))
	r.NotFound(notFound.ServeHTTP)
	r.MethodNotAllowed(notFound.ServeHTTP)

	return &Handler{Router: r}
}

// NotFound отвечает текстовым 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Not Found"))
}

// formOrSubmit: GET показывает форму, любой другой метод её отправляет.
func formOrSubmit(form, submit http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			form(w, r)
			return
		}
		submit(w, r)
	}
}

// pageRenderer отдаёт HTML страницы и логирует ошибки шаблонов.
type pageRenderer struct {
	renderer *view.Renderer
	logger   *zap.SugaredLogger
}

func (p *pageRenderer) render(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.renderer.Render(w, page, data); err != nil {
		p.logger.Errorw("render failed", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func loggedIn(msg *view.Message) view.Layout {
	return view.Layout{Title: view.AppTitle, LoggedIn: true, Message: msg}
}

func internalError(w http.ResponseWriter, logger *zap.SugaredLogger, msg string, err error, kv ...any) {
	logger.Errorw(msg, append(kv, "error", err)...)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

var requiredRefMessage = &view.Message{Type: "warning", Text: "Referans ID zorunludur."}
