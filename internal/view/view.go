package view

import (
	"SpindleTracker/internal/model"
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

// AppTitle — заголовок всех страниц.
const AppTitle = "STS - Spindle Takip Sistemi (Web)"

// Имена страниц.
const (
	PageLogin       = "login"
	PageSpindleList = "spindle_list"
	PageSpindleForm = "spindle_form"
	PageSpareList   = "spare_list"
	PageSpareForm   = "spare_form"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Message — уведомление над содержимым страницы (Type — класс bootstrap alert).
type Message struct {
	Type string
	Text string
}

// Layout — общие данные шаблона layout.
type Layout struct {
	Title    string
	LoggedIn bool
	Message  *Message
}

type LoginPage struct {
	Layout
	Username string
}

type SpindleListPage struct {
	Layout
	Query string
	Items []model.Spindle
}

type SpindleFormPage struct {
	Layout
	IsAdd bool
	Item  model.Spindle
}

type SpareListPage struct {
	Layout
	Query string
	Items []model.Spare
}

type SpareFormPage struct {
	Layout
	IsAdd bool
	Item  model.Spare
}

// Renderer держит разобранные шаблоны: на каждую страницу layout + её content.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	pages := []string{PageLogin, PageSpindleList, PageSpindleForm, PageSpareList, PageSpareForm}
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render исполняет страницу целиком в буфер, чтобы ошибка шаблона
// не оставила клиенту половину HTML.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
