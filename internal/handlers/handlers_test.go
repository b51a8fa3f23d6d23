package handlers_test

import (
	"SpindleTracker/internal/middleware"
	"SpindleTracker/internal/model"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_AnonymousRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/", "/spindles", "/yedeks/add", "/export", "/nope"} {
		rr := env.do(t, httptest.NewRequest(http.MethodGet, path, nil), false)
		assert.Equal(t, http.StatusFound, rr.Code, path)
		assert.Equal(t, "/login", rr.Header().Get("Location"), path)
	}
}

func TestRouter_NotFound(t *testing.T) {
	env := newTestEnv(t)
	rr := env.get(t, "/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Not Found", rr.Body.String())

	// удаление только POST
	rr = env.get(t, "/spindles/1/delete")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAuth_Login(t *testing.T) {
	env := newTestEnv(t)

	t.Run("page", func(t *testing.T) {
		rr := env.do(t, httptest.NewRequest(http.MethodGet, "/login", nil), false)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Giriş Ekranı")
	})

	t.Run("ok", func(t *testing.T) {
		form := url.Values{"username": {"BAKIM"}, "password": {"MAXIME"}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := env.do(t, req, false)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/spindles", rr.Header().Get("Location"))

		var sid *http.Cookie
		for _, c := range rr.Result().Cookies() {
			if c.Name == middleware.CookieName {
				sid = c
			}
		}
		require.NotNil(t, sid, "Set-Cookie sid expected")
		assert.True(t, sid.HttpOnly)
		assert.Equal(t, "/", sid.Path)

		// cookie открывает защищённые страницы
		next := httptest.NewRequest(http.MethodGet, "/spindles", nil)
		next.AddCookie(sid)
		rr = env.do(t, next, false)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		form := url.Values{"username": {"BAKIM"}, "password": {"wrong"}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := env.do(t, req, false)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Kullanıcı adı veya şifre hatalı.")
		assert.Empty(t, rr.Result().Cookies())
	})
}

func TestAuth_Logout(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	s := env.addAuth(t, req)
	cookies := req.Cookies()

	rr := env.do(t, req, false)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	_, ok := env.sessions.Get(s.Token)
	assert.False(t, ok, "session must be removed on logout")

	// старая cookie больше не работает
	again := httptest.NewRequest(http.MethodGet, "/spindles", nil)
	for _, c := range cookies {
		again.AddCookie(c)
	}
	rr = env.do(t, again, false)
	assert.Equal(t, http.StatusFound, rr.Code)
}

func TestSpindles_AddListEditDelete(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get(t, "/spindles/add")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="`+today()+`"`)

	rr = env.postForm(t, "/spindles/add", url.Values{
		model.SpindleRefID:   {"SP-100"},
		model.SpindleHours:   {"1200"},
		model.SpindleMachine: {"CNC-4"},
	})
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/spindles", rr.Header().Get("Location"))

	rows, err := env.spindles.List()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].ID)
	assert.Equal(t, "SP-100", rows[0].Get(model.SpindleRefID))
	assert.Equal(t, today(), rows[0].Get(model.SpindleInstalledAt))
	assert.Equal(t, today(), rows[0].Get(model.SpindleUpdatedAt))

	rr = env.get(t, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "SP-100")
	assert.Contains(t, rr.Body.String(), "CNC-4")

	rr = env.get(t, "/spindles/1/edit")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Spindle Düzenle")
	assert.Contains(t, rr.Body.String(), `value="SP-100"`)

	rr = env.postForm(t, "/spindles/1/edit", url.Values{
		model.SpindleRefID: {"SP-100"},
		model.SpindleHours: {"1300"},
	})
	assert.Equal(t, http.StatusFound, rr.Code)
	rows, err = env.spindles.List()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1300", rows[0].Get(model.SpindleHours))
	// форма редактирования присылает все поля, пустые затирают старые
	assert.Equal(t, "", rows[0].Get(model.SpindleMachine))

	rr = env.postForm(t, "/spindles/1/delete", nil)
	assert.Equal(t, http.StatusFound, rr.Code)
	rows, err = env.spindles.List()
	require.NoError(t, err)
	assert.Empty(t, rows)

	rr = env.get(t, "/spindles")
	assert.Contains(t, rr.Body.String(), "Kayıt bulunamadı.")
}

func TestSpindles_AddWithoutRefIDShowsForm(t *testing.T) {
	env := newTestEnv(t)
	rr := env.postForm(t, "/spindles/add", url.Values{model.SpindleHours: {"5"}})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Referans ID zorunludur.")

	rows, err := env.spindles.List()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSpindles_EditUnknownRedirects(t *testing.T) {
	env := newTestEnv(t)
	rr := env.get(t, "/spindles/42/edit")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/spindles", rr.Header().Get("Location"))

	before, err := os.ReadFile(env.spindles.Path())
	require.NoError(t, err)
	rr = env.postForm(t, "/spindles/42/edit", url.Values{model.SpindleRefID: {"X"}})
	assert.Equal(t, http.StatusFound, rr.Code)
	after, err := os.ReadFile(env.spindles.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSpindles_Search(t *testing.T) {
	env := newTestEnv(t)
	for _, ref := range []string{"ABC-1", "xyz-2", "abc-3"} {
		rr := env.postForm(t, "/spindles/add", url.Values{model.SpindleRefID: {ref}})
		require.Equal(t, http.StatusFound, rr.Code)
	}

	body := env.get(t, "/spindles?q=abc").Body.String()
	assert.Contains(t, body, "ABC-1")
	assert.Contains(t, body, "abc-3")
	assert.NotContains(t, body, "xyz-2")
	assert.Contains(t, body, `name="q" value="abc"`)

	body = env.get(t, "/spindles?q=+++").Body.String()
	assert.Contains(t, body, "xyz-2")
}

func TestYedeks_AddDefaultsAndEdit(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get(t, "/yedeks/add")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Yedek Ekle")

	rr = env.postForm(t, "/yedeks/add", url.Values{
		model.SpareRefID:       {"YD-7"},
		model.SpareDescription: {"rulman, değişti"},
	})
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/yedeks", rr.Header().Get("Location"))

	rows, err := env.spares.List()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "rulman  değişti", rows[0].Get(model.SpareDescription))
	assert.Equal(t, model.InRepairNo, rows[0].Get(model.SpareInRepair))
	assert.Equal(t, today(), rows[0].Get(model.SpareSentAt))
	assert.Equal(t, today(), rows[0].Get(model.SpareReturnedAt))
	assert.Equal(t, today(), rows[0].Get(model.SpareRemovedAt))

	rr = env.postForm(t, "/yedeks/1/edit", url.Values{
		model.SpareRefID:    {"YD-7"},
		model.SpareInRepair: {model.InRepairYes},
	})
	assert.Equal(t, http.StatusFound, rr.Code)
	rows, err = env.spares.List()
	require.NoError(t, err)
	assert.Equal(t, model.InRepairYes, rows[0].Get(model.SpareInRepair))
	assert.Equal(t, "", rows[0].Get(model.SpareSentAt))

	body := env.get(t, "/yedeks").Body.String()
	assert.Contains(t, body, "YD-7")

	rr = env.postForm(t, "/yedeks/1/delete", nil)
	assert.Equal(t, http.StatusFound, rr.Code)
	rows, err = env.spares.List()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestYedeks_EditWithoutRefIDKeepsRecord(t *testing.T) {
	env := newTestEnv(t)
	rr := env.postForm(t, "/yedeks/add", url.Values{model.SpareRefID: {"YD-1"}})
	require.Equal(t, http.StatusFound, rr.Code)

	rr = env.postForm(t, "/yedeks/1/edit", url.Values{model.SpareRefID: {""}})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="YD-1"`)

	rows, err := env.spares.List()
	require.NoError(t, err)
	assert.Equal(t, "YD-1", rows[0].Get(model.SpareRefID))
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	rr := env.postForm(t, "/spindles/add", url.Values{model.SpindleRefID: {"SP-1"}, model.SpindleHours: {"3"}})
	require.Equal(t, http.StatusFound, rr.Code)

	rr = env.get(t, "/export")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="takip_export.csv"`, rr.Header().Get("Content-Disposition"))

	body := rr.Body.String()
	assert.True(t, strings.HasPrefix(body, "--- Spindle Takip ---\n"))
	assert.Contains(t, body, "SP-1,3,,"+today()+","+today())
	assert.Contains(t, body, "\n\n--- Yedek Takip ---\n")
}

func TestStoreFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.Remove(env.spindles.Path()))

	rr := env.get(t, "/spindles")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = env.get(t, "/export")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRouter_GzipResponses(t *testing.T) {
	env := newTestEnv(t)
	rr := env.postForm(t, "/spindles/add", url.Values{model.SpindleRefID: {"SP-GZ"}})
	require.Equal(t, http.StatusFound, rr.Code)

	gzGet := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept-Encoding", "gzip")
		return env.do(t, req, true)
	}

	rr = gzGet("/spindles")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, gunzipBody(t, rr), "SP-GZ")

	rr = gzGet("/export")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Equal(t, `attachment; filename="takip_export.csv"`, rr.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(gunzipBody(t, rr), "--- Spindle Takip ---\n"))
}

func TestRouter_MethodsLikeForms(t *testing.T) {
	env := newTestEnv(t)

	t.Run("lists answer any method", func(t *testing.T) {
		for _, path := range []string{"/", "/spindles", "/yedeks"} {
			rr := env.do(t, httptest.NewRequest(http.MethodPost, path, nil), true)
			assert.Equal(t, http.StatusOK, rr.Code, path)
			assert.Contains(t, rr.Body.String(), "Kayıt bulunamadı.", path)
		}
		rr := env.do(t, httptest.NewRequest(http.MethodPost, "/export", nil), true)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("non-GET add is a submit", func(t *testing.T) {
		form := url.Values{model.SpareRefID: {"YD-PUT"}}
		req := httptest.NewRequest(http.MethodPut, "/yedeks/add", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := env.do(t, req, true)
		assert.Equal(t, http.StatusFound, rr.Code)

		rows, err := env.spares.List()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "YD-PUT", rows[0].Get(model.SpareRefID))
	})

	t.Run("non-GET login is a submit", func(t *testing.T) {
		form := url.Values{"username": {"BAKIM"}, "password": {"nope"}}
		req := httptest.NewRequest(http.MethodPut, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := env.do(t, req, false)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Kullanıcı adı veya şifre hatalı.")
	})

	t.Run("delete stays POST only", func(t *testing.T) {
		rr := env.do(t, httptest.NewRequest(http.MethodPut, "/yedeks/1/delete", nil), true)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		rows, err := env.spares.List()
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}
