package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NKTHUAN-2K5/portfolio/internal/client"
	"github.com/NKTHUAN-2K5/portfolio/internal/config"
	"github.com/NKTHUAN-2K5/portfolio/internal/forms"
	"github.com/NKTHUAN-2K5/portfolio/internal/handlers"
	"github.com/NKTHUAN-2K5/portfolio/internal/metrics"
	"github.com/NKTHUAN-2K5/portfolio/internal/render"
	"github.com/NKTHUAN-2K5/portfolio/internal/server"
	"github.com/NKTHUAN-2K5/portfolio/internal/testhelpers"
	"github.com/NKTHUAN-2K5/portfolio/internal/uploads"
)

var formSessionRe = regexp.MustCompile(`name="form_session" value="([^"]+)"`)

type fixture struct {
	backend *testhelpers.Backend
	gateway *httptest.Server
	browser *http.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	backend := testhelpers.NewBackend()
	t.Cleanup(backend.Close)

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ReadTimeout = 5 * time.Second
	cfg.Server.WriteTimeout = 5 * time.Second
	cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	cfg.API.BaseURL = backend.URL()
	cfg.API.Timeout = 5 * time.Second
	cfg.Auth.SessionSecret = "test-session-secret"
	cfg.Auth.JWTSecret = "test-jwt-secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Uploads.MaxWorkers = 2
	cfg.Uploads.MaxSizeBytes = 1 << 20
	cfg.Uploads.FormSessionTTL = time.Minute

	log := testhelpers.NewTestLogger()
	httpc := client.NewHTTPClient(cfg.API.Timeout)
	apiClient := client.New(cfg.API.BaseURL, httpc, log)

	renderer, err := render.New()
	require.NoError(t, err)

	h := handlers.New(handlers.Deps{
		Client:   apiClient,
		Renderer: renderer,
		Mutator:  forms.NewMutator(apiClient, log),
		Uploader: uploads.NewAdapter(cfg.API.BaseURL, httpc, cfg.Uploads.MaxWorkers, log),
		Sessions: uploads.NewSessions(cfg.Uploads.FormSessionTTL),
		Config:   cfg,
		Log:      log,
	})

	router := server.NewRouter(cfg, h, metrics.New(), log)
	gateway := httptest.NewServer(router)
	t.Cleanup(gateway.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &fixture{
		backend: backend,
		gateway: gateway,
		browser: &http.Client{Jar: jar},
	}
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	res, err := f.browser.Get(f.gateway.URL + path)
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	res.Body.Close()
	return res, string(body)
}

// postForm submits a form and returns the page the redirect landed on.
// Flash notices show up here: the followed GET consumes them.
func (f *fixture) postForm(t *testing.T, path string, v url.Values) (*http.Response, string) {
	t.Helper()
	res, err := f.browser.PostForm(f.gateway.URL+path, v)
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	res.Body.Close()
	return res, string(body)
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	res, _ := f.postForm(t, "/admin/login", url.Values{
		"username": {f.backend.Username},
		"password": {f.backend.Password},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestPublicPage(t *testing.T) {
	f := newFixture(t)
	f.backend.Seed("stories", map[string]any{
		"title": "Launch day", "category": "Work", "date": "2025-02-01", "images": []string{},
	})

	res, body := f.get(t, "/")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Test Owner")
	assert.Contains(t, body, "Launch day")
	assert.Contains(t, body, `id="skills-container"`)
}

func TestPublicPage_FallbackWhenBackendDown(t *testing.T) {
	f := newFixture(t)
	f.backend.FailReads = true

	res, body := f.get(t, "/")
	require.Equal(t, http.StatusOK, res.StatusCode)

	// Embedded snapshot content keeps the site alive.
	assert.Contains(t, body, "Nguyen Khanh Thuan")
	assert.Contains(t, body, "First Hackathon")
}

func TestStoryDetail(t *testing.T) {
	f := newFixture(t)
	f.backend.Seed("stories", map[string]any{
		"id": 12, "title": "Conference talk", "content": "Spoke about Go.",
		"category": "Events", "date": "2025-03-01",
		"images": []string{"/uploads/1.jpg", "/uploads/2.jpg", "/uploads/3.jpg", "/uploads/4.jpg", "/uploads/5.jpg"},
	})

	res, body := f.get(t, "/stories/12")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Conference talk")
	// The detail view shows every image, not the capped preview.
	assert.Contains(t, body, "/uploads/5.jpg")
}

func TestStoryDetail_ConcurrentRequestsStayIsolated(t *testing.T) {
	f := newFixture(t)
	f.backend.Seed("stories", map[string]any{
		"id": 1, "title": "First Hackathon", "content": "Built a bot.",
		"category": "Events", "date": "2024-04-01", "images": []string{},
	})
	f.backend.Seed("stories", map[string]any{
		"id": 2, "title": "Summer Internship", "content": "Shipped a service.",
		"category": "Work", "date": "2024-07-01", "images": []string{},
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		id, title, other := "1", "First Hackathon", "Summer Internship"
		if i%2 == 1 {
			id, title, other = "2", "Summer Internship", "First Hackathon"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := http.Get(f.gateway.URL + "/stories/" + id)
			if !assert.NoError(t, err) {
				return
			}
			body, err := io.ReadAll(res.Body)
			res.Body.Close()
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.Contains(t, string(body), title)
			assert.NotContains(t, string(body), other)
		}()
	}
	wg.Wait()
}

func TestAdmin_RequiresAuth(t *testing.T) {
	f := newFixture(t)

	res, body := f.get(t, "/admin/stories")
	require.Equal(t, http.StatusOK, res.StatusCode) // after redirect
	assert.Contains(t, body, "Log in")
	assert.NotContains(t, body, "stories-list")
}

func TestLogin_BadCredentials(t *testing.T) {
	f := newFixture(t)

	_, body := f.postForm(t, "/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	assert.Contains(t, body, "Invalid username or password.")
}

func TestAdminSectionList(t *testing.T) {
	f := newFixture(t)
	f.backend.Seed("skills", map[string]any{"name": "Go", "category": "Backend", "level": 80})
	f.login(t)

	res, body := f.get(t, "/admin/skills")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Go")
	assert.Contains(t, body, "80%")
	assert.Contains(t, body, `id="skills-list"`)
}

func TestAdminSections_ConcurrentRequests(t *testing.T) {
	f := newFixture(t)
	f.backend.Seed("skills", map[string]any{"name": "Go", "category": "Backend", "level": 80})
	f.backend.Seed("awards", map[string]any{"title": "Best Project", "organization": "HCMUT", "date": "2024-11-01"})
	f.login(t)

	// Two admin tabs switching sections at once.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		section := "skills"
		if i%2 == 1 {
			section = "awards"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.browser.Get(f.gateway.URL + "/admin/" + section)
			if !assert.NoError(t, err) {
				return
			}
			io.Copy(io.Discard, res.Body)
			res.Body.Close()
			assert.Equal(t, http.StatusOK, res.StatusCode)
		}()
	}
	wg.Wait()

	assert.Contains(t, []string{"skills", "awards"}, f.activeSectionAfter(t))
}

// activeSectionAfter reads which section the admin home lands on, as a
// sanity check that concurrent activation settled on a valid section.
func (f *fixture) activeSectionAfter(t *testing.T) string {
	t.Helper()
	res, err := f.browser.Get(f.gateway.URL + "/admin")
	require.NoError(t, err)
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)
	return strings.TrimPrefix(res.Request.URL.Path, "/admin/")
}

func TestCreateRecordFlow(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	// Open the create panel, then submit.
	f.get(t, "/admin/skills/new")
	_, body := f.get(t, "/admin/skills")
	assert.Contains(t, body, `action="/admin/skills/save"`)

	_, body = f.postForm(t, "/admin/skills/save", url.Values{
		"name": {"Docker"}, "category": {"DevOps"}, "level": {"60"},
	})

	records := f.backend.Records("skills")
	require.Len(t, records, 1)
	assert.Equal(t, "Docker", records[0]["name"])
	assert.Equal(t, float64(60), records[0]["level"])

	// Panel closed after a successful submit.
	assert.NotContains(t, body, `action="/admin/skills/save"`)
	assert.Contains(t, body, "Saved.")
}

func TestEditRecordFlow(t *testing.T) {
	f := newFixture(t)
	f.backend.Seed("skills", map[string]any{"id": 4, "name": "Go", "category": "Backend", "level": 70})
	f.login(t)

	f.get(t, "/admin/skills/edit?id=4")
	_, body := f.get(t, "/admin/skills")
	assert.Contains(t, body, `name="id" value="4"`)
	assert.Contains(t, body, `value="70"`)

	f.postForm(t, "/admin/skills/save", url.Values{
		"id": {"4"}, "name": {"Go"}, "category": {"Backend"}, "level": {"85"},
	})

	records := f.backend.Records("skills")
	require.Len(t, records, 1)
	assert.Equal(t, float64(85), records[0]["level"])
	assert.Contains(t, f.backend.Requests(), "PUT /skills/4")
}

func TestValidationFailureKeepsPanelOpen(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	f.get(t, "/admin/skills/new")
	_, body := f.postForm(t, "/admin/skills/save", url.Values{
		"name": {"Go"}, "level": {"not-a-number"},
	})

	assert.Contains(t, body, `action="/admin/skills/save"`)
	assert.Contains(t, body, "level must be a number")
	assert.Empty(t, f.backend.Records("skills"))
}

func TestDelete_DeclinedLeavesListUnchanged(t *testing.T) {
	f := newFixture(t)
	f.backend.Seed("awards", map[string]any{"id": 2, "title": "Best Paper"})
	f.login(t)

	before := len(f.backend.Requests())
	f.postForm(t, "/admin/awards/delete", url.Values{"id": {"2"}, "confirm": {"false"}})

	// No DELETE ever reached the backend.
	for _, req := range f.backend.Requests()[before:] {
		assert.NotContains(t, req, "DELETE")
	}
	assert.Len(t, f.backend.Records("awards"), 1)
}

func TestDelete_Confirmed(t *testing.T) {
	f := newFixture(t)
	f.backend.Seed("awards", map[string]any{"id": 2, "title": "Best Paper"})
	f.login(t)

	f.postForm(t, "/admin/awards/delete", url.Values{"id": {"2"}, "confirm": {"true"}})
	assert.Empty(t, f.backend.Records("awards"))
	assert.Contains(t, f.backend.Requests(), "DELETE /awards/2")
}

func TestProfileSave(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	_, body := f.get(t, "/admin/profile")
	assert.Contains(t, body, `value="Test Owner"`)

	f.postForm(t, "/admin/profile/save", url.Values{
		"name":          {"Updated Owner"},
		"title":         {"Engineer"},
		"social.github": {"https://github.com/owner"},
	})
	assert.Contains(t, f.backend.Requests(), "PUT /profile")

	_, body = f.get(t, "/admin/profile")
	assert.Contains(t, body, `value="Updated Owner"`)
}

func TestUploadFlow(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	// Open the story create panel; it gets a form session.
	f.get(t, "/admin/stories/new")
	_, body := f.get(t, "/admin/stories")
	match := formSessionRe.FindStringSubmatch(body)
	require.NotNil(t, match, "form session id should be embedded in the form")
	formSession := match[1]

	// Upload two images into that session.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("section", "stories"))
	require.NoError(t, mw.WriteField("form_session", formSession))
	for _, name := range []string{"one.jpg", "two.jpg"} {
		part, err := mw.CreateFormFile("image", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	res, err := f.browser.Post(f.gateway.URL+"/admin/uploads", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	res.Body.Close()

	// Both pending previews show on the form.
	_, body = f.get(t, "/admin/stories")
	assert.Contains(t, body, "/uploads/one.jpg")
	assert.Contains(t, body, "/uploads/two.jpg")

	// Remove one, then save; the story keeps only the survivor.
	f.postForm(t, "/admin/uploads/remove", url.Values{
		"section":      {"stories"},
		"form_session": {formSession},
		"remove_image": {"/uploads/one.jpg"},
	})
	f.postForm(t, "/admin/stories/save", url.Values{
		"title":        {"Illustrated story"},
		"form_session": {formSession},
	})

	records := f.backend.Records("stories")
	require.Len(t, records, 1)
	images, ok := records[0]["images"].([]any)
	require.True(t, ok)
	require.Len(t, images, 1)
	assert.Equal(t, "/uploads/two.jpg", images[0])
}

func TestAPILogin_IssuesWorkingToken(t *testing.T) {
	f := newFixture(t)

	payload, _ := json.Marshal(map[string]string{"username": "admin", "password": "secret"})
	res, err := http.Post(f.gateway.URL+"/api/admin/login", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var out struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	require.True(t, out.Success)
	require.NotEmpty(t, out.Token)

	// The token alone, with no session cookie, opens the admin panel.
	req, _ := http.NewRequest(http.MethodGet, f.gateway.URL+"/admin/links", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	tokenRes, err := http.DefaultTransport.RoundTrip(req)
	require.NoError(t, err)
	defer tokenRes.Body.Close()
	assert.Equal(t, http.StatusOK, tokenRes.StatusCode)
}

func TestAPILogin_BadCredentials(t *testing.T) {
	f := newFixture(t)

	payload, _ := json.Marshal(map[string]string{"username": "admin", "password": "nope"})
	res, err := http.Post(f.gateway.URL+"/api/admin/login", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestUnknownSection(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	res, err := f.browser.Get(f.gateway.URL + "/admin/bogus")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSettingsFlow(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	f.postForm(t, "/admin/settings", url.Values{
		"primary": {"#112233"}, "secondary": {"#445566"}, "accent": {"#778899"},
	})
	_, body := f.get(t, "/")
	assert.Contains(t, body, "#112233")

	f.postForm(t, "/admin/settings/reset", nil)
	_, body = f.get(t, "/")
	assert.NotContains(t, body, "#112233")

	if !strings.Contains(body, "content-section") {
		t.Error("public page lost its sections after settings reset")
	}
}
