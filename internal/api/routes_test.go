package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/novaxiii/agency-backend/internal/auth"
	"github.com/novaxiii/agency-backend/internal/handler"
	"github.com/novaxiii/agency-backend/internal/leaderboard"
	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/repository/memory"
	"github.com/novaxiii/agency-backend/internal/services"
)

type fakeUploader struct {
	got []byte
}

func (f *fakeUploader) UploadProfileImage(_ context.Context, file io.Reader, userID string) (string, error) {
	f.got, _ = io.ReadAll(file)
	return "https://cdn.example.com/profiles/" + userID + ".jpg", nil
}

func (f *fakeUploader) UploadResume(_ context.Context, file io.Reader, filename string) (string, error) {
	f.got, _ = io.ReadAll(file)
	return "https://cdn.example.com/resumes/" + filename, nil
}

type testServer struct {
	t      *testing.T
	h      *handler.Handler
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.New()
	h := &handler.Handler{
		Store:        store,
		Tokens:       auth.NewTokens("test-secret", time.Hour),
		Passwords:    auth.NewPasswords(4),
		Leaderboard: leaderboard.NewService(store.Performance, store.Accounts).WithClock(func() time.Time {
			return time.Now().UTC()
		}),
		Applications: services.NewApplicationService(store.Applications, services.LogMailer{}, "admin@novaxiii.com", time.Second),
		Location:     time.UTC,
	}
	return &testServer{t: t, h: h, router: SetupRouter(h, nil)}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// account crée directement un compte avec le rôle voulu et renvoie son token.
func (s *testServer) account(email string, role model.Role) (model.User, string) {
	s.t.Helper()
	hash, _ := s.h.Passwords.Hash("password123")
	u, err := s.h.Store.Accounts.Create(context.Background(), &model.User{
		FirstName: strings.Split(email, "@")[0], LastName: "Test", Email: email, PasswordHash: hash,
		Role: role, AgencyName: "METROPOLITAN", AgentType: model.AgentTypeGA, Active: true,
	})
	if err != nil {
		s.t.Fatalf("create account: %v", err)
	}
	token, err := s.h.Tokens.Issue(*u)
	if err != nil {
		s.t.Fatalf("issue: %v", err)
	}
	return *u, token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

var registration = map[string]interface{}{
	"firstName":  "John",
	"lastName":   "Smith",
	"email":      "John.Smith@novaxiii.com",
	"password":   "password123",
	"agencyName": "METROPOLITAN",
	"agentType":  "SA",
	"phone":      "(555) 123-4567",
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/register", "", registration)
	expectStatus(t, rec, http.StatusCreated)
	var reg handler.AuthResponse
	decode(t, rec, &reg)
	if reg.Token == "" || reg.User.Role != model.RoleAgent || reg.User.Email != "john.smith@novaxiii.com" {
		t.Errorf("register response = %+v", reg)
	}

	expectStatus(t, s.do(http.MethodPost, "/api/register", "", registration), http.StatusConflict)

	rec = s.do(http.MethodPost, "/api/login", "", map[string]string{
		"email": "john.smith@novaxiii.com", "password": "password123",
	})
	expectStatus(t, rec, http.StatusOK)
	var login handler.AuthResponse
	decode(t, rec, &login)
	if login.User.ID != reg.User.ID {
		t.Errorf("login user = %s, want %s", login.User.ID, reg.User.ID)
	}

	for _, creds := range []map[string]string{
		{"email": "john.smith@novaxiii.com", "password": "nope"},
		{"email": "nobody@novaxiii.com", "password": "password123"},
	} {
		rec := s.do(http.MethodPost, "/api/login", "", creds)
		expectStatus(t, rec, http.StatusUnauthorized)
		var body map[string]string
		decode(t, rec, &body)
		if body["message"] != "Invalid credentials" {
			t.Errorf("message = %q", body["message"])
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		field string
		value interface{}
	}{
		{"missing email", "email", ""},
		{"bad email", "email", "not-an-email"},
		{"bad agent type", "agentType", "XX"},
		{"short password", "password", "123"},
		{"missing agency", "agencyName", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := map[string]interface{}{}
			for k, v := range registration {
				body[k] = v
			}
			body[tt.field] = tt.value
			rec := s.do(http.MethodPost, "/api/register", "", body)
			expectStatus(t, rec, http.StatusBadRequest)
			if !strings.Contains(rec.Body.String(), tt.field) {
				t.Errorf("error does not name %s: %s", tt.field, rec.Body.String())
			}
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)
	_, token := s.account("emily@novaxiii.com", model.RoleAgent)

	expectStatus(t, s.do(http.MethodGet, "/api/users/profile", "", nil), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodGet, "/api/users/profile", "garbage", nil), http.StatusUnauthorized)

	rec := s.do(http.MethodGet, "/api/users/profile", token, nil)
	expectStatus(t, rec, http.StatusOK)
	if strings.Contains(strings.ToLower(rec.Body.String()), "password") {
		t.Errorf("profile leaks password: %s", rec.Body.String())
	}

	rec = s.do(http.MethodPut, "/api/users/profile", token, map[string]string{
		"phone": "(555) 999-0000", "agentType": "SA", "profileImage": "",
	})
	expectStatus(t, rec, http.StatusOK)
	var u model.User
	decode(t, rec, &u)
	if u.Phone != "(555) 999-0000" || u.AgentType != model.AgentTypeSA || u.FirstName != "emily" {
		t.Errorf("updated = %+v", u)
	}

	expectStatus(t, s.do(http.MethodPut, "/api/users/profile", token, map[string]string{"agentType": "ZZ"}),
		http.StatusBadRequest)
}

func TestProfileForDeletedUser(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.h.Tokens.Issue(model.User{ID: "ghost", Email: "ghost@novaxiii.com", Role: model.RoleAgent})
	expectStatus(t, s.do(http.MethodGet, "/api/users/profile", token, nil), http.StatusNotFound)
}

func TestPerformanceAndLeaderboard(t *testing.T) {
	s := newTestServer(t)
	a, tokenA := s.account("a@novaxiii.com", model.RoleAgent)
	b, tokenB := s.account("b@novaxiii.com", model.RoleAgent)

	post := func(token string, body map[string]interface{}) {
		t.Helper()
		expectStatus(t, s.do(http.MethodPost, "/api/performance", token, body), http.StatusCreated)
	}
	post(tokenA, map[string]interface{}{"date": "2025-03-10", "alp": 100, "refAlp": 50, "calls": 40})
	post(tokenA, map[string]interface{}{"date": "2025-03-11", "alp": 200, "refAlp": 0, "calls": 35})
	post(tokenB, map[string]interface{}{"date": "2025-03-15", "alp": 500, "refAlp": 500})
	post(tokenB, map[string]interface{}{"date": "2025-03-16", "alp": 10000})

	rec := s.do(http.MethodGet, "/api/performance", tokenA, nil)
	expectStatus(t, rec, http.StatusOK)
	var mine []model.PerformanceRecord
	decode(t, rec, &mine)
	if len(mine) != 2 || !mine[0].Date.After(mine[1].Date) {
		t.Errorf("own records = %+v, want 2 newest first", mine)
	}

	rec = s.do(http.MethodGet, "/api/performance?startDate=2025-03-11&endDate=2025-03-11", tokenA, nil)
	decode(t, rec, &mine)
	if len(mine) != 1 || mine[0].ALP != 200 {
		t.Errorf("windowed records = %+v", mine)
	}

	rec = s.do(http.MethodGet, "/api/leaderboard?startDate=2025-03-09&endDate=2025-03-15", tokenA, nil)
	expectStatus(t, rec, http.StatusOK)
	var entries []model.LeaderboardEntry
	decode(t, rec, &entries)
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].UserID != b.ID || entries[0].TotalNetALP != 1000 {
		t.Errorf("first = %+v, want b at 1000", entries[0])
	}
	if entries[1].UserID != a.ID || entries[1].TotalALP != 300 || entries[1].TotalRefALP != 50 || entries[1].TotalNetALP != 350 {
		t.Errorf("second = %+v, want a at 300/50/350", entries[1])
	}
	if entries[1].TotalCalls != 75 || entries[1].AgencyName != "METROPOLITAN" {
		t.Errorf("second totals/identity = %+v", entries[1])
	}

	expectStatus(t, s.do(http.MethodGet, "/api/leaderboard?startDate=bad&endDate=2025-03-15", tokenA, nil),
		http.StatusBadRequest)
	expectStatus(t, s.do(http.MethodGet, "/api/leaderboard", "", nil), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodGet, "/api/leaderboard", tokenA, nil), http.StatusOK)
}

func TestLeaderboardFieldNames(t *testing.T) {
	s := newTestServer(t)
	_, token := s.account("a@novaxiii.com", model.RoleAgent)
	s.do(http.MethodPost, "/api/performance", token, map[string]interface{}{"date": "2025-03-10", "alp": 1})

	rec := s.do(http.MethodGet, "/api/leaderboard?startDate=2025-03-10&endDate=2025-03-10", token, nil)
	var raw []map[string]interface{}
	decode(t, rec, &raw)
	if len(raw) != 1 {
		t.Fatalf("raw = %v", raw)
	}
	for _, k := range []string{
		"_id", "firstName", "lastName", "agencyName", "agentType", "profileImage",
		"totalAlp", "totalRefAlp", "totalNetAlp", "totalCalls", "totalAppointments", "totalSits",
		"totalSales", "totalRefs", "totalRefAppointments", "totalRefSales",
	} {
		if _, ok := raw[0][k]; !ok {
			t.Errorf("leaderboard entry missing %q", k)
		}
	}
	if len(raw[0]) != 16 {
		t.Errorf("entry has %d fields, want 16", len(raw[0]))
	}
}

func TestPerformanceValidation(t *testing.T) {
	s := newTestServer(t)
	_, token := s.account("a@novaxiii.com", model.RoleAgent)

	for _, body := range []map[string]interface{}{
		{"alp": 10},
		{"date": "yesterday", "alp": 10},
		{"date": "2025-03-10", "calls": -1},
		{"date": "2025-03-10", "refAlp": -0.5},
	} {
		expectStatus(t, s.do(http.MethodPost, "/api/performance", token, body), http.StatusBadRequest)
	}
}

func TestApplications(t *testing.T) {
	s := newTestServer(t)
	_, agentToken := s.account("agent@novaxiii.com", model.RoleAgent)
	_, adminToken := s.account("admin@novaxiii.com", model.RoleAdmin)

	rec := s.do(http.MethodPost, "/api/applications", "", map[string]interface{}{
		"firstName": "Sarah", "lastName": "Williams", "email": "sarah@example.com",
		"phone": "(555) 123-4567", "location": "Dallas, TX", "experience": "1-3",
		"licenses": []string{},
	})
	expectStatus(t, rec, http.StatusCreated)
	var msg map[string]string
	decode(t, rec, &msg)
	if msg["message"] != "Application submitted successfully" {
		t.Errorf("message = %q", msg["message"])
	}

	expectStatus(t, s.do(http.MethodPost, "/api/applications", "", map[string]interface{}{
		"firstName": "Incomplete",
	}), http.StatusBadRequest)

	expectStatus(t, s.do(http.MethodGet, "/api/admin/applications", "", nil), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodGet, "/api/admin/applications", agentToken, nil), http.StatusForbidden)

	rec = s.do(http.MethodGet, "/api/admin/applications", adminToken, nil)
	expectStatus(t, rec, http.StatusOK)
	var apps []model.Application
	decode(t, rec, &apps)
	if len(apps) != 1 || apps[0].Status != model.StatusPending || apps[0].Licenses == nil {
		t.Fatalf("apps = %+v", apps)
	}

	rec = s.do(http.MethodPut, "/api/admin/applications/"+apps[0].ID, adminToken, map[string]string{"status": "contacted"})
	expectStatus(t, rec, http.StatusOK)
	var updated model.Application
	decode(t, rec, &updated)
	if updated.Status != model.StatusContacted {
		t.Errorf("status = %s", updated.Status)
	}

	expectStatus(t, s.do(http.MethodPut, "/api/admin/applications/"+apps[0].ID, adminToken,
		map[string]string{"status": "promoted"}), http.StatusBadRequest)
	expectStatus(t, s.do(http.MethodPut, "/api/admin/applications/missing", adminToken,
		map[string]string{"status": "hired"}), http.StatusNotFound)
	expectStatus(t, s.do(http.MethodPut, "/api/admin/applications/"+apps[0].ID, agentToken,
		map[string]string{"status": "hired"}), http.StatusForbidden)
}

func TestAdminUsers(t *testing.T) {
	s := newTestServer(t)
	_, managerToken := s.account("manager@novaxiii.com", model.RoleManager)
	_, adminToken := s.account("admin@novaxiii.com", model.RoleAdmin)

	expectStatus(t, s.do(http.MethodGet, "/api/admin/users", managerToken, nil), http.StatusForbidden)

	rec := s.do(http.MethodGet, "/api/admin/users", adminToken, nil)
	expectStatus(t, rec, http.StatusOK)
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Error("user list leaks password hashes")
	}
	var users []model.User
	decode(t, rec, &users)
	if len(users) != 2 {
		t.Errorf("users = %d, want 2", len(users))
	}
}

func TestAnalyticsGate(t *testing.T) {
	s := newTestServer(t)
	_, agentToken := s.account("agent@novaxiii.com", model.RoleAgent)
	_, managerToken := s.account("manager@novaxiii.com", model.RoleManager)

	for _, path := range []string{"/api/analytics/conversion", "/api/analytics/referrals", "/api/analytics/monthly-alp"} {
		expectStatus(t, s.do(http.MethodGet, path, agentToken, nil), http.StatusForbidden)
		expectStatus(t, s.do(http.MethodGet, path+"?startDate=2025-01-01&endDate=2025-12-31", managerToken, nil), http.StatusOK)
	}
}

func TestUploads(t *testing.T) {
	s := newTestServer(t)
	_, token := s.account("a@novaxiii.com", model.RoleAgent)

	multipartReq := func(path, field, filename, contentType string) *http.Request {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		hdr := make(map[string][]string)
		hdr["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
		hdr["Content-Type"] = []string{contentType}
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		part.Write([]byte("file-bytes"))
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, path, &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	// sans Cloudinary l'upload échoue proprement
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, multipartReq("/api/applications/resume", "resume", "cv.pdf", "application/pdf"))
	expectStatus(t, rec, http.StatusInternalServerError)
	if !strings.Contains(rec.Body.String(), "Server error") {
		t.Errorf("body = %s", rec.Body.String())
	}

	up := &fakeUploader{}
	s.h.Uploader = up

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, multipartReq("/api/applications/resume", "resume", "cv.pdf", "application/pdf"))
	expectStatus(t, rec, http.StatusCreated)
	if string(up.got) != "file-bytes" || !strings.Contains(rec.Body.String(), "cv.pdf") {
		t.Errorf("resume upload: got %q, body %s", up.got, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, multipartReq("/api/applications/resume", "resume", "cv.exe", "application/octet-stream"))
	expectStatus(t, rec, http.StatusBadRequest)

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, multipartReq("/api/users/profile/image", "image", "me.png", "image/png"))
	expectStatus(t, rec, http.StatusOK)
	var u model.User
	decode(t, rec, &u)
	if !strings.HasPrefix(u.ProfileImage, "https://cdn.example.com/profiles/") {
		t.Errorf("profileImage = %q", u.ProfileImage)
	}

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, multipartReq("/api/users/profile/image", "image", "notes.txt", "text/plain"))
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestHealthRootAndNotFound(t *testing.T) {
	s := newTestServer(t)

	expectStatus(t, s.do(http.MethodGet, "/api/health", "", nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodGet, "/", "", nil), http.StatusOK)

	rec := s.do(http.MethodGet, "/api/nowhere", "", nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "https://app.novaxiii.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Errorf("missing Access-Control-Allow-Origin, headers %v", rec.Header())
	}
}
