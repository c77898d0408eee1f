package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/aeronica/complaint-portal/internal/domain"
	"github.com/aeronica/complaint-portal/internal/handlers"
	"github.com/aeronica/complaint-portal/internal/service"
	"github.com/aeronica/complaint-portal/internal/storage"
	"github.com/aeronica/complaint-portal/pkg/auth"
	"github.com/aeronica/complaint-portal/pkg/config"
	"github.com/aeronica/complaint-portal/pkg/events"
)

// ---------- Mocks ----------

type mockAdminRepo struct {
	admins map[string]*domain.Administrator
}

func (m *mockAdminRepo) FindByUsername(_ context.Context, username string) (*domain.Administrator, error) {
	return m.admins[username], nil
}

func (m *mockAdminRepo) FindByID(_ context.Context, id int64) (*domain.Administrator, error) {
	for _, a := range m.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (m *mockAdminRepo) Create(_ context.Context, username, email, hash string) (*domain.Administrator, error) {
	a := &domain.Administrator{ID: int64(len(m.admins) + 1), Username: username, Email: email, PasswordHash: hash}
	m.admins[username] = a
	return a, nil
}

type otpRow struct {
	email     string
	codeHash  string
	expiresAt time.Time
	used      bool
	attempts  int
}

type mockOTPRepo struct {
	rows []otpRow
}

func (m *mockOTPRepo) Create(_ context.Context, email, codeHash string, expiresAt time.Time) error {
	m.rows = append(m.rows, otpRow{email: email, codeHash: codeHash, expiresAt: expiresAt})
	return nil
}

func (m *mockOTPRepo) CheckCode(_ context.Context, email, code string) (bool, error) {
	// latest row for the address wins
	for i := len(m.rows) - 1; i >= 0; i-- {
		row := &m.rows[i]
		if row.email != email {
			continue
		}
		if row.used || time.Now().After(row.expiresAt) || row.attempts >= domain.MaxOTPAttempts {
			return false, nil
		}
		if bcrypt.CompareHashAndPassword([]byte(row.codeHash), []byte(code)) != nil {
			row.attempts++
			return false, nil
		}
		row.used = true
		return true, nil
	}
	return false, nil
}

func (m *mockOTPRepo) DeleteExpired(context.Context) (int64, error) { return 0, nil }

type mockComplaintRepo struct {
	nextID     int64
	complaints []domain.Complaint
}

func (m *mockComplaintRepo) Create(_ context.Context, req *domain.SubmitComplaintRequest) (*domain.Complaint, error) {
	m.nextID++
	c := domain.Complaint{
		ID:            m.nextID,
		Fullname:      req.Fullname,
		Phone:         req.Phone,
		ComplaintType: req.ComplaintType,
		Description:   req.Description,
		Urgency:       req.Urgency,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ImageURL:      req.ImageURL,
		Status:        domain.ComplaintPending,
		CreatedAt:     time.Now(),
	}
	m.complaints = append(m.complaints, c)
	return &c, nil
}

func (m *mockComplaintRepo) List(context.Context) ([]domain.Complaint, error) {
	// newest first, matching the store's created_at DESC ordering
	out := make([]domain.Complaint, 0, len(m.complaints))
	for i := len(m.complaints) - 1; i >= 0; i-- {
		out = append(out, m.complaints[i])
	}
	return out, nil
}

func (m *mockComplaintRepo) UpdateStatus(_ context.Context, id int64, status domain.ComplaintStatus) (bool, error) {
	for i := range m.complaints {
		if m.complaints[i].ID == id {
			m.complaints[i].Status = status
			return true, nil
		}
	}
	return false, nil
}

type mockRateLimit struct {
	allowed bool
	calls   int
}

func (m *mockRateLimit) CheckRateLimit(context.Context, string, int, time.Duration) (bool, error) {
	m.calls++
	return m.allowed, nil
}

type mockMailer struct {
	lastTo   string
	lastCode string
	sendErr  error
}

func (m *mockMailer) SendOTPEmail(toEmail, code string) error {
	m.lastTo = toEmail
	m.lastCode = code
	return m.sendErr
}

type mockStore struct {
	saved map[string][]byte
}

func (m *mockStore) Save(_ context.Context, originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	key := storage.SanitizeFilename(originalName)
	m.saved[key] = data
	return "http://files.local/uploads/" + key, nil
}

func (m *mockStore) Open(name string) (io.ReadSeekCloser, error) {
	data, ok := m.saved[name]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return nopSeekCloser{bytes.NewReader(data)}, nil
}

type nopSeekCloser struct{ *bytes.Reader }

func (nopSeekCloser) Close() error { return nil }

// ---------- Fixture ----------

type fixture struct {
	router        *chi.Mux
	adminRepo     *mockAdminRepo
	otpRepo       *mockOTPRepo
	complaintRepo *mockComplaintRepo
	rateLimit     *mockRateLimit
	mailer        *mockMailer
	store         *mockStore
	cfg           *config.Config
}

const (
	testAdminUser = "admin"
	testAdminPass = "correct horse battery"
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hash, err := argon2id.CreateHash(testAdminPass, argon2id.DefaultParams)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	f := &fixture{
		adminRepo: &mockAdminRepo{admins: map[string]*domain.Administrator{
			testAdminUser: {ID: 7, Username: testAdminUser, PasswordHash: hash},
		}},
		otpRepo:       &mockOTPRepo{},
		complaintRepo: &mockComplaintRepo{},
		rateLimit:     &mockRateLimit{allowed: true},
		mailer:        &mockMailer{},
		store:         &mockStore{saved: map[string][]byte{}},
		cfg: &config.Config{
			Auth: config.AuthConfig{
				JWTSecret:  "test-secret",
				SessionTTL: time.Hour,
				OTPTTL:     10 * time.Minute,
			},
			Uploads: config.UploadsConfig{MaxBytes: 50 * 1024 * 1024},
		},
	}

	authSvc := service.NewAuthService(f.adminRepo, f.otpRepo, f.mailer, events.NoopPublisher{}, f.cfg)
	complaintSvc := service.NewComplaintService(f.complaintRepo, f.store, events.NoopPublisher{})
	h := handlers.New(authSvc, complaintSvc, f.rateLimit, f.store, f.cfg)

	r := chi.NewRouter()
	r.Post("/admin/login", h.Login)
	r.With(h.OTPRateLimit).Post("/auth/send-otp", h.SendOTP)
	r.Post("/auth/verify-otp", h.VerifyOTP)
	r.Post("/complaints", h.SubmitComplaint)
	r.Get("/complaints", h.ListComplaints)
	r.Get("/uploads/{filename}", h.ServeUpload)
	r.Route("/admin", func(r chi.Router) {
		r.Use(h.RequireAdmin)
		r.Get("/complaints", h.ListAllComplaints)
		r.Patch("/update-status", h.UpdateStatus)
	})

	f.router = r
	return f
}

func (f *fixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) login(t *testing.T) string {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/admin/login", "", domain.LoginRequest{
		Username: testAdminUser,
		Password: testAdminPass,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp domain.TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Token
}

// ---------- Auth tests ----------

func TestLoginIssuesAdminSession(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	claims, err := auth.Parse(token, f.cfg.Auth.JWTSecret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Sub != 7 {
		t.Errorf("token subject = %d, want 7", claims.Sub)
	}
	if claims.Role != auth.RoleAdmin {
		t.Errorf("token role = %q, want %q", claims.Role, auth.RoleAdmin)
	}

	// and the token passes the admin gate
	rec := f.do(t, http.MethodGet, "/admin/complaints", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("admin list with fresh token: got status %d, want 200", rec.Code)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)

	wrongPass := f.do(t, http.MethodPost, "/admin/login", "", domain.LoginRequest{
		Username: testAdminUser,
		Password: "wrongpass",
	})
	noUser := f.do(t, http.MethodPost, "/admin/login", "", domain.LoginRequest{
		Username: "nouser",
		Password: "x",
	})

	if wrongPass.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: got status %d, want 401", wrongPass.Code)
	}
	if noUser.Code != http.StatusUnauthorized {
		t.Errorf("unknown user: got status %d, want 401", noUser.Code)
	}
	if wrongPass.Body.String() != noUser.Body.String() {
		t.Errorf("error bodies differ: %q vs %q", wrongPass.Body.String(), noUser.Body.String())
	}
}

func TestAdminRoutesRejectMissingOrBadTokens(t *testing.T) {
	f := newFixture(t)

	if rec := f.do(t, http.MethodGet, "/admin/complaints", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: got status %d, want 401", rec.Code)
	}

	if rec := f.do(t, http.MethodGet, "/admin/complaints", "not-a-jwt", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: got status %d, want 401", rec.Code)
	}

	expired, err := auth.NewAdminToken(7, testAdminUser, f.cfg.Auth.JWTSecret, -time.Hour)
	if err != nil {
		t.Fatalf("create expired token: %v", err)
	}
	if rec := f.do(t, http.MethodGet, "/admin/complaints", expired, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("expired token: got status %d, want 401", rec.Code)
	}

	forged, err := auth.NewAdminToken(7, testAdminUser, "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("create forged token: %v", err)
	}
	if rec := f.do(t, http.MethodGet, "/admin/complaints", forged, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("forged token: got status %d, want 401", rec.Code)
	}
}

func TestCitizenTokenRejectedOnAdminRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/auth/send-otp", "", domain.SendOTPRequest{Email: "citizen@example.org"})
	if rec.Code != http.StatusOK {
		t.Fatalf("send-otp: got status %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if f.mailer.lastTo != "citizen@example.org" || f.mailer.lastCode == "" {
		t.Fatalf("mailer not invoked: to=%q code=%q", f.mailer.lastTo, f.mailer.lastCode)
	}

	rec = f.do(t, http.MethodPost, "/auth/verify-otp", "", domain.VerifyOTPRequest{
		Email: "citizen@example.org",
		OTP:   f.mailer.lastCode,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("verify-otp: got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp domain.TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode verify response: %v", err)
	}

	claims, err := auth.Parse(resp.Token, f.cfg.Auth.JWTSecret)
	if err != nil {
		t.Fatalf("parse citizen token: %v", err)
	}
	if claims.Role != auth.RoleCitizen {
		t.Errorf("token role = %q, want %q", claims.Role, auth.RoleCitizen)
	}

	if rec := f.do(t, http.MethodGet, "/admin/complaints", resp.Token, nil); rec.Code != http.StatusForbidden {
		t.Errorf("citizen token on admin route: got status %d, want 403", rec.Code)
	}
}

// ---------- OTP tests ----------

func TestSendOTPRequiresEmail(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/auth/send-otp", "", domain.SendOTPRequest{Email: ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty email: got status %d, want 400", rec.Code)
	}

	rec = f.do(t, http.MethodPost, "/auth/send-otp", "", domain.SendOTPRequest{Email: "not-an-email"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed email: got status %d, want 400", rec.Code)
	}
}

func TestVerifyOTPRejectsWrongAndStaleCodes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/auth/verify-otp", "", domain.VerifyOTPRequest{
		Email: "nobody@example.org",
		OTP:   "123456",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no code issued: got status %d, want 401", rec.Code)
	}

	rec = f.do(t, http.MethodPost, "/auth/send-otp", "", domain.SendOTPRequest{Email: "citizen@example.org"})
	if rec.Code != http.StatusOK {
		t.Fatalf("send-otp: got status %d, want 200", rec.Code)
	}

	wrong := "000000"
	if wrong == f.mailer.lastCode {
		wrong = "000001"
	}
	rec = f.do(t, http.MethodPost, "/auth/verify-otp", "", domain.VerifyOTPRequest{
		Email: "citizen@example.org",
		OTP:   wrong,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong code: got status %d, want 401", rec.Code)
	}

	// expired code is rejected even when it matches
	f.otpRepo.rows[len(f.otpRepo.rows)-1].expiresAt = time.Now().Add(-time.Minute)
	rec = f.do(t, http.MethodPost, "/auth/verify-otp", "", domain.VerifyOTPRequest{
		Email: "citizen@example.org",
		OTP:   f.mailer.lastCode,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expired code: got status %d, want 401", rec.Code)
	}
}

func TestOnlyLatestOTPCodeIsValid(t *testing.T) {
	f := newFixture(t)

	if rec := f.do(t, http.MethodPost, "/auth/send-otp", "", domain.SendOTPRequest{Email: "citizen@example.org"}); rec.Code != http.StatusOK {
		t.Fatalf("first send-otp: got status %d", rec.Code)
	}
	first := f.mailer.lastCode

	if rec := f.do(t, http.MethodPost, "/auth/send-otp", "", domain.SendOTPRequest{Email: "citizen@example.org"}); rec.Code != http.StatusOK {
		t.Fatalf("second send-otp: got status %d", rec.Code)
	}
	second := f.mailer.lastCode

	if first == second {
		t.Skip("codes collided; cannot tell rows apart")
	}

	rec := f.do(t, http.MethodPost, "/auth/verify-otp", "", domain.VerifyOTPRequest{
		Email: "citizen@example.org",
		OTP:   first,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("superseded code: got status %d, want 401", rec.Code)
	}

	rec = f.do(t, http.MethodPost, "/auth/verify-otp", "", domain.VerifyOTPRequest{
		Email: "citizen@example.org",
		OTP:   second,
	})
	if rec.Code != http.StatusOK {
		t.Errorf("latest code: got status %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestSendOTPRateLimited(t *testing.T) {
	f := newFixture(t)
	f.rateLimit.allowed = false

	rec := f.do(t, http.MethodPost, "/auth/send-otp", "", domain.SendOTPRequest{Email: "citizen@example.org"})
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("rate limited: got status %d, want 429", rec.Code)
	}
	if f.mailer.lastCode != "" {
		t.Error("mailer invoked despite rate limit")
	}
}

// ---------- Complaint tests ----------

func submitForm(t *testing.T, fields map[string]string, filename string, fileBody []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if filename != "" {
		fw, err := w.CreateFormFile("files[]", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(fileBody); err != nil {
			t.Fatalf("write file body: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

var sampleFields = map[string]string{
	"fullname":       "A",
	"phone":          "123",
	"complaint_type": "noise",
	"description":    "loud",
	"urgency":        "low",
	"latitude":       "1.0",
	"longitude":      "2.0",
}

func TestSubmitComplaintWithoutFile(t *testing.T) {
	f := newFixture(t)

	body, contentType := submitForm(t, sampleFields, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/complaints", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("submit: got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp domain.SubmitComplaintResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("response status = %q, want %q", resp.Status, "success")
	}
	if resp.ImageURL != nil {
		t.Errorf("image_url = %v, want null", *resp.ImageURL)
	}

	if len(f.complaintRepo.complaints) != 1 {
		t.Fatalf("stored %d complaints, want 1", len(f.complaintRepo.complaints))
	}
	stored := f.complaintRepo.complaints[0]
	if stored.Status != domain.ComplaintPending {
		t.Errorf("stored status = %q, want pending", stored.Status)
	}
	if stored.ImageURL != nil {
		t.Errorf("stored image_url = %v, want nil", *stored.ImageURL)
	}
	if stored.Fullname == nil || *stored.Fullname != "A" {
		t.Errorf("stored fullname = %v, want A", stored.Fullname)
	}

	// and the public listing shows it, pending, with matching fields
	listRec := f.do(t, http.MethodGet, "/complaints", "", nil)
	if listRec.Code != http.StatusOK {
		t.Fatalf("public list: got status %d, want 200", listRec.Code)
	}
	var listResp struct {
		Complaints []domain.PublicComplaint `json:"complaints"`
	}
	if err := json.Unmarshal(listRec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode public list: %v", err)
	}
	if len(listResp.Complaints) != 1 {
		t.Fatalf("public list has %d entries, want 1", len(listResp.Complaints))
	}
	got := listResp.Complaints[0]
	if got.Status != domain.ComplaintPending {
		t.Errorf("public status = %q, want pending", got.Status)
	}
	if got.Description == nil || *got.Description != "loud" {
		t.Errorf("public description = %v, want loud", got.Description)
	}
}

func TestSubmitComplaintStoresFile(t *testing.T) {
	f := newFixture(t)

	body, contentType := submitForm(t, sampleFields, "my photo.jpg", []byte("jpegbytes"))
	req := httptest.NewRequest(http.MethodPost, "/complaints", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("submit: got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp domain.SubmitComplaintResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	if resp.ImageURL == nil {
		t.Fatal("image_url is null, want a stored URL")
	}
	if !strings.Contains(*resp.ImageURL, "my_photo.jpg") {
		t.Errorf("image_url = %q, want sanitized filename in it", *resp.ImageURL)
	}
	if _, ok := f.store.saved["my_photo.jpg"]; !ok {
		t.Errorf("store keys = %v, want my_photo.jpg", f.store.saved)
	}
}

func TestSubmitComplaintAcceptsAbsentFields(t *testing.T) {
	f := newFixture(t)

	body, contentType := submitForm(t, map[string]string{"description": "just this"}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/complaints", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("submit: got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	stored := f.complaintRepo.complaints[0]
	if stored.Fullname != nil {
		t.Errorf("fullname = %v, want nil for absent field", *stored.Fullname)
	}
	if stored.Description == nil || *stored.Description != "just this" {
		t.Errorf("description = %v, want 'just this'", stored.Description)
	}
}

func TestPublicAndAdminListingsAgree(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	for i := 0; i < 3; i++ {
		body, contentType := submitForm(t, sampleFields, "", nil)
		req := httptest.NewRequest(http.MethodPost, "/complaints", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("submit %d: got status %d", i, rec.Code)
		}
	}

	var pub struct {
		Complaints []domain.PublicComplaint `json:"complaints"`
	}
	rec := f.do(t, http.MethodGet, "/complaints", "", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &pub); err != nil {
		t.Fatalf("decode public list: %v", err)
	}

	var adm struct {
		Complaints []domain.Complaint `json:"complaints"`
	}
	rec = f.do(t, http.MethodGet, "/admin/complaints", token, nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &adm); err != nil {
		t.Fatalf("decode admin list: %v", err)
	}

	if len(pub.Complaints) != 3 || len(adm.Complaints) != 3 {
		t.Fatalf("got %d public / %d admin entries, want 3/3", len(pub.Complaints), len(adm.Complaints))
	}

	for i := range pub.Complaints {
		if pub.Complaints[i].ID != adm.Complaints[i].ID {
			t.Errorf("entry %d: public id %d != admin id %d", i, pub.Complaints[i].ID, adm.Complaints[i].ID)
		}
	}

	// newest first
	for i := 1; i < len(adm.Complaints); i++ {
		if adm.Complaints[i-1].ID < adm.Complaints[i].ID {
			t.Errorf("listing not creation-descending: %d before %d", adm.Complaints[i-1].ID, adm.Complaints[i].ID)
		}
	}

	// phone is admin-only
	if adm.Complaints[0].Phone == nil || *adm.Complaints[0].Phone != "123" {
		t.Error("admin listing missing phone")
	}
	var raw struct {
		Complaints []map[string]json.RawMessage `json:"complaints"`
	}
	rec = f.do(t, http.MethodGet, "/complaints", "", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode raw public list: %v", err)
	}
	if _, ok := raw.Complaints[0]["phone"]; ok {
		t.Error("public listing exposes phone")
	}
	if _, ok := raw.Complaints[0]["status"]; !ok {
		t.Error("public listing missing status")
	}
}

// ---------- Status transition tests ----------

func (f *fixture) submitOne(t *testing.T) int64 {
	t.Helper()

	body, contentType := submitForm(t, sampleFields, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/complaints", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: got status %d", rec.Code)
	}
	return f.complaintRepo.complaints[len(f.complaintRepo.complaints)-1].ID
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)
	id := f.submitOne(t)

	rec := f.do(t, http.MethodPatch, "/admin/update-status", token, domain.UpdateStatusRequest{
		ID:     id,
		Status: "in-progress",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status: got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp domain.UpdateStatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if resp.ID != id || resp.NewStatus != "in-progress" {
		t.Errorf("response = %+v, want id %d / in-progress", resp, id)
	}

	// visible in a following admin list
	var adm struct {
		Complaints []domain.Complaint `json:"complaints"`
	}
	listRec := f.do(t, http.MethodGet, "/admin/complaints", token, nil)
	if err := json.Unmarshal(listRec.Body.Bytes(), &adm); err != nil {
		t.Fatalf("decode admin list: %v", err)
	}
	if adm.Complaints[0].Status != domain.ComplaintInProgress {
		t.Errorf("listed status = %q, want in-progress", adm.Complaints[0].Status)
	}

	// any-to-any transitions are allowed, completed may revert
	for _, next := range []string{"completed", "pending"} {
		rec = f.do(t, http.MethodPatch, "/admin/update-status", token, domain.UpdateStatusRequest{ID: id, Status: next})
		if rec.Code != http.StatusOK {
			t.Errorf("transition to %s: got status %d, want 200", next, rec.Code)
		}
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)
	id := f.submitOne(t)

	rec := f.do(t, http.MethodPatch, "/admin/update-status", token, domain.UpdateStatusRequest{
		ID:     id,
		Status: "resolved",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad status: got status %d, want 400", rec.Code)
	}
	if f.complaintRepo.complaints[0].Status != domain.ComplaintPending {
		t.Errorf("store mutated by rejected status: %q", f.complaintRepo.complaints[0].Status)
	}
}

func TestUpdateStatusUnknownComplaint(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	rec := f.do(t, http.MethodPatch, "/admin/update-status", token, domain.UpdateStatusRequest{
		ID:     9999,
		Status: "completed",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: got status %d, want 404", rec.Code)
	}
}

// ---------- Upload serving ----------

func TestServeUpload(t *testing.T) {
	f := newFixture(t)
	f.store.saved["photo.jpg"] = []byte("jpegbytes")

	rec := f.do(t, http.MethodGet, "/uploads/photo.jpg", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("serve upload: got status %d, want 200", rec.Code)
	}
	if rec.Body.String() != "jpegbytes" {
		t.Errorf("body = %q, want file bytes", rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/uploads/missing.jpg", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing file: got status %d, want 404", rec.Code)
	}
}
