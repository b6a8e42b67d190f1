package wire

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crime-report/internal/data/repository"
	"crime-report/internal/testutil"
	"crime-report/pkg/mailer"
	"crime-report/pkg/media"
	"crime-report/pkg/ratelimit"
	"crime-report/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{
			AllowedOrigins: []string{"*"},
			DebugRoutes:    true,
		},
		Database: utils.DatabaseConfig{URL: "sqlite://:memory:"},
		Media: utils.MediaConfig{
			Backend:     utils.MediaBackendLocal,
			URLPrefix:   "/uploads",
			MaxUploadMB: 1,
		},
		OTP: utils.OTPConfig{
			ExpiryMinutes:     5,
			FixedCode:         "00000",
			RequiredForSignup: true,
		},
	}
}

func newRouter(t *testing.T, config *utils.Config) http.Handler {
	t.Helper()

	store, err := media.NewLocalStore(t.TempDir(), config.Media.URLPrefix)
	require.NoError(t, err)

	app := Wiring(Deps{
		Repo:    repository.NewRepository(testutil.NewDB(t), zap.NewNop()),
		Store:   store,
		Mailer:  mailer.NewSMTPSender(utils.EmailConfig{}, zap.NewNop()),
		Limiter: ratelimit.NewMemoryLimiter(ratelimit.Config{Requests: 100}),
	}, config, zap.NewNop())

	return app.Router
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func do(t *testing.T, h http.Handler, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func signup(t *testing.T, h http.Handler, email string) {
	t.Helper()
	rec, _ := do(t, h, http.MethodPost, "/auth/send-otp", map[string]string{"email": email})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, h, http.MethodPost, "/auth/verify-otp", map[string]string{"email": email, "otp": "00000"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, h, http.MethodPost, "/auth/signup", map[string]string{"email": email, "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRoot(t *testing.T) {
	h := newRouter(t, testConfig())

	rec, env := do(t, h, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Crime Reporting Backend is running", env.Message)

	rec, _ = do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	h := newRouter(t, testConfig())

	rec, env := do(t, h, http.MethodPost, "/auth/signup", map[string]string{"email": "a@example.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "signup before OTP verification")
	assert.False(t, env.Status)

	rec, _ = do(t, h, http.MethodPost, "/auth/send-otp", map[string]string{"email": "a@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, h, http.MethodPost, "/auth/verify-otp", map[string]string{"email": "a@example.com", "otp": "99999"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired OTP", env.Message)

	rec, _ = do(t, h, http.MethodPost, "/auth/verify-otp", map[string]string{"email": "a@example.com", "otp": "00000"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, h, http.MethodPost, "/auth/signup", map[string]string{"email": "a@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	var user struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.NotZero(t, user.ID)
	assert.Equal(t, "a@example.com", user.Email)

	rec, env = do(t, h, http.MethodPost, "/auth/signup", map[string]string{"email": "a@example.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", env.Message)

	rec, env = do(t, h, http.MethodPost, "/auth/login", map[string]string{"email": "a@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		UserID uint   `json:"user_id"`
		Email  string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, user.ID, login.UserID)

	rec, _ = do(t, h, http.MethodPost, "/auth/login", map[string]string{"email": "a@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidBody(t *testing.T) {
	h := newRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec2, env := do(t, h, http.MethodPost, "/auth/send-otp", map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
	assert.Contains(t, string(env.Errors), "email")
}

func multipartComplaint(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		part, err := mw.CreateFormFile("image", "scene.PNG")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func complaintFields(email string) map[string]string {
	return map[string]string{
		"title":       "Broken window",
		"description": "Shop window smashed overnight",
		"crime_type":  "vandalism",
		"user_email":  email,
	}
}

func postComplaint(t *testing.T, h http.Handler, fields map[string]string, image []byte) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	body, contentType := multipartComplaint(t, fields, image)
	req := httptest.NewRequest(http.MethodPost, "/complaints/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestComplaints(t *testing.T) {
	h := newRouter(t, testConfig())
	signup(t, h, "a@example.com")

	rec, env := postComplaint(t, h, complaintFields("ghost@example.com"), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found for ghost@example.com", env.Message)

	rec, env = postComplaint(t, h, complaintFields("a@example.com"), []byte("png-bytes"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var complaint struct {
		ID        uint    `json:"id"`
		Status    string  `json:"status"`
		ImagePath *string `json:"image_path"`
		VideoPath *string `json:"video_path"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &complaint))
	assert.Equal(t, "Pending", complaint.Status)
	assert.Nil(t, complaint.VideoPath)
	require.NotNil(t, complaint.ImagePath)
	assert.True(t, strings.HasPrefix(*complaint.ImagePath, "/uploads/"))
	assert.True(t, strings.HasSuffix(*complaint.ImagePath, ".png"))

	// the stored file is served back
	rec, _ = do(t, h, http.MethodGet, *complaint.ImagePath, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())

	rec, env = do(t, h, http.MethodGet, "/complaints/my-complaints?user_email=a@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Len(t, mine, 1)

	rec, _ = do(t, h, http.MethodGet, "/complaints/my-complaints?user_email=ghost@example.com", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = do(t, h, http.MethodGet, "/complaints/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_complaints":1,"today_complaints":1}`, string(env.Data))

	rec, env = do(t, h, http.MethodGet, "/complaints/recent?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var recent []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &recent))
	assert.Len(t, recent, 1)
}

func TestComplaints_TooLarge(t *testing.T) {
	h := newRouter(t, testConfig())
	signup(t, h, "a@example.com")

	rec, _ := postComplaint(t, h, complaintFields("a@example.com"), bytes.Repeat([]byte("x"), 2<<20))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestComplaints_MissingFields(t *testing.T) {
	h := newRouter(t, testConfig())

	rec, env := postComplaint(t, h, map[string]string{"title": "only a title"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Errors), "crime_type")
}

func TestSOS(t *testing.T) {
	h := newRouter(t, testConfig())

	rec, env := do(t, h, http.MethodPost, "/sos/", map[string]string{"user_email": "anyone@example.com", "lat": "12.9", "long": "77.5"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"lat":"12.9"`)

	rec, _ = do(t, h, http.MethodPost, "/sos/", map[string]string{"lat": "12.9"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, h, http.MethodGet, "/sos/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_alerts":1,"today_alerts":1}`, string(env.Data))
}

func TestSOS_RateLimited(t *testing.T) {
	config := testConfig()
	store, err := media.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	h := Wiring(Deps{
		Repo:    repository.NewRepository(testutil.NewDB(t), zap.NewNop()),
		Store:   store,
		Mailer:  mailer.NewSMTPSender(utils.EmailConfig{}, zap.NewNop()),
		Limiter: ratelimit.NewMemoryLimiter(ratelimit.Config{Requests: 1}),
	}, config, zap.NewNop()).Router

	payload := map[string]string{"lat": "1", "long": "2"}
	rec, _ := do(t, h, http.MethodPost, "/sos/", payload)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, h, http.MethodPost, "/sos/", payload)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// stats is not limited
	rec, _ = do(t, h, http.MethodGet, "/sos/stats", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDebugRoutes(t *testing.T) {
	h := newRouter(t, testConfig())

	rec, env := do(t, h, http.MethodGet, "/debug/database-info", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"database_url":"sqlite","engine_name":"sqlite","is_postgres":false}`, string(env.Data))

	rec, env = do(t, h, http.MethodGet, "/debug/users-count", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"users_count":0}`, string(env.Data))

	rec, env = do(t, h, http.MethodGet, "/debug/tables", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "complaints")
}

func TestDebugRoutes_Disabled(t *testing.T) {
	config := testConfig()
	config.App.DebugRoutes = false
	h := newRouter(t, config)

	rec, _ := do(t, h, http.MethodGet, "/debug/tables", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newRouter(t, testConfig())
	do(t, h, http.MethodGet, "/complaints/stats", nil)

	rec, _ := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "crime_report_http_requests_total")
}
