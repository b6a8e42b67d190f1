package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"crime-report/internal/data/repository"
	"crime-report/internal/testutil"
	"crime-report/pkg/media"
	"crime-report/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type sentMail struct {
	to, code string
	validFor int
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendOTP(_ context.Context, to, code string, validFor int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, code: code, validFor: validFor})
	return nil
}

type fakeStore struct {
	saved   []media.File
	bodies  []string
	removed []string
	failOn  media.Kind
}

func (s *fakeStore) Name() string { return "fake" }

func (s *fakeStore) Save(_ context.Context, file media.File) (string, error) {
	if file.Kind == s.failOn {
		return "", errors.New("quota exceeded")
	}
	body, err := io.ReadAll(file.Content)
	if err != nil {
		return "", err
	}
	s.saved = append(s.saved, file)
	s.bodies = append(s.bodies, string(body))
	return "https://media.example.org/" + string(file.Kind) + "/" + file.Filename, nil
}

func (s *fakeStore) Remove(_ context.Context, _ media.Kind, ref string) error {
	s.removed = append(s.removed, ref)
	return nil
}

type testEnv struct {
	svc    *Service
	db     *gorm.DB
	repo   *repository.Repository
	store  *fakeStore
	mailer *fakeMailer
}

func defaultConfig() *utils.Config {
	return &utils.Config{
		Database: utils.DatabaseConfig{URL: "sqlite://:memory:"},
		OTP: utils.OTPConfig{
			ExpiryMinutes:     5,
			FixedCode:         "00000",
			RequiredForSignup: true,
		},
	}
}

func newTestEnv(t *testing.T, config *utils.Config) *testEnv {
	t.Helper()
	if config == nil {
		config = defaultConfig()
	}

	db := testutil.NewDB(t)
	repo := repository.NewRepository(db, zap.NewNop())
	env := &testEnv{
		db:     db,
		repo:   repo,
		store:  &fakeStore{},
		mailer: &fakeMailer{},
	}
	env.svc = NewService(repo, env.store, env.mailer, config, zap.NewNop())
	require.NotNil(t, env.svc)
	return env
}
