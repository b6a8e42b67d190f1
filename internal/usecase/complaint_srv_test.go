package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"crime-report/internal/data/entity"
	"crime-report/internal/dto/request"
	"crime-report/pkg/media"
	"crime-report/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, env *testEnv, email string) {
	t.Helper()
	require.NoError(t, env.repo.User.Create(context.Background(), &entity.User{Email: email, PasswordHash: "x"}))
}

func complaintReq(email string) *request.CreateComplaintRequest {
	return &request.CreateComplaintRequest{
		Title:       "Stolen bicycle",
		Description: "Taken from outside the library",
		CrimeType:   "theft",
		UserEmail:   email,
	}
}

func TestComplaint_CreateWithoutMedia(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	seedUser(t, env, "a@example.com")

	resp, err := env.svc.Complaint.Create(ctx, complaintReq("a@example.com"))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Pending", resp.Status)
	assert.Nil(t, resp.ImagePath)
	assert.Nil(t, resp.VideoPath)
	assert.False(t, resp.CreatedAt.IsZero())
}

func TestComplaint_CreateStoresMedia(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	seedUser(t, env, "a@example.com")

	req := complaintReq("a@example.com")
	req.Image = &media.File{Filename: "scene.jpg", Kind: media.KindImage, Content: strings.NewReader("jpeg")}
	req.Video = &media.File{Filename: "clip.mp4", Kind: media.KindVideo, Content: strings.NewReader("mp4")}

	resp, err := env.svc.Complaint.Create(ctx, req)
	require.NoError(t, err)

	require.NotNil(t, resp.ImagePath)
	require.NotNil(t, resp.VideoPath)
	assert.Equal(t, "https://media.example.org/image/scene.jpg", *resp.ImagePath)
	assert.Equal(t, "https://media.example.org/video/clip.mp4", *resp.VideoPath)
	assert.Equal(t, []string{"jpeg", "mp4"}, env.store.bodies)
}

func TestComplaint_UnknownUserPersistsNothing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	req := complaintReq("ghost@example.com")
	req.Image = &media.File{Filename: "scene.jpg", Kind: media.KindImage, Content: strings.NewReader("jpeg")}

	_, err := env.svc.Complaint.Create(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "User not found for ghost@example.com", err.Error())

	count, err := env.repo.Complaint.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, env.store.saved, "no upload for a rejected complaint")
}

func TestComplaint_FailedUploadFailsRequest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	seedUser(t, env, "a@example.com")
	env.store.failOn = media.KindVideo

	req := complaintReq("a@example.com")
	req.Image = &media.File{Filename: "scene.jpg", Kind: media.KindImage, Content: strings.NewReader("jpeg")}
	req.Video = &media.File{Filename: "clip.mp4", Kind: media.KindVideo, Content: strings.NewReader("mp4")}

	_, err := env.svc.Complaint.Create(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpload)

	count, err := env.repo.Complaint.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, []string{"https://media.example.org/image/scene.jpg"}, env.store.removed)
}

func TestComplaint_FailedInsertRemovesMedia(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	seedUser(t, env, "a@example.com")
	require.NoError(t, env.db.Exec("DROP TABLE complaints").Error)

	req := complaintReq("a@example.com")
	req.Image = &media.File{Filename: "scene.jpg", Kind: media.KindImage, Content: strings.NewReader("jpeg")}
	req.Video = &media.File{Filename: "clip.mp4", Kind: media.KindVideo, Content: strings.NewReader("mp4")}

	_, err := env.svc.Complaint.Create(ctx, req)
	require.Error(t, err)
	assert.Equal(t, []string{
		"https://media.example.org/image/scene.jpg",
		"https://media.example.org/video/clip.mp4",
	}, env.store.removed)
}

func TestComplaint_CrimeTypeMetricIsBounded(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	seedUser(t, env, "a@example.com")

	counter := func(label string) float64 {
		return testutil.ToFloat64(metrics.ComplaintsCreatedTotal.WithLabelValues(label))
	}
	theft, other := counter("theft"), counter("other")

	req := complaintReq("a@example.com")
	req.CrimeType = " Theft "
	_, err := env.svc.Complaint.Create(ctx, req)
	require.NoError(t, err)

	req = complaintReq("a@example.com")
	req.CrimeType = "made-up-label-12345"
	resp, err := env.svc.Complaint.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "made-up-label-12345", resp.CrimeType, "stored as submitted")

	assert.Equal(t, theft+1, counter("theft"))
	assert.Equal(t, other+1, counter("other"))
	assert.Equal(t, "sos_alert", crimeTypeLabel("SOS ALERT"))
	assert.Equal(t, "other", crimeTypeLabel(""))
}

func TestComplaint_MyComplaints(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	seedUser(t, env, "Asha@Example.com")
	seedUser(t, env, "b@example.com")

	_, err := env.svc.Complaint.Create(ctx, complaintReq("asha@example.com"))
	require.NoError(t, err)
	_, err = env.svc.Complaint.Create(ctx, complaintReq("b@example.com"))
	require.NoError(t, err)

	list, err := env.svc.Complaint.MyComplaints(ctx, "ASHA@example.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Asha@Example.com", list[0].UserEmail)

	_, err = env.svc.Complaint.MyComplaints(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

// seedAged inserts n complaints created 0, 5, 10, ... hours before now.
func seedAged(t *testing.T, env *testEnv, now time.Time, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		c := &entity.Complaint{
			Base:        entity.Base{CreatedAt: now.Add(-time.Duration(i*5) * time.Hour)},
			Title:       fmt.Sprintf("complaint %d", i),
			Description: "d",
			CrimeType:   "theft",
			UserEmail:   "a@example.com",
			Status:      entity.ComplaintStatusPending,
		}
		require.NoError(t, env.repo.Complaint.Create(context.Background(), c))
	}
}

func TestComplaint_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	seedAged(t, env, time.Now().UTC(), 10)

	list, err := env.svc.Complaint.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list, 5)

	for i, c := range list {
		assert.Equal(t, fmt.Sprintf("complaint %d", i), c.Title)
	}
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].CreatedAt.After(list[i].CreatedAt))
	}

	all, err := env.svc.Complaint.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, DefaultRecentLimit)
}

func TestComplaint_StatsRollingWindow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	now := time.Now().UTC()
	seedAged(t, env, now, 10) // ages 0..45h, five of them under 24h

	svc := env.svc.Complaint.(*complaintService)
	svc.now = func() time.Time { return now }

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, stats.TotalComplaints)
	assert.EqualValues(t, 5, stats.TodayComplaints)
}
