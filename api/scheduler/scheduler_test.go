package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ne-attend/ne-attend-api/databases/mocks"
	"github.com/ne-attend/ne-attend-api/models"
)

type sentMail struct {
	to, subject, html, text string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail map[string]bool
}

func (f *fakeMailer) Send(_ context.Context, toEmail, _, subject, htmlContent, plainText string) error {
	if f.fail[toEmail] {
		return errors.New("mailbox full")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{toEmail, subject, htmlContent, plainText})
	return nil
}

func TestSendDigests(t *testing.T) {
	alice := models.User{ID: primitive.NewObjectID(), Firstname: "Alice", Email: "alice@example.com"}
	bob := models.User{ID: primitive.NewObjectID(), Firstname: "Bob", Email: "bob@example.com"}
	carol := models.User{ID: primitive.NewObjectID(), Firstname: "Carol", Email: "carol@example.com"}
	annID := primitive.NewObjectID()

	udb := mocks.NewUserDatabase(t)
	udb.On("Find", mock.Anything, bson.M{}, int64(digestPageSize), int64(1)).Return([]models.User{alice, bob, carol}, nil)

	adb := mocks.NewAnnouncementDatabase(t)
	exam := models.Announcement{ID: annID, UserID: carol.ID, Name: "Exam moved", Description: "Room 204"}
	// alice has not opened it, bob has
	adb.On("FindWithReads", mock.Anything, bson.M{"userId": bson.M{"$ne": alice.ID}}, alice.ID).Return([]models.AnnouncementWithReads{
		{Announcement: exam, User: &models.UserSummary{Firstname: "Carol", Lastname: "Day"}},
	}, nil)
	adb.On("FindWithReads", mock.Anything, bson.M{"userId": bson.M{"$ne": bob.ID}}, bob.ID).Return([]models.AnnouncementWithReads{
		{Announcement: exam, Reads: []models.AnnouncementRead{{AnnouncementID: annID, UserID: bob.ID, Read: true}}},
	}, nil)
	adb.On("FindWithReads", mock.Anything, bson.M{"userId": bson.M{"$ne": carol.ID}}, carol.ID).Return(nil, nil)

	mailer := &fakeMailer{}
	s := NewScheduler(udb, adb, nil, mailer, "https://ne-attend.app")

	sent, err := s.SendDigests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alice@example.com", mailer.sent[0].to)
	assert.Equal(t, "You have 1 unread announcement", mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].html, "Exam moved")
	assert.Contains(t, mailer.sent[0].html, "Carol Day")
	assert.Contains(t, mailer.sent[0].text, "- Exam moved")
}

func TestSendDigestsPagesAndSurvivesSendFailures(t *testing.T) {
	full := make([]models.User, digestPageSize)
	for i := range full {
		full[i] = models.User{ID: primitive.NewObjectID(), Email: "u@example.com"}
	}
	last := models.User{ID: primitive.NewObjectID(), Email: "last@example.com"}

	udb := mocks.NewUserDatabase(t)
	udb.On("Find", mock.Anything, bson.M{}, int64(digestPageSize), int64(1)).Return(full, nil)
	udb.On("Find", mock.Anything, bson.M{}, int64(digestPageSize), int64(2)).Return([]models.User{last}, nil)

	unread := []models.AnnouncementWithReads{{Announcement: models.Announcement{ID: primitive.NewObjectID(), Name: "x"}}}
	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("FindWithReads", mock.Anything, mock.Anything, mock.Anything).Return(unread, nil)

	mailer := &fakeMailer{fail: map[string]bool{"u@example.com": true}}
	s := NewScheduler(udb, adb, nil, mailer, "")

	sent, err := s.SendDigests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, "last@example.com", mailer.sent[0].to)
}

func TestSendDigestsStorageError(t *testing.T) {
	udb := mocks.NewUserDatabase(t)
	udb.On("Find", mock.Anything, bson.M{}, int64(digestPageSize), int64(1)).Return(nil, errors.New("mocked-error"))

	s := NewScheduler(udb, nil, nil, &fakeMailer{}, "")
	_, err := s.SendDigests(context.Background())
	assert.EqualError(t, err, "mocked-error")
}

func TestSendDigestsWithoutMailer(t *testing.T) {
	s := NewScheduler(nil, nil, nil, nil, "")
	sent, err := s.SendDigests(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, sent)
}

func TestPurgeExpiredTokens(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tdb := mocks.NewTokenDatabase(t)
	tdb.On("DeleteExpired", mock.Anything, now).Return(int64(4), nil)

	s := NewScheduler(nil, nil, tdb, nil, "")
	s.now = func() time.Time { return now }

	n, err := s.PurgeExpiredTokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestStartRegistersJobs(t *testing.T) {
	s := NewScheduler(nil, nil, nil, &fakeMailer{}, "")
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 2)
	s.Stop()

	s = NewScheduler(nil, nil, nil, nil, "")
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}
