package scheduler

import (
	"context"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/models"
	"github.com/ne-attend/ne-attend-api/readstate"
	templates "github.com/ne-attend/ne-attend-api/templates/html"
)

const (
	// DigestSchedule runs the unread digest on Monday mornings
	DigestSchedule = "0 7 * * 1"
	// TokenPurgeSchedule clears expired revocations
	TokenPurgeSchedule = "@hourly"

	digestPageSize = 100
	jobTimeout     = 10 * time.Minute
)

// Scheduler runs the periodic background jobs
type Scheduler struct {
	cron *cron.Cron

	UDB     databases.UserDatabase
	ADB     databases.AnnouncementDatabase
	TDB     databases.TokenDatabase
	Mailer  Mailer
	BaseURL string

	now func() time.Time
}

// NewScheduler creates a scheduler on UTC. A nil mailer disables the digest.
func NewScheduler(uDB databases.UserDatabase, aDB databases.AnnouncementDatabase, tDB databases.TokenDatabase, mailer Mailer, baseURL string) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		UDB:     uDB,
		ADB:     aDB,
		TDB:     tDB,
		Mailer:  mailer,
		BaseURL: baseURL,
		now:     time.Now,
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if s.Mailer != nil {
		if _, err := s.cron.AddFunc(DigestSchedule, s.runDigest); err != nil {
			return err
		}
	} else {
		zap.S().Warn("SENDGRID_API_KEY is not set, unread digest disabled")
	}
	if _, err := s.cron.AddFunc(TokenPurgeSchedule, s.runTokenPurge); err != nil {
		return err
	}

	s.cron.Start()
	zap.S().Infow("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("scheduler stopped")
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	sent, err := s.SendDigests(ctx)
	if err != nil {
		zap.S().Errorw("unread digest failed", "sent", sent, "error", err)
		return
	}
	zap.S().Infow("unread digest finished", "sent", sent)
}

func (s *Scheduler) runTokenPurge() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	n, err := s.PurgeExpiredTokens(ctx)
	if err != nil {
		zap.S().Errorw("failed to purge revoked tokens", "error", err)
		return
	}
	zap.S().Debugw("purged revoked tokens", "deleted", n)
}

// SendDigests emails every user with a non-empty inbox and returns how many
// emails went out. A failed send is logged and the run continues.
func (s *Scheduler) SendDigests(ctx context.Context) (int, error) {
	if s.Mailer == nil {
		return 0, nil
	}

	sent := 0
	for page := int64(1); ; page++ {
		users, err := s.UDB.Find(ctx, bson.M{}, digestPageSize, page)
		if err != nil {
			return sent, err
		}
		for _, user := range users {
			ok, err := s.digestFor(ctx, user)
			if err != nil {
				return sent, err
			}
			if ok {
				sent++
			}
		}
		if len(users) < digestPageSize {
			return sent, nil
		}
	}
}

func (s *Scheduler) digestFor(ctx context.Context, user models.User) (bool, error) {
	items, err := s.ADB.FindWithReads(ctx, bson.M{"userId": bson.M{"$ne": user.ID}}, user.ID)
	if err != nil {
		return false, err
	}
	inbox := readstate.Inbox(items, user.ID)
	if len(inbox) == 0 {
		return false, nil
	}

	digest := make([]templates.DigestItem, 0, len(inbox))
	for _, v := range inbox {
		item := templates.DigestItem{Name: v.Name, Description: v.Description, CreatedAt: v.CreatedAt}
		if v.User != nil {
			item.Author = strings.TrimSpace(v.User.Firstname + " " + v.User.Lastname)
		}
		digest = append(digest, item)
	}

	name := strings.TrimSpace(user.Firstname + " " + user.Lastname)
	err = s.Mailer.Send(ctx, user.Email, name,
		templates.DigestSubject(len(digest)),
		templates.RenderUnreadDigest(user.Firstname, digest, s.BaseURL),
		templates.RenderUnreadDigestText(user.Firstname, digest, s.BaseURL),
	)
	if err != nil {
		zap.S().Warnw("failed to send unread digest", "userId", user.ID.Hex(), "error", err)
		return false, nil
	}
	return true, nil
}

// PurgeExpiredTokens removes revocations whose token would have expired anyway
func (s *Scheduler) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.TDB.DeleteExpired(ctx, s.now().UTC())
}
