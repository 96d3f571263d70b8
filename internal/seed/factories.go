// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"glimpse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// DryRun builds entities without writing to the database.
	DryRun bool
	// SkipBcrypt stores a plaintext password for faster dev seeding.
	SkipBcrypt bool
	// MaxDays is how far back generated created_at timestamps spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
	rng    *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		nextID: 1000,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// localProfileID mirrors the ID shape the identity provider uses so seeded
// rows are indistinguishable from synced ones.
func localProfileID() string {
	return "user_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

// CreateProfile constructs and persists a sample profile.
// Optional override functions may modify the generated profile before saving.
func (f *Factory) CreateProfile(overrides ...func(*models.Profile)) (*models.Profile, error) {
	profile := &models.Profile{
		ID:        localProfileID(),
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		FullName:  gofakeit.Name(),
		Bio:       gofakeit.Sentence(10),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		profile.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		profile.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(profile)
	}

	if f.opts.DryRun {
		log.Printf("[dry-run] CreateProfile: %s (%s)", profile.Username, profile.ID)
		return profile, nil
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// BuildPost constructs a post without persisting it. Useful for batching.
func (f *Factory) BuildPost(profile *models.Profile, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		UserID:   profile.ID,
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		Caption:  gofakeit.Sentence(f.rng.Intn(12) + 3),
	}
	if f.rng.Intn(3) == 0 {
		post.Location = gofakeit.City()
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreatePost constructs and persists a single post.
func (f *Factory) CreatePost(profile *models.Profile, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(profile, overrides...)
	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		return post, nil
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment by the given profile on the given post.
func (f *Factory) CreateComment(profile *models.Profile, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:  post.ID,
		UserID:  profile.ID,
		Content: gofakeit.Sentence(f.rng.Intn(10) + 2),
	}
	for _, override := range overrides {
		override(comment)
	}
	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like edge between a profile and a post.
func (f *Factory) CreateLike(profile *models.Profile, post *models.Post) error {
	if f.opts.DryRun {
		return nil
	}
	like := &models.Like{PostID: post.ID, UserID: profile.ID}
	return f.db.Create(like).Error
}

// CreateFollow persists a directed follow edge.
func (f *Factory) CreateFollow(follower, following *models.Profile) error {
	if follower.ID == following.ID {
		return nil
	}
	if f.opts.DryRun {
		return nil
	}
	edge := &models.Follow{FollowerID: follower.ID, FollowingID: following.ID}
	return f.db.Create(edge).Error
}

// CreateMessage persists a direct message between two profiles.
func (f *Factory) CreateMessage(sender, recipient *models.Profile, overrides ...func(*models.Message)) (*models.Message, error) {
	msg := &models.Message{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Text:        gofakeit.Sentence(f.rng.Intn(8) + 1),
		Read:        f.rng.Intn(2) == 0,
	}
	for _, override := range overrides {
		override(msg)
	}
	if f.opts.DryRun {
		f.nextID++
		msg.ID = f.nextID
		return msg, nil
	}
	if err := f.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// CreateStory persists a story for the profile. Roughly a third of the
// generated stories are already expired to exercise the active filter.
func (f *Factory) CreateStory(profile *models.Profile, overrides ...func(*models.Story)) (*models.Story, error) {
	createdAt := time.Now().Add(-time.Duration(f.rng.Intn(36)) * time.Hour)
	story := &models.Story{
		UserID:    profile.ID,
		ImageURL:  fmt.Sprintf("https://picsum.photos/seed/story-%s/720/1280", gofakeit.UUID()),
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(models.StoryTTL),
	}
	for _, override := range overrides {
		override(story)
	}
	if f.opts.DryRun {
		f.nextID++
		story.ID = f.nextID
		return story, nil
	}
	if err := f.db.Create(story).Error; err != nil {
		return nil, err
	}
	return story, nil
}

// CreateNotification persists an activity notification.
func (f *Factory) CreateNotification(recipient, sender *models.Profile, typ models.NotificationType, message string) error {
	if recipient.ID == sender.ID {
		return nil
	}
	if f.opts.DryRun {
		return nil
	}
	n := &models.Notification{
		RecipientID: recipient.ID,
		SenderID:    sender.ID,
		Type:        typ,
		Message:     message,
		Read:        f.rng.Intn(3) == 0,
	}
	return f.db.Create(n).Error
}
