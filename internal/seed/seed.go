package seed

import (
	"fmt"
	"log"

	"glimpse/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with generated social data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		opts:    opts,
	}
}

// ClearAll removes all seeded data. Tables are truncated child-first so
// foreign keys never block the wipe.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []interface{}{
		&models.Notification{},
		&models.Message{},
		&models.Story{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Post{},
		&models.Profile{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	return nil
}

// SeedSocialMesh creates profiles and a follow graph between them. Each
// profile follows roughly a quarter of the others.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.Profile, error) {
	log.Printf("Creating %d profiles...", numUsers)
	profiles := make([]*models.Profile, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		p, err := s.factory.CreateProfile()
		if err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	log.Println("Wiring follow graph...")
	for _, follower := range profiles {
		for _, target := range profiles {
			if follower.ID == target.ID {
				continue
			}
			if s.factory.rng.Intn(4) != 0 {
				continue
			}
			if err := s.factory.CreateFollow(follower, target); err != nil {
				return nil, fmt.Errorf("create follow: %w", err)
			}
		}
	}
	return profiles, nil
}

// SeedEngagement creates posts for the given profiles plus likes, comments
// and the notifications that real activity would have produced.
func (s *Seeder) SeedEngagement(profiles []*models.Profile, numPosts int) ([]*models.Post, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profiles to attach posts to")
	}

	log.Printf("Creating %d posts...", numPosts)
	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := profiles[s.factory.rng.Intn(len(profiles))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}

	log.Println("Creating likes and comments...")
	for _, post := range posts {
		author := profileByID(profiles, post.UserID)
		numLikes := s.factory.rng.Intn(len(profiles))
		for _, liker := range pickProfiles(s.factory.rng.Perm(len(profiles)), profiles, numLikes) {
			if liker.ID == post.UserID {
				continue
			}
			if err := s.factory.CreateLike(liker, post); err != nil {
				return nil, fmt.Errorf("create like: %w", err)
			}
			if author != nil {
				if err := s.factory.CreateNotification(author, liker,
					models.NotificationTypeLike, "liked your post"); err != nil {
					return nil, fmt.Errorf("create like notification: %w", err)
				}
			}
		}

		numComments := s.factory.rng.Intn(5)
		for i := 0; i < numComments; i++ {
			commenter := profiles[s.factory.rng.Intn(len(profiles))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return nil, fmt.Errorf("create comment: %w", err)
			}
			if author != nil && commenter.ID != author.ID {
				if err := s.factory.CreateNotification(author, commenter,
					models.NotificationTypeComment, "commented on your post"); err != nil {
					return nil, fmt.Errorf("create comment notification: %w", err)
				}
			}
		}
	}
	return posts, nil
}

// SeedConversations creates direct-message history between random pairs.
func (s *Seeder) SeedConversations(profiles []*models.Profile, numConversations int) error {
	if len(profiles) < 2 {
		return nil
	}
	log.Printf("Creating %d conversations...", numConversations)
	for i := 0; i < numConversations; i++ {
		a := profiles[s.factory.rng.Intn(len(profiles))]
		b := profiles[s.factory.rng.Intn(len(profiles))]
		if a.ID == b.ID {
			continue
		}
		numMessages := s.factory.rng.Intn(10) + 2
		for m := 0; m < numMessages; m++ {
			sender, recipient := a, b
			if m%2 == 1 {
				sender, recipient = b, a
			}
			if _, err := s.factory.CreateMessage(sender, recipient); err != nil {
				return fmt.Errorf("create message: %w", err)
			}
		}
	}
	return nil
}

// SeedStories gives roughly half of the profiles a story, some expired.
func (s *Seeder) SeedStories(profiles []*models.Profile) error {
	log.Println("Creating stories...")
	for _, p := range profiles {
		if s.factory.rng.Intn(2) != 0 {
			continue
		}
		if _, err := s.factory.CreateStory(p); err != nil {
			return fmt.Errorf("create story: %w", err)
		}
	}
	return nil
}

func profileByID(profiles []*models.Profile, id string) *models.Profile {
	for _, p := range profiles {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func pickProfiles(perm []int, profiles []*models.Profile, n int) []*models.Profile {
	if n > len(perm) {
		n = len(perm)
	}
	out := make([]*models.Profile, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, profiles[idx])
	}
	return out
}
