package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Preset bundles the knobs for a named seeding profile.
type Preset struct {
	Users           int
	Posts           int
	FollowFraction  float64
	LikesPerPost    int
	CommentsPerPost int
}

// Presets available to `cmd/seed -preset`.
var Presets = map[string]Preset{
	"Minimal": {
		Users:           5,
		Posts:           20,
		FollowFraction:  0.5,
		LikesPerPost:    1,
		CommentsPerPost: 1,
	},
	"MegaPopulated": {
		Users:           200,
		Posts:           2000,
		FollowFraction:  0.15,
		LikesPerPost:    8,
		CommentsPerPost: 3,
	},
}

// Seeder populates the database with generated social-graph data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts ...Options) *Seeder {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	return &Seeder{
		db:      db,
		factory: NewFactory(db, o),
		//nolint:gosec // Weak random number generator is fine for seeding
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data, resetting identity counters.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE notifications, comments, likes, follows, posts, users RESTART IDENTITY CASCADE;`
	if err := s.db.Exec(sql).Error; err != nil {
		// sqlite used in tests has no TRUNCATE; fall back to per-table deletes.
		for _, table := range []string{"notifications", "comments", "likes", "follows", "posts", "users"} {
			if delErr := s.db.Exec("DELETE FROM " + table).Error; delErr != nil {
				return delErr
			}
		}
	}
	return nil
}

// SeedSocialMesh creates `numUsers` users and a follow graph among them.
// Each user follows roughly a third of the others.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	return s.seedSocialMesh(numUsers, 0.3)
}

func (s *Seeder) seedSocialMesh(numUsers int, followFraction float64) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user %d: %w", i, err)
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	var edges int
	for _, follower := range users {
		for _, followee := range users {
			if follower.ID == followee.ID {
				continue
			}
			if s.rng.Float64() >= followFraction {
				continue
			}
			if err := s.factory.CreateFollow(follower, followee); err != nil {
				return nil, fmt.Errorf("create follow %d->%d: %w", follower.ID, followee.ID, err)
			}
			edges++
		}
	}

	log.Printf("Seeded %d users with %d follow edges", len(users), edges)
	return users, nil
}

// SeedEngagement creates `numPosts` posts spread across `users`, then likes
// and comments on them with matching notifications for the post authors.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) ([]*models.Post, error) {
	return s.seedEngagement(users, numPosts, 3, 1)
}

func (s *Seeder) seedEngagement(users []*models.User, numPosts, likesPerPost, commentsPerPost int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to seed posts for")
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.rng.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}

	for _, post := range posts {
		likers := s.pickOthers(users, post.UserID, likesPerPost)
		for _, liker := range likers {
			if err := s.factory.CreateLike(liker, post); err != nil {
				continue // duplicate like, skip
			}
			if _, err := s.notifyAuthor(users, post, liker, models.NotificationKindLike, nil); err != nil {
				return nil, err
			}
		}

		commenters := s.pickOthers(users, post.UserID, commentsPerPost)
		for _, commenter := range commenters {
			comment, err := s.factory.CreateComment(commenter, post)
			if err != nil {
				return nil, fmt.Errorf("create comment: %w", err)
			}
			if _, err := s.notifyAuthor(users, post, commenter, models.NotificationKindComment, &comment.ID); err != nil {
				return nil, err
			}
		}
	}

	log.Printf("Seeded %d posts with engagement", len(posts))
	return posts, nil
}

// notifyAuthor creates a notification for the post author unless the actor
// is the author.
func (s *Seeder) notifyAuthor(users []*models.User, post *models.Post, actor *models.User, kind models.NotificationKind, commentID *uint) (*models.Notification, error) {
	if actor.ID == post.UserID {
		return nil, nil
	}
	var recipient *models.User
	for _, u := range users {
		if u.ID == post.UserID {
			recipient = u
			break
		}
	}
	if recipient == nil {
		return nil, nil
	}
	return s.factory.CreateNotification(recipient, actor, kind, post, func(n *models.Notification) {
		n.CommentID = commentID
		n.Read = s.rng.Float64() < 0.5
	})
}

// pickOthers selects up to n distinct users excluding the given user id.
func (s *Seeder) pickOthers(users []*models.User, exclude uint, n int) []*models.User {
	candidates := make([]*models.User, 0, len(users))
	for _, u := range users {
		if u.ID != exclude {
			candidates = append(candidates, u)
		}
	}
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}

// ApplyPreset runs a named preset end to end.
func (s *Seeder) ApplyPreset(name string) error {
	preset, ok := Presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}

	users, err := s.seedSocialMesh(preset.Users, preset.FollowFraction)
	if err != nil {
		return err
	}
	_, err = s.seedEngagement(users, preset.Posts, preset.LikesPerPost, preset.CommentsPerPost)
	return err
}
