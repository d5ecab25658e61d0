package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"homiee/internal/models"
)

// Options configures the demo seeder.
type Options struct {
	NumUsers        int
	PostsPerUser    int
	MessagesPerChat int
	Password        string
}

// Factory builds demo entities and persists them to the database.
// Intended for development only.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.PostsPerUser <= 0 {
		opts.PostsPerUser = 3
	}
	if opts.MessagesPerChat <= 0 {
		opts.MessagesPerChat = 5
	}
	if opts.Password == "" {
		opts.Password = "password123"
	}
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser persists a demo user with hobbies drawn from the catalog.
func (f *Factory) CreateUser(catalog []models.Community) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(f.opts.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	hobbies := models.StringList{}
	communities := models.StringList{}
	for _, c := range f.pickCommunities(catalog) {
		hobbies = append(hobbies, c.Name)
		communities = append(communities, c.Name)
	}

	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	user := &models.User{
		FirstName:   first,
		LastName:    last,
		UserName:    strings.ToLower(fmt.Sprintf("%s%s%d", first, last, f.rng.Intn(10000))),
		Email:       strings.ToLower(fmt.Sprintf("%s.%s%d@example.com", first, last, f.rng.Intn(10000))),
		Password:    string(hashed),
		Hobbies:     hobbies,
		Description: gofakeit.Sentence(8),
		Communities: communities,
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a demo post for the user, spread over the last 90 days.
func (f *Factory) CreatePost(user *models.User) (*models.Post, error) {
	tag := strings.ToLower(gofakeit.Word())
	post := &models.Post{
		UserID:    user.ID,
		Content:   fmt.Sprintf("%s #%s", gofakeit.Sentence(10), tag),
		Hashtags:  models.StringList{tag},
		Likes:     f.rng.Intn(40),
		CreatedAt: time.Now().Add(-time.Duration(f.rng.Intn(90*24)) * time.Hour),
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a demo comment by sender on the post.
func (f *Factory) CreateComment(post *models.Post, sender *models.User) error {
	comment := &models.Comment{
		PostID: post.ID,
		Sender: sender.Snapshot(),
		Text:   gofakeit.Sentence(6),
	}
	return f.db.Create(comment).Error
}

// CreateChatMessage persists a demo text message in the thread.
func (f *Factory) CreateChatMessage(thread *models.ChatThread, sender *models.User) error {
	message := &models.ChatMessage{
		ThreadID: thread.ID,
		Sender:   sender.Snapshot(),
		Text:     gofakeit.Sentence(7),
		Type:     models.ChatMessageText,
	}
	return f.db.Create(message).Error
}

// pickCommunities picks one to three distinct communities from the catalog.
func (f *Factory) pickCommunities(catalog []models.Community) []models.Community {
	if len(catalog) == 0 {
		return nil
	}
	n := 1 + f.rng.Intn(3)
	if n > len(catalog) {
		n = len(catalog)
	}
	picked := make([]models.Community, len(catalog))
	copy(picked, catalog)
	f.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}
