// Package seed provides helpers to create demo data for development and
// testing. All seeded accounts share the same password.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"dinely/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password for every seeded account.
const DefaultPassword = "Password-123456!"

// Options configures the seeder.
type Options struct {
	NumUsers          int
	NumRestaurants    int
	MaxReviewsPerUser int
	ShouldClean       bool
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
	hash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	// One bcrypt hash for every account keeps seeding fast.
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		hash: string(hash),
	}, nil
}

// pastTime returns a timestamp up to maxDays in the past.
func (f *Factory) pastTime(maxDays int) time.Time {
	return time.Now().
		Add(-time.Duration(f.rand.Intn(maxDays*24)) * time.Hour).
		Add(-time.Duration(f.rand.Intn(60)) * time.Minute)
}

// BuildUser constructs an unpersisted user with fake profile data.
func (f *Factory) BuildUser(role models.Role) *models.User {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	username := strings.ToLower(fmt.Sprintf("%s%s%d", first, last, f.rand.Intn(10000)))

	return &models.User{
		UUID:      uuid.New(),
		FirstName: first,
		LastName:  last,
		Username:  username,
		Email:     strings.ToLower(fmt.Sprintf("%s@%s", username, gofakeit.DomainName())),
		Password:  f.hash,
		Role:      role,
		IsActive:  true,
		CreatedAt: f.pastTime(365),
	}
}

// BuildRestaurant constructs an unpersisted restaurant with fake venue data.
func (f *Factory) BuildRestaurant() *models.Restaurant {
	lat := gofakeit.Latitude()
	lon := gofakeit.Longitude()
	name := fmt.Sprintf("%s %s", gofakeit.LastName(), restaurantKinds[f.rand.Intn(len(restaurantKinds))])

	return &models.Restaurant{
		Name:        name,
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		Description: gofakeit.Paragraph(1, 3, 8, " "),
		Address:     gofakeit.Address().Address,
		Latitude:    &lat,
		Longitude:   &lon,
		Website:     gofakeit.URL(),
		CreatedAt:   f.pastTime(365),
	}
}

// BuildReview constructs an unpersisted review by the user for the restaurant.
func (f *Factory) BuildReview(user *models.User, restaurant *models.Restaurant) *models.Review {
	return &models.Review{
		Rating:       models.MinRating + f.rand.Intn(models.MaxRating-models.MinRating+1),
		Body:         gofakeit.Paragraph(1, 2, 10, " "),
		UserID:       user.ID,
		RestaurantID: restaurant.ID,
		CreatedAt:    f.pastTime(90),
	}
}

var restaurantKinds = []string{
	"Bistro", "Grill", "Kitchen", "Trattoria", "Diner", "Brasserie",
	"Cantina", "Taverna", "Noodle House", "Steakhouse", "Pizzeria", "Café",
}

// Seed populates the database with demo users, restaurants, and reviews.
// Each user reviews a random subset of restaurants, never the same one twice.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users, %d restaurants...", opts.NumUsers, opts.NumRestaurants)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f, err := NewFactory(db)
	if err != nil {
		return err
	}

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users (plus admin and superadmin)", len(users))

	restaurants, err := f.CreateRestaurants(opts.NumRestaurants)
	if err != nil {
		return fmt.Errorf("failed to create restaurants: %w", err)
	}
	log.Printf("created %d restaurants", len(restaurants))

	n, err := f.CreateReviews(users, restaurants, opts.MaxReviewsPerUser)
	if err != nil {
		return fmt.Errorf("failed to create reviews: %w", err)
	}
	log.Printf("created %d reviews", n)

	return nil
}

// CreateUsers persists n regular users plus one admin and one superadmin
// with well-known usernames.
func (f *Factory) CreateUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := f.BuildUser(models.RoleUser)
		if err := f.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	admin := f.BuildUser(models.RoleAdmin)
	admin.Username = "admin"
	admin.Email = "admin@dinely.local"
	if err := f.db.Create(admin).Error; err != nil {
		return nil, err
	}

	super := f.BuildUser(models.RoleSuperAdmin)
	super.Username = "superadmin"
	super.Email = "superadmin@dinely.local"
	if err := f.db.Create(super).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// CreateRestaurants persists n restaurants.
func (f *Factory) CreateRestaurants(n int) ([]*models.Restaurant, error) {
	restaurants := make([]*models.Restaurant, 0, n)
	for i := 0; i < n; i++ {
		restaurant := f.BuildRestaurant()
		if err := f.db.Create(restaurant).Error; err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, nil
}

// CreateReviews gives each user up to maxPerUser reviews, each for a distinct
// restaurant so the composite unique index is never violated.
func (f *Factory) CreateReviews(users []*models.User, restaurants []*models.Restaurant, maxPerUser int) (int, error) {
	if maxPerUser <= 0 {
		maxPerUser = 3
	}

	total := 0
	for _, user := range users {
		shuffled := make([]*models.Restaurant, len(restaurants))
		copy(shuffled, restaurants)
		f.rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		count := f.rand.Intn(maxPerUser + 1)
		if count > len(shuffled) {
			count = len(shuffled)
		}
		for _, restaurant := range shuffled[:count] {
			review := f.BuildReview(user, restaurant)
			if err := f.db.Create(review).Error; err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

// clearData removes all seeded rows; reviews go first so foreign keys hold
// even without cascades.
func clearData(db *gorm.DB) error {
	for _, model := range []any{&models.Review{}, &models.Restaurant{}, &models.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
