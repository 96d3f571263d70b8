package seed

import (
	"fmt"

	"glimpse/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInAccount is a permanent demo profile available in every
// development database.
type BuiltInAccount struct {
	ID       string
	Username string
	FullName string
	Bio      string
}

// BuiltInAccounts defines the demo profiles local frontends can log in as.
var BuiltInAccounts = []BuiltInAccount{
	{ID: "user_demo_alice", Username: "alice", FullName: "Alice Monroe", Bio: "Coffee, cameras, city walks."},
	{ID: "user_demo_ben", Username: "ben", FullName: "Ben Okafor", Bio: "Street photography and ramen."},
	{ID: "user_demo_chloe", Username: "chloe", FullName: "Chloe Tan", Bio: "Plants, pottery, occasional sunsets."},
}

// Accounts seeds the permanent demo profiles. Existing rows are left
// untouched so the operation is idempotent.
func Accounts(db *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	for _, item := range BuiltInAccounts {
		profile := models.Profile{
			ID:        item.ID,
			Username:  item.Username,
			Email:     item.Username + "@glimpse.local",
			FullName:  item.FullName,
			Bio:       item.Bio,
			AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", item.ID),
			Password:  string(hashed),
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&profile).Error; err != nil {
			return fmt.Errorf("seed demo account %s: %w", item.Username, err)
		}
	}
	return nil
}
