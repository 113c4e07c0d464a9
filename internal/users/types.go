package users

import (
	"time"

	"github.com/flagsapp/flags-backend/pkg/db/models"
)

// UserDTO is the public shape of a user. The password hash never leaves the
// repository layer.
type UserDTO struct {
	ID                        string    `json:"id"`
	Email                     string    `json:"email"`
	Name                      string    `json:"name"`
	Sex                       *string   `json:"sex"`
	InterestedIn              *string   `json:"interestedIn"`
	Location                  *string   `json:"location"`
	HotTake                   *string   `json:"hotTake"`
	ImportantCategories       []string  `json:"importantCategories"`
	HasCompletedQuestionnaire bool      `json:"hasCompletedQuestionnaire"`
	IsAdmin                   bool      `json:"isAdmin"`
	CreatedAt                 time.Time `json:"createdAt"`
}

// ToDTO converts a stored user into its public shape.
func ToDTO(user *models.User) UserDTO {
	categories := make([]string, len(user.ImportantCategories))
	copy(categories, user.ImportantCategories)

	return UserDTO{
		ID:                        user.ID,
		Email:                     user.Email,
		Name:                      user.Name,
		Sex:                       user.Sex,
		InterestedIn:              user.InterestedIn,
		Location:                  user.Location,
		HotTake:                   user.HotTake,
		ImportantCategories:       categories,
		HasCompletedQuestionnaire: user.HasCompletedQuestionnaire,
		IsAdmin:                   user.IsAdmin,
		CreatedAt:                 user.CreatedAt,
	}
}
