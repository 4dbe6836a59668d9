package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// roleLevels defines the privilege order: admin satisfies every gate a
// user satisfies. Unknown roles rank below everything.
var roleLevels = map[Role]int{
	RoleUser:  1,
	RoleAdmin: 2,
}

func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// AtLeast reports whether r meets or exceeds the required privilege level.
func (r Role) AtLeast(required Role) bool {
	return roleLevels[required] > 0 && roleLevels[r] >= roleLevels[required]
}

type User struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         Role   `json:"role" gorm:"not null;default:user"`
	// RefreshToken holds the single live refresh token for this user.
	// Overwritten on every login, cleared on logout.
	RefreshToken *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
