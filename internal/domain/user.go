package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	Email            string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash     string    `gorm:"size:191;not null" json:"-"`
	Role             string    `gorm:"size:16;not null;default:user" json:"role"` // "user"/"admin"
	TwoFactorEnabled bool      `gorm:"not null;default:false" json:"-"`
	TwoFactorSecret  string    `gorm:"size:64" json:"-"` // base32 TOTP secret, enrollment flow not exposed yet
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(u *User) error
	Count() (int64, error)
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	List(offset, limit int, q string) ([]User, int64, error)
	Update(u *User) error
}
