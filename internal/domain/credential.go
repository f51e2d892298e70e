package domain

import "time"

// Credential stores one site login. Secret holds the encrypted envelope,
// never the plaintext; ownership never transfers.
type Credential struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string    `gorm:"index;size:36;not null" json:"ownerId"`
	Website   string    `gorm:"size:2048;not null" json:"website"`
	Username  string    `gorm:"size:191;not null" json:"username"`
	Secret    string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Credential) TableName() string { return "credentials" }

type CredentialRepository interface {
	Create(c *Credential) error
	FindByID(id string) (*Credential, error)
	ListAll() ([]Credential, error)
	ListByOwner(ownerID string) ([]Credential, error)
	Update(c *Credential) error
	Delete(id string) (bool, error)
}
