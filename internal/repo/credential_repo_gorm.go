package repo

import (
	"errors"

	"gorm.io/gorm"

	"passvault/internal/domain"
)

type CredentialRepo struct{ db *gorm.DB }

func NewCredentialRepo(db *gorm.DB) *CredentialRepo { return &CredentialRepo{db: db} }

func (r *CredentialRepo) Create(c *domain.Credential) error { return r.db.Create(c).Error }

func (r *CredentialRepo) FindByID(id string) (*domain.Credential, error) {
	var c domain.Credential
	err := r.db.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CredentialRepo) ListAll() ([]domain.Credential, error) {
	var cs []domain.Credential
	err := r.db.Order("created_at desc").Find(&cs).Error
	return cs, err
}

func (r *CredentialRepo) ListByOwner(ownerID string) ([]domain.Credential, error) {
	var cs []domain.Credential
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at desc").Find(&cs).Error
	return cs, err
}

func (r *CredentialRepo) Update(c *domain.Credential) error { return r.db.Save(c).Error }

// Delete removes the row permanently; there is no soft delete for secrets.
func (r *CredentialRepo) Delete(id string) (bool, error) {
	res := r.db.Where("id = ?", id).Delete(&domain.Credential{})
	return res.RowsAffected > 0, res.Error
}
