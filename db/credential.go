package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Credential is the stored session credential: the bearer token handed out by
// the authenticate endpoint plus the username it belongs to. Exactly one row
// exists at a time; it survives process restarts the same way a browser keeps
// its token in local storage under a fixed key.
type Credential struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	Token    string `json:"access_token,omitempty"`
	Username string `json:"username,omitempty"`
}

// CredentialRepository defines decoupled operations for credential persistence.
type CredentialRepository interface {
	// Get returns the stored credential, or nil when no session exists.
	Get(ctx context.Context) (*Credential, error)
	// Set replaces the stored credential.
	Set(ctx context.Context, cred *Credential) error
	// Clear removes the stored credential.
	Clear(ctx context.Context) error
}

// gormCredentialRepo is a GORM-backed implementation of CredentialRepository.
// Use constructor NewCredentialRepository to obtain an instance.
type gormCredentialRepo struct{ db *gorm.DB }

// NewCredentialRepository creates a CredentialRepository. Accepts *gorm.DB to avoid global access.
func NewCredentialRepository(db *gorm.DB) CredentialRepository { return &gormCredentialRepo{db: db} }

func (r *gormCredentialRepo) Get(ctx context.Context) (*Credential, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var cred Credential
	err := r.db.WithContext(ctx).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *gormCredentialRepo) Set(ctx context.Context, cred *Credential) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	cred.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "username"}),
	}).Create(cred).Error
}

func (r *gormCredentialRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Credential{}).Error
}
