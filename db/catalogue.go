package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomRecord is a locally cached snapshot of a room fetched from the API.
// Data holds the raw JSON body so the catalogue can be browsed offline.
type RoomRecord struct {
	ID         uint   `gorm:"primaryKey"`
	RemoteID   string `gorm:"uniqueIndex"`
	RoomNumber string
	Status     string
	RentPrice  int64
	Data       string
}

// RoomCatalogueRepository defines decoupled operations for the local room catalogue.
type RoomCatalogueRepository interface {
	Put(ctx context.Context, rec RoomRecord) error
	GetByRemoteID(ctx context.Context, remoteID string) (*RoomRecord, error)
	List(ctx context.Context) ([]RoomRecord, error)
	SearchByNumber(ctx context.Context, numberSubstr string) ([]RoomRecord, error)
	Clear(ctx context.Context) error
}

// gormRoomCatalogueRepo is a GORM-backed implementation of RoomCatalogueRepository.
// Use constructor NewRoomCatalogueRepository to obtain an instance.
type gormRoomCatalogueRepo struct{ db *gorm.DB }

// NewRoomCatalogueRepository creates a RoomCatalogueRepository. Accepts *gorm.DB to avoid global access.
func NewRoomCatalogueRepository(db *gorm.DB) RoomCatalogueRepository {
	return &gormRoomCatalogueRepo{db: db}
}

func (r *gormRoomCatalogueRepo) Put(ctx context.Context, rec RoomRecord) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "remote_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"room_number", "status", "rent_price", "data"}),
	}).Create(&rec).Error
}

func (r *gormRoomCatalogueRepo) GetByRemoteID(ctx context.Context, remoteID string) (*RoomRecord, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var rec RoomRecord
	err := r.db.WithContext(ctx).First(&rec, "remote_id = ?", remoteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *gormRoomCatalogueRepo) List(ctx context.Context) ([]RoomRecord, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var recs []RoomRecord
	if err := r.db.WithContext(ctx).Order("room_number").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *gormRoomCatalogueRepo) SearchByNumber(ctx context.Context, numberSubstr string) ([]RoomRecord, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var recs []RoomRecord
	if err := r.db.WithContext(ctx).Where("room_number LIKE ?", "%"+numberSubstr+"%").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *gormRoomCatalogueRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&RoomRecord{}).Error
}
