package repository

import (
	"errors"
	"time"

	"github.com/dujiao-next/tableorder/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartSnapshotRepository 会话快照数据访问接口
type CartSnapshotRepository interface {
	Get(key string) (*models.CartSnapshot, error)
	Upsert(key, payload string) error
	Delete(key string) error
	WithTx(tx *gorm.DB) *GormCartSnapshotRepository
}

// GormCartSnapshotRepository GORM 实现
type GormCartSnapshotRepository struct {
	db *gorm.DB
}

// NewCartSnapshotRepository 创建会话快照仓库
func NewCartSnapshotRepository(db *gorm.DB) *GormCartSnapshotRepository {
	return &GormCartSnapshotRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartSnapshotRepository) WithTx(tx *gorm.DB) *GormCartSnapshotRepository {
	if tx == nil {
		return r
	}
	return &GormCartSnapshotRepository{db: tx}
}

// Get 读取快照
func (r *GormCartSnapshotRepository) Get(key string) (*models.CartSnapshot, error) {
	var snapshot models.CartSnapshot
	if err := r.db.Where("session_key = ?", key).First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

// Upsert 写入或覆盖快照
func (r *GormCartSnapshotRepository) Upsert(key, payload string) error {
	snapshot := models.CartSnapshot{
		SessionKey: key,
		Payload:    payload,
		UpdatedAt:  time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snapshot).Error
}

// Delete 删除快照
func (r *GormCartSnapshotRepository) Delete(key string) error {
	return r.db.Where("session_key = ?", key).Delete(&models.CartSnapshot{}).Error
}
