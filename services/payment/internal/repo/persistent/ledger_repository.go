package persistent

import (
	"fanvault/services/payment/internal/entity"
	"fanvault/services/payment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LedgerRepository interface {
	WithTx(tx *gorm.DB) LedgerRepository
	CreateEntries(entries []*entity.LedgerEntry) error
	GetByOrderID(orderID string) ([]*entity.LedgerEntry, error)
	GetByUserID(userID string, limit, offset int) ([]*entity.LedgerEntry, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) WithTx(tx *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: tx}
}

func (r *ledgerRepository) CreateEntries(entries []*entity.LedgerEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			entryModel := ToLedgerEntryModel(entry)
			if entryModel.ID == "" {
				entryModel.ID = uuid.New().String()
			}
			if err := tx.Create(entryModel).Error; err != nil {
				return err
			}
			*entry = *ToLedgerEntryEntity(entryModel)
		}
		return nil
	})
}

func (r *ledgerRepository) GetByOrderID(orderID string) ([]*entity.LedgerEntry, error) {
	var entryModels []model.LedgerEntryModel
	if err := r.db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toLedgerEntities(entryModels), nil
}

func (r *ledgerRepository) GetByUserID(userID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	var entryModels []model.LedgerEntryModel
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toLedgerEntities(entryModels), nil
}

func toLedgerEntities(entryModels []model.LedgerEntryModel) []*entity.LedgerEntry {
	entries := make([]*entity.LedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = ToLedgerEntryEntity(&entryModels[i])
	}
	return entries
}
