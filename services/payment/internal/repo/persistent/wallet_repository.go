package persistent

import (
	"fanvault/services/payment/internal/entity"
	"fanvault/services/payment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WalletRepository mutates wallets only through atomic increments so that
// concurrent settlements for the same user cannot lose updates.
type WalletRepository interface {
	WithTx(tx *gorm.DB) WalletRepository
	GetOrCreate(userID string) (*entity.Wallet, error)
	// CreditEarnings adds net to the creator's spendable balance and
	// lifetime earnings in one statement.
	CreditEarnings(userID string, amount int) error
	// AddSpent bumps the payer's lifetime spend counter.
	AddSpent(userID string, amount int) error
	// TryDebit decrements the spendable balance only when it covers amount,
	// reporting whether the debit happened. This is the insufficient-funds
	// check and the debit in a single conditional update.
	TryDebit(userID string, amount int) (bool, error)
}

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) WithTx(tx *gorm.DB) WalletRepository {
	return &walletRepository{db: tx}
}

func (r *walletRepository) GetOrCreate(userID string) (*entity.Wallet, error) {
	var walletModel model.WalletModel
	if err := r.db.Where("user_id = ?", userID).First(&walletModel).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			walletModel = model.WalletModel{
				ID:     uuid.New().String(),
				UserID: userID,
			}
			if err := r.db.Create(&walletModel).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return ToWalletEntity(&walletModel), nil
}

func (r *walletRepository) CreditEarnings(userID string, amount int) error {
	if _, err := r.GetOrCreate(userID); err != nil {
		return err
	}
	return r.db.Model(&model.WalletModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"stars_balance": gorm.Expr("stars_balance + ?", amount),
			"total_earned":  gorm.Expr("total_earned + ?", amount),
		}).Error
}

func (r *walletRepository) AddSpent(userID string, amount int) error {
	if _, err := r.GetOrCreate(userID); err != nil {
		return err
	}
	return r.db.Model(&model.WalletModel{}).
		Where("user_id = ?", userID).
		Update("total_spent", gorm.Expr("total_spent + ?", amount)).Error
}

func (r *walletRepository) TryDebit(userID string, amount int) (bool, error) {
	if _, err := r.GetOrCreate(userID); err != nil {
		return false, err
	}
	result := r.db.Model(&model.WalletModel{}).
		Where("user_id = ? AND stars_balance >= ?", userID, amount).
		Update("stars_balance", gorm.Expr("stars_balance - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
