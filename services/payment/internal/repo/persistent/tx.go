package persistent

import "gorm.io/gorm"

// TxManager opens one database transaction and hands its handle to fn.
// Repositories rebound onto that handle with WithTx commit or roll back
// together with it.
type TxManager interface {
	Do(fn func(tx *gorm.DB) error) error
}

type txManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) Do(fn func(tx *gorm.DB) error) error {
	return m.db.Transaction(fn)
}
