package persistent

import (
	"fanvault/services/payment/internal/entity"
	"fanvault/services/payment/internal/model"
)

// Optional uuid columns are pointers on the model side so that absent values
// reach Postgres as NULL, not as an empty string.
func optionalID(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromOptionalID(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ToOrderEntity(m *model.OrderModel) *entity.Order {
	if m == nil {
		return nil
	}

	return &entity.Order{
		ID:                m.ID,
		UserID:            m.UserID,
		CreatorID:         fromOptionalID(m.CreatorID),
		ReferenceType:     entity.ReferenceType(m.ReferenceType),
		ReferenceID:       m.ReferenceID,
		Amount:            m.Amount,
		FeePercent:        m.FeePercent,
		Fee:               m.Fee,
		Net:               m.Net,
		Status:            entity.OrderStatus(m.Status),
		ProviderPaymentID: m.ProviderPaymentID,
		CreatedAt:         m.CreatedAt,
		CompletedAt:       m.CompletedAt,
	}
}

func ToOrderModel(e *entity.Order) *model.OrderModel {
	if e == nil {
		return nil
	}

	return &model.OrderModel{
		ID:                e.ID,
		UserID:            e.UserID,
		CreatorID:         optionalID(e.CreatorID),
		ReferenceType:     string(e.ReferenceType),
		ReferenceID:       e.ReferenceID,
		Amount:            e.Amount,
		FeePercent:        e.FeePercent,
		Fee:               e.Fee,
		Net:               e.Net,
		Status:            string(e.Status),
		ProviderPaymentID: e.ProviderPaymentID,
		CreatedAt:         e.CreatedAt,
		CompletedAt:       e.CompletedAt,
	}
}

func ToLedgerEntryEntity(m *model.LedgerEntryModel) *entity.LedgerEntry {
	if m == nil {
		return nil
	}

	return &entity.LedgerEntry{
		ID:          m.ID,
		OrderID:     m.OrderID,
		UserID:      fromOptionalID(m.UserID),
		Amount:      m.Amount,
		Role:        entity.LedgerRole(m.Role),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func ToLedgerEntryModel(e *entity.LedgerEntry) *model.LedgerEntryModel {
	if e == nil {
		return nil
	}

	return &model.LedgerEntryModel{
		ID:          e.ID,
		OrderID:     e.OrderID,
		UserID:      optionalID(e.UserID),
		Amount:      e.Amount,
		Role:        string(e.Role),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

func ToWalletEntity(m *model.WalletModel) *entity.Wallet {
	if m == nil {
		return nil
	}

	return &entity.Wallet{
		ID:           m.ID,
		UserID:       m.UserID,
		StarsBalance: m.StarsBalance,
		TotalEarned:  m.TotalEarned,
		TotalSpent:   m.TotalSpent,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
