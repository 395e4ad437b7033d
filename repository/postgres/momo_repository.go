package postgres

import (
	"github.com/essomba/schoolhub/apperror"
	"github.com/essomba/schoolhub/model"
	"gorm.io/gorm"
)

type PostgresMomoRepository struct {
	db *gorm.DB
}

func NewMomoRepository(db *gorm.DB) *PostgresMomoRepository {
	return &PostgresMomoRepository{db: db}
}

// GetAPIUser returns the recorded provider identity, or a not-found error
// when none has been provisioned yet.
func (r *PostgresMomoRepository) GetAPIUser() (*model.MomoAPIUser, error) {
	var apiUser model.MomoAPIUser
	if err := r.db.Order("id ASC").First(&apiUser).Error; err != nil {
		return nil, apperror.FromDB(err, "momo api user")
	}
	return &apiUser, nil
}

func (r *PostgresMomoRepository) SaveAPIUser(referenceID, apiKey string) (*model.MomoAPIUser, error) {
	apiUser := model.MomoAPIUser{
		ReferenceID: referenceID,
		APIKey:      apiKey,
	}
	if err := r.db.Create(&apiUser).Error; err != nil {
		return nil, apperror.FromDB(err, "momo api user")
	}
	return &apiUser, nil
}

func (r *PostgresMomoRepository) CreateTransaction(txn *model.MomoTransaction) error {
	if err := r.db.Create(txn).Error; err != nil {
		return apperror.FromDB(err, "momo transaction")
	}
	return nil
}

func (r *PostgresMomoRepository) GetTransactionByExternalID(externalID string) (*model.MomoTransaction, error) {
	var txn model.MomoTransaction
	if err := r.db.Where("external_id = ?", externalID).First(&txn).Error; err != nil {
		return nil, apperror.FromDB(err, "momo transaction")
	}
	return &txn, nil
}

// UpdateTransactionStatus applies the provider's callback outcome. This is
// the only mutation path for a transaction after creation.
func (r *PostgresMomoRepository) UpdateTransactionStatus(externalID, status, financialTransactionID, reason string) (*model.MomoTransaction, error) {
	var txn model.MomoTransaction
	if err := r.db.Where("external_id = ?", externalID).First(&txn).Error; err != nil {
		return nil, apperror.FromDB(err, "momo transaction")
	}

	txn.Status = status
	txn.FinancialTransactionID = financialTransactionID
	txn.Reason = reason
	if err := r.db.Save(&txn).Error; err != nil {
		return nil, apperror.FromDB(err, "momo transaction")
	}
	return &txn, nil
}

func (r *PostgresMomoRepository) ListTransactions(filter model.ListFilter) ([]model.MomoTransaction, int, error) {
	var txns []model.MomoTransaction
	var total int64

	query := r.db.Model(&model.MomoTransaction{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("external_id ILIKE ? OR party_id ILIKE ? OR status ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "momo transaction")
	}
	if err := applyPagination(query, filter).Order("created_at DESC").Find(&txns).Error; err != nil {
		return nil, 0, apperror.FromDB(err, "momo transaction")
	}
	return txns, int(total), nil
}
