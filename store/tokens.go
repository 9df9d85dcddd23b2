package store

import "github.com/hsuden/wellatlas/models"

// CreateShareToken inserts a token row. The unique index on the token
// column surfaces a collision as gorm.ErrDuplicatedKey so the issuer can
// regenerate.
func (ds *DataStore) CreateShareToken(t *models.ShareToken) error {
	return ds.DB.Create(t).Error
}

// GetShareToken looks a token up scoped to its kind, so a job token can
// never resolve through the customer share path and vice versa. The
// target is not checked: a token stays resolvable even when its target
// has since been deleted.
func (ds *DataStore) GetShareToken(token, kind string) (*models.ShareToken, error) {
	var t models.ShareToken
	if err := ds.DB.Where("token = ? AND kind = ?", token, kind).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
