package store

import "github.com/hsuden/wellatlas/models"

// CreateCustomer inserts a customer. Name uniqueness is enforced by the
// store; a duplicate surfaces as gorm.ErrDuplicatedKey.
func (ds *DataStore) CreateCustomer(c *models.Customer) error {
	return ds.DB.Create(c).Error
}

// GetCustomer fetches a customer by id.
func (ds *DataStore) GetCustomer(id uint) (*models.Customer, error) {
	var c models.Customer
	if err := ds.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCustomerByName fetches a customer by exact name.
func (ds *DataStore) GetCustomerByName(name string) (*models.Customer, error) {
	var c models.Customer
	if err := ds.DB.Where("name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrCreateCustomer resolves a customer by name, creating a bare
// directory entry when none exists yet. Site writes use this so a site
// can always name its customer.
func (ds *DataStore) GetOrCreateCustomer(name string) (*models.Customer, error) {
	var c models.Customer
	if err := ds.DB.Where(models.Customer{Name: name}).FirstOrCreate(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCustomers returns the directory in alphabetical order.
func (ds *DataStore) ListCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	if err := ds.DB.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}
