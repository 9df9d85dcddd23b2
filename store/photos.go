package store

import "github.com/hsuden/wellatlas/models"

// AddPhoto records an uploaded file against a site. The caller has
// already written the file to the upload directory under a
// collision-resistant name.
func (ds *DataStore) AddPhoto(siteID uint, filename, caption string) (*models.Photo, error) {
	photo := models.Photo{SiteID: siteID, Filename: filename, Caption: caption}
	if err := ds.DB.Create(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// AddJobPhoto records an uploaded file against a job.
func (ds *DataStore) AddJobPhoto(jobID uint, filename, caption string) (*models.JobPhoto, error) {
	photo := models.JobPhoto{JobID: jobID, Filename: filename, Caption: caption}
	if err := ds.DB.Create(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// AddCustomerPhoto records an uploaded file against a customer.
func (ds *DataStore) AddCustomerPhoto(customerID uint, filename, caption string) (*models.CustomerPhoto, error) {
	photo := models.CustomerPhoto{CustomerID: customerID, Filename: filename, Caption: caption}
	if err := ds.DB.Create(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListPhotosForSite returns a site's photos, newest first.
func (ds *DataStore) ListPhotosForSite(siteID uint) ([]models.Photo, error) {
	var photos []models.Photo
	err := ds.DB.Where("site_id = ?", siteID).Order("created_at DESC, id DESC").Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// ListPhotosBySiteIDs batch-loads photos for a set of sites in one query.
func (ds *DataStore) ListPhotosBySiteIDs(siteIDs []uint) ([]models.Photo, error) {
	if len(siteIDs) == 0 {
		return nil, nil
	}
	var photos []models.Photo
	err := ds.DB.Where("site_id IN ?", siteIDs).Order("created_at DESC, id DESC").Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// ListJobPhotos returns a job's photos, newest first.
func (ds *DataStore) ListJobPhotos(jobID uint) ([]models.JobPhoto, error) {
	var photos []models.JobPhoto
	err := ds.DB.Where("job_id = ?", jobID).Order("created_at DESC, id DESC").Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// ListJobPhotosByJobIDs batch-loads photos for a set of jobs in one
// query.
func (ds *DataStore) ListJobPhotosByJobIDs(jobIDs []uint) ([]models.JobPhoto, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}
	var photos []models.JobPhoto
	err := ds.DB.Where("job_id IN ?", jobIDs).Order("created_at DESC, id DESC").Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// ListCustomerPhotos returns a customer's photos, newest first.
func (ds *DataStore) ListCustomerPhotos(customerID uint) ([]models.CustomerPhoto, error) {
	var photos []models.CustomerPhoto
	err := ds.DB.Where("customer_id = ?", customerID).Order("created_at DESC, id DESC").Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}
