package store

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/hsuden/wellatlas/models"
)

// jobNumberAttempts bounds the synthesize-and-retry loop for generated
// job numbers.
const jobNumberAttempts = 5

// CreateJob inserts a job for a site. A blank jobNumber is synthesized
// from the current timestamp plus a small random offset; the unique
// index on job_number backstops the generator, and generation retries on
// collision.
func (ds *DataStore) CreateJob(siteID uint, jobNumber, category, description string) (*models.Job, error) {
	var site models.Site
	if err := ds.DB.First(&site, siteID).Error; err != nil {
		return nil, err
	}

	synthesize := jobNumber == ""
	for attempt := 0; ; attempt++ {
		if synthesize {
			jobNumber = synthJobNumber(time.Now().UTC())
		}
		job := models.Job{
			SiteID:      siteID,
			JobNumber:   jobNumber,
			JobCategory: category,
			Description: description,
		}
		err := ds.DB.Create(&job).Error
		if err == nil {
			return &job, nil
		}
		if !synthesize || !errors.Is(err, gorm.ErrDuplicatedKey) || attempt >= jobNumberAttempts {
			return nil, err
		}
	}
}

// synthJobNumber builds a number in the yyjjjHHMM shape the crews are
// used to, offset by 1..9 so two jobs created in the same minute rarely
// need a retry.
func synthJobNumber(now time.Time) string {
	base := now.Year()%100*10000000 + now.YearDay()*10000 + now.Hour()*100 + now.Minute()
	return fmt.Sprintf("%d", base+rand.Intn(9)+1)
}

// GetJob fetches a job scoped to its site.
func (ds *DataStore) GetJob(siteID, jobID uint) (*models.Job, error) {
	var job models.Job
	if err := ds.DB.Where("id = ? AND site_id = ?", jobID, siteID).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// GetJobByID fetches a job regardless of site or deletion state.
func (ds *DataStore) GetJobByID(id uint) (*models.Job, error) {
	var job models.Job
	if err := ds.DB.First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobsForSite returns a site's live jobs, newest first.
func (ds *DataStore) ListJobsForSite(siteID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := ds.DB.
		Where("site_id = ? AND deleted = ?", siteID, false).
		Order("created_at DESC, id DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListJobsBySiteIDs batch-loads jobs for a set of sites in one query.
func (ds *DataStore) ListJobsBySiteIDs(siteIDs []uint, includeDeleted bool) ([]models.Job, error) {
	if len(siteIDs) == 0 {
		return nil, nil
	}
	q := ds.DB.Where("site_id IN ?", siteIDs)
	if !includeDeleted {
		q = q.Where("deleted = ?", false)
	}

	var jobs []models.Job
	if err := q.Order("created_at DESC, id DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateJob replaces job number, category and description, scoped to the
// site.
func (ds *DataStore) UpdateJob(siteID, jobID uint, jobNumber, category, description string) (*models.Job, error) {
	job, err := ds.GetJob(siteID, jobID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"job_number":   jobNumber,
		"job_category": category,
		"description":  description,
	}
	if err := ds.DB.Model(job).Updates(updates).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// SetJobDeleted flips the soft-delete flag, scoped to the site.
// Idempotent; a missing id is a no-op.
func (ds *DataStore) SetJobDeleted(siteID, jobID uint, deleted bool) error {
	return ds.DB.Model(&models.Job{}).
		Where("id = ? AND site_id = ?", jobID, siteID).
		Update("deleted", deleted).Error
}
