package store

import (
	"strings"

	"github.com/hsuden/wellatlas/models"
)

// AddNote attaches a note to a site. A blank or whitespace-only body is
// silently dropped and returns (nil, nil).
func (ds *DataStore) AddNote(siteID uint, body string) (*models.Note, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, nil
	}

	note := models.Note{SiteID: siteID, Body: body}
	if err := ds.DB.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// AddJobNote attaches a note to a job with the same blank-body rule as
// AddNote.
func (ds *DataStore) AddJobNote(jobID uint, body string) (*models.JobNote, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, nil
	}

	note := models.JobNote{JobID: jobID, Body: body}
	if err := ds.DB.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// ListNotesForSite returns a site's notes, newest first.
func (ds *DataStore) ListNotesForSite(siteID uint) ([]models.Note, error) {
	var notes []models.Note
	err := ds.DB.Where("site_id = ?", siteID).Order("created_at DESC, id DESC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// ListNotesBySiteIDs batch-loads notes for a set of sites in one query.
func (ds *DataStore) ListNotesBySiteIDs(siteIDs []uint) ([]models.Note, error) {
	if len(siteIDs) == 0 {
		return nil, nil
	}
	var notes []models.Note
	err := ds.DB.Where("site_id IN ?", siteIDs).Order("created_at DESC, id DESC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// ListJobNotes returns a job's notes, newest first.
func (ds *DataStore) ListJobNotes(jobID uint) ([]models.JobNote, error) {
	var notes []models.JobNote
	err := ds.DB.Where("job_id = ?", jobID).Order("created_at DESC, id DESC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// ListJobNotesByJobIDs batch-loads notes for a set of jobs in one query.
func (ds *DataStore) ListJobNotesByJobIDs(jobIDs []uint) ([]models.JobNote, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}
	var notes []models.JobNote
	err := ds.DB.Where("job_id IN ?", jobIDs).Order("created_at DESC, id DESC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}
