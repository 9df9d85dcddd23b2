package share

import "github.com/hsuden/wellatlas/models"

// JobNode is a job with its notes and photos.
type JobNode struct {
	models.Job
	Notes  []models.JobNote  `json:"notes"`
	Photos []models.JobPhoto `json:"photos"`
}

// SiteNode is a site with its jobs, notes and photos.
type SiteNode struct {
	models.Site
	Jobs   []JobNode      `json:"jobs"`
	Notes  []models.Note  `json:"notes"`
	Photos []models.Photo `json:"photos"`
}

// CustomerTree is the full record tree behind a customer share link.
type CustomerTree struct {
	Customer models.Customer `json:"customer"`
	Sites    []SiteNode      `json:"sites"`
}

// JobTree is the record tree behind a job share link: the job with its
// notes and photos, plus the owning site for context.
type JobTree struct {
	Site models.Site `json:"site"`
	Job  JobNode     `json:"job"`
}

// CustomerTree assembles the cascading read for a customer: the customer
// row, its sites, and every job, note and photo below them. Child tables
// are each loaded with a single IN query over the collected parent ids,
// so the query count stays constant regardless of tree size.
func (s *TokenService) CustomerTree(customerID uint) (*CustomerTree, error) {
	customer, err := s.store.GetCustomer(customerID)
	if err != nil {
		return nil, err
	}

	sites, err := s.store.ListSitesForCustomer(customerID, s.includeDeleted)
	if err != nil {
		return nil, err
	}

	siteIDs := make([]uint, len(sites))
	for i := range sites {
		siteIDs[i] = sites[i].ID
	}

	jobs, err := s.store.ListJobsBySiteIDs(siteIDs, s.includeDeleted)
	if err != nil {
		return nil, err
	}
	notes, err := s.store.ListNotesBySiteIDs(siteIDs)
	if err != nil {
		return nil, err
	}
	photos, err := s.store.ListPhotosBySiteIDs(siteIDs)
	if err != nil {
		return nil, err
	}

	jobIDs := make([]uint, len(jobs))
	for i := range jobs {
		jobIDs[i] = jobs[i].ID
	}
	jobNotes, err := s.store.ListJobNotesByJobIDs(jobIDs)
	if err != nil {
		return nil, err
	}
	jobPhotos, err := s.store.ListJobPhotosByJobIDs(jobIDs)
	if err != nil {
		return nil, err
	}

	jobNotesByJob := make(map[uint][]models.JobNote)
	for _, n := range jobNotes {
		jobNotesByJob[n.JobID] = append(jobNotesByJob[n.JobID], n)
	}
	jobPhotosByJob := make(map[uint][]models.JobPhoto)
	for _, p := range jobPhotos {
		jobPhotosByJob[p.JobID] = append(jobPhotosByJob[p.JobID], p)
	}
	jobsBySite := make(map[uint][]JobNode)
	for _, j := range jobs {
		jobsBySite[j.SiteID] = append(jobsBySite[j.SiteID], JobNode{
			Job:    j,
			Notes:  jobNotesByJob[j.ID],
			Photos: jobPhotosByJob[j.ID],
		})
	}
	notesBySite := make(map[uint][]models.Note)
	for _, n := range notes {
		notesBySite[n.SiteID] = append(notesBySite[n.SiteID], n)
	}
	photosBySite := make(map[uint][]models.Photo)
	for _, p := range photos {
		photosBySite[p.SiteID] = append(photosBySite[p.SiteID], p)
	}

	tree := &CustomerTree{Customer: *customer, Sites: make([]SiteNode, len(sites))}
	for i, site := range sites {
		tree.Sites[i] = SiteNode{
			Site:   site,
			Jobs:   jobsBySite[site.ID],
			Notes:  notesBySite[site.ID],
			Photos: photosBySite[site.ID],
		}
	}
	return tree, nil
}

// JobTree assembles the cascading read for a job share link. The job and
// its site resolve even when soft-deleted; only their child rows are
// loaded.
func (s *TokenService) JobTree(jobID uint) (*JobTree, error) {
	job, err := s.store.GetJobByID(jobID)
	if err != nil {
		return nil, err
	}
	site, err := s.store.GetSite(job.SiteID)
	if err != nil {
		return nil, err
	}
	notes, err := s.store.ListJobNotes(job.ID)
	if err != nil {
		return nil, err
	}
	photos, err := s.store.ListJobPhotos(job.ID)
	if err != nil {
		return nil, err
	}

	return &JobTree{
		Site: *site,
		Job:  JobNode{Job: *job, Notes: notes, Photos: photos},
	}, nil
}
