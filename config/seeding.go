package config

import (
	"fmt"
	"log"
	"math/rand"

	"gorm.io/gorm"

	"github.com/hsuden/wellatlas/models"
)

// Demo dataset. Customer directory entries are seeded whenever the
// customers table is empty; the site/job/note/photo tree only when the
// store has zero sites, so a production deployment that created its own
// data never gets demo rows.

var demoCustomers = []models.Customer{
	{Name: "Washington", Address: "100 Independence Ave, Washington, DC", Phone: "(202) 555-0101", Email: "ops@washington.example", Notes: "Priority client."},
	{Name: "Lincoln", Address: "16 Union Sq, Springfield, IL", Phone: "(217) 555-0161", Email: "contact@lincoln.example", Notes: "Midwest projects."},
	{Name: "Jefferson", Address: "1 Monticello Rd, Charlottesville, VA", Phone: "(434) 555-0177", Email: "service@jefferson.example", Notes: "Historic sites focus."},
	{Name: "Roosevelt", Address: "26 Rough Rider Way, NYC, NY", Phone: "(212) 555-2600", Email: "hello@roosevelt.example", Notes: "Urban drilling."},
	{Name: "Kennedy", Address: "35 Harbor Dr, Boston, MA", Phone: "(617) 555-3500", Email: "team@kennedy.example", Notes: "Coastal/domestic."},
}

var miningTerms = []string{
	"Mother Lode", "Pay Dirt", "Sluice Box", "Stamp Mill", "Placer Claim", "Drift Mine", "Hydraulic Pit", "Gold Pan", "Tailings", "Bedrock",
	"Pick and Shovel", "Ore Cart", "Quartz Vein", "Mine Shaft", "Black Sand", "Rocker Box", "Prospect Hole", "Hard Rock", "Assay Office", "Grubstake",
	"Lode Claim", "Panning Dish", "Cradle Rocker", "Dust Gold", "Nugget Patch", "Timbering", "Creek Claim", "Pay Streak", "Ventilation Shaft", "Bucket Line",
	"Dredge Cut", "Amalgam Press", "Prospector's Camp", "Claim Jumper", "Mining Camp", "Gold Dust", "Mine Portal", "Crosscut Drift", "Incline Shaft", "Strike Zone",
	"Wash Plant", "Headframe", "Drill Core", "Stope Chamber", "Milling House", "Hoist House", "Smelter Works", "Ore Bin", "Tunnel Bore", "Grizzly Screen",
}

var demoCoords = [][2]float64{
	{40.385, -122.280}, {40.178, -122.240}, {39.927, -122.180}, {39.728, -121.837}, {39.747, -122.194},
}

var demoPhotoFiles = []string{"demo1.jpg", "demo2.jpg", "demo3.jpg", "demo4.jpg", "demo5.jpg"}

// SeedDemo populates the demo dataset: 5 customers, 50 sites (10 per
// customer, 2 pre-marked deleted), one job, note, photo, job note and
// job photo per site. Idempotent via the zero-sites / zero-customers
// guards.
func SeedDemo(db *gorm.DB) error {
	if err := seedCustomers(db); err != nil {
		return err
	}

	var siteCount int64
	if err := db.Model(&models.Site{}).Count(&siteCount).Error; err != nil {
		return err
	}
	if siteCount > 0 {
		return nil
	}

	// The site tree needs its owning customers even when the directory
	// was not empty at startup.
	customersByName := make(map[string]models.Customer, len(demoCustomers))
	for _, seed := range demoCustomers {
		var c models.Customer
		if err := db.Where(models.Customer{Name: seed.Name}).Attrs(seed).FirstOrCreate(&c).Error; err != nil {
			return err
		}
		customersByName[seed.Name] = c
	}

	log.Println("Seeding demo sites...")

	terms := append([]string(nil), miningTerms...)
	rand.Shuffle(len(terms), func(i, j int) { terms[i], terms[j] = terms[j], terms[i] })
	deletedSites := map[int]bool{rand.Intn(50): true}
	for len(deletedSites) < 2 {
		deletedSites[rand.Intn(50)] = true
	}

	jobNum := 25001
	return db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < 50; i++ {
			customer := customersByName[demoCustomers[i/10].Name]
			name := terms[i]
			coord := demoCoords[rand.Intn(len(demoCoords))]

			site := models.Site{
				Name:        name,
				CustomerID:  customer.ID,
				Description: fmt.Sprintf("Primary site for %s. Northern California operations.", name),
				Latitude:    coord[0],
				Longitude:   coord[1],
				Deleted:     deletedSites[i],
			}
			if err := tx.Create(&site).Error; err != nil {
				return err
			}

			job := models.Job{
				SiteID:      site.ID,
				JobNumber:   fmt.Sprintf("%d", jobNum),
				JobCategory: models.JobCategories[rand.Intn(len(models.JobCategories))],
				Description: fmt.Sprintf("Job #%d at %s.", jobNum, name),
			}
			if err := tx.Create(&job).Error; err != nil {
				return err
			}
			jobNum++

			fixtures := []any{
				&models.Note{SiteID: site.ID, Body: "Initial site survey complete."},
				&models.Photo{SiteID: site.ID, Filename: demoPhotoFiles[rand.Intn(len(demoPhotoFiles))], Caption: "Demo photo"},
				&models.JobNote{JobID: job.ID, Body: "Job initialized. Crew assigned."},
				&models.JobPhoto{JobID: job.ID, Filename: demoPhotoFiles[rand.Intn(len(demoPhotoFiles))], Caption: "Job demo photo"},
			}
			for _, f := range fixtures {
				if err := tx.Create(f).Error; err != nil {
					return err
				}
			}
		}
		log.Println("Demo site seeding completed")
		return nil
	})
}

// seedCustomers inserts the demo customer directory when the table is
// empty.
func seedCustomers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding customer directory...")
	for i := range demoCustomers {
		c := demoCustomers[i]
		if err := db.Create(&c).Error; err != nil {
			return err
		}
	}
	return nil
}
