package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hsuden/wellatlas/config"
	"github.com/hsuden/wellatlas/handlers"
	"github.com/hsuden/wellatlas/models"
	"github.com/hsuden/wellatlas/routes"
	"github.com/hsuden/wellatlas/share"
	"github.com/hsuden/wellatlas/store"
)

type env struct {
	handler http.Handler
	store   *store.DataStore
}

func newTestEnv(t *testing.T) *env {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := config.Migrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	settings := config.Settings{
		Port:      "0",
		UploadDir: t.TempDir(),
		BaseURL:   "http://atlas.test",
	}
	ds := store.New(db)
	api := handlers.New(ds, share.NewService(ds, settings.ShareIncludeDeleted), settings)
	return &env{handler: routes.RegisterRoutes(api), store: ds}
}

func (e *env) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func (e *env) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func TestHealthz(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if body := rr.Body.String(); body != "ok" {
		t.Errorf("body = %q, want ok", body)
	}
}

func TestCreateSiteRedirectsAndCoercesCoordinates(t *testing.T) {
	e := newTestEnv(t)

	rr := e.postForm(t, "/sites", url.Values{
		"name":        {"Bedrock"},
		"customer":    {"Lincoln"},
		"description": {"Primary site"},
		"latitude":    {"39.0"},
		"longitude":   {"not-a-number"},
	})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rr.Code)
	}
	loc := rr.Header().Get("Location")
	if !strings.HasPrefix(loc, "/sites/") {
		t.Fatalf("redirect = %q, want site detail", loc)
	}

	sites, err := e.store.ListSites(store.SiteFilter{})
	if err != nil {
		t.Fatalf("ListSites: %v", err)
	}
	if len(sites) != 1 {
		t.Fatalf("sites = %+v, want one", sites)
	}
	if sites[0].Latitude != 39.0 || sites[0].Longitude != 0.0 {
		t.Errorf("coordinates = (%v, %v), want (39, 0)", sites[0].Latitude, sites[0].Longitude)
	}
}

func TestEditSiteCoercesBadLatitude(t *testing.T) {
	e := newTestEnv(t)

	site, err := e.store.CreateSite("Tailings", "Kennedy", "old", 40.0, -122.0)
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	rr := e.postForm(t, fmt.Sprintf("/sites/%d/edit", site.ID), url.Values{
		"name":        {"Tailings East"},
		"customer":    {"Kennedy"},
		"description": {"updated"},
		"latitude":    {"not-a-number"},
		"longitude":   {"-121.0"},
	})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rr.Code)
	}

	got, err := e.store.GetSite(site.ID)
	if err != nil {
		t.Fatalf("GetSite: %v", err)
	}
	if got.Latitude != 0.0 {
		t.Errorf("latitude = %v, want coerced 0.0", got.Latitude)
	}
	if got.Name != "Tailings East" || got.Description != "updated" || got.Longitude != -121.0 {
		t.Errorf("site not otherwise updated: %+v", got)
	}
}

func TestAPISitesFiltering(t *testing.T) {
	e := newTestEnv(t)

	bedrock, err := e.store.CreateSite("Bedrock", "Lincoln", "north", 39.0, -122.0)
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}
	other, err := e.store.CreateSite("Pay Dirt", "Washington", "south", 38.0, -121.0)
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}
	if _, err := e.store.CreateJob(bedrock.ID, "30001", models.CategoryDrilling, "bore"); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if err := e.store.SetSiteDeleted(other.ID, true); err != nil {
		t.Fatalf("SetSiteDeleted: %v", err)
	}

	rr := e.do(t, httptest.NewRequest(http.MethodGet, "/api/sites?job=Drilling&customer=Lincoln", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var sites []models.Site
	if err := json.Unmarshal(rr.Body.Bytes(), &sites); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sites) != 1 || sites[0].Name != "Bedrock" || sites[0].CustomerName != "Lincoln" {
		t.Errorf("sites = %+v, want only Bedrock for Lincoln", sites)
	}

	// Deleted sites never appear, filters or not.
	rr = e.do(t, httptest.NewRequest(http.MethodGet, "/api/sites", nil))
	if err := json.Unmarshal(rr.Body.Bytes(), &sites); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, s := range sites {
		if s.ID == other.ID {
			t.Errorf("deleted site leaked into /api/sites: %+v", s)
		}
	}
}

func TestAPICustomers(t *testing.T) {
	e := newTestEnv(t)

	for _, name := range []string{"Washington", "Kennedy"} {
		if err := e.store.CreateCustomer(&models.Customer{Name: name}); err != nil {
			t.Fatalf("CreateCustomer: %v", err)
		}
	}

	rr := e.do(t, httptest.NewRequest(http.MethodGet, "/api/customers", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var out []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0]["name"] != "Kennedy" || out[1]["name"] != "Washington" {
		t.Errorf("customers = %+v, want alphabetical id+name pairs", out)
	}
}

func TestUploadsProduceDistinctFilenames(t *testing.T) {
	e := newTestEnv(t)

	site, err := e.store.CreateSite("Gold Pan", "Lincoln", "desc", 39.0, -122.0)
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	upload := func() *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("photo", "pump.jpg")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		fw.Write([]byte("jpeg-bytes"))
		mw.WriteField("caption", "the pump")
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/sites/%d/photos", site.ID), &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return e.do(t, req)
	}

	for i := 0; i < 2; i++ {
		if rr := upload(); rr.Code != http.StatusSeeOther {
			t.Fatalf("upload #%d status = %d, want 303", i, rr.Code)
		}
	}

	photos, err := e.store.ListPhotosForSite(site.ID)
	if err != nil {
		t.Fatalf("ListPhotosForSite: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("photos = %+v, want two rows", photos)
	}
	if photos[0].Filename == photos[1].Filename {
		t.Errorf("stored filenames collided: %q", photos[0].Filename)
	}
	for _, p := range photos {
		if !strings.HasPrefix(p.Filename, "pump_") || !strings.HasSuffix(p.Filename, ".jpg") {
			t.Errorf("filename = %q, want pump_<suffix>.jpg", p.Filename)
		}
	}
}

func TestUploadWithoutFileIsNoop(t *testing.T) {
	e := newTestEnv(t)

	site, err := e.store.CreateSite("Ore Cart", "Lincoln", "desc", 39.0, -122.0)
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("caption", "no file attached")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/sites/%d/photos", site.ID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := e.do(t, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303 redirect", rr.Code)
	}

	photos, err := e.store.ListPhotosForSite(site.ID)
	if err != nil {
		t.Fatalf("ListPhotosForSite: %v", err)
	}
	if len(photos) != 0 {
		t.Errorf("photos = %+v, want none", photos)
	}
}

func TestShareCreateMissingTarget(t *testing.T) {
	e := newTestEnv(t)

	rr := e.postForm(t, "/customers/999/share", url.Values{})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("share error is not JSON: %v", err)
	}
	if body["error"] == "" {
		t.Errorf("body = %+v, want error field", body)
	}
}

func TestShareFlow(t *testing.T) {
	e := newTestEnv(t)

	site, err := e.store.CreateSite("Bedrock", "Lincoln", "Primary site", 39.0, -122.0)
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}
	if _, err := e.store.CreateJob(site.ID, "30001", models.CategoryDrilling, "bore"); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if _, err := e.store.AddNote(site.ID, "Initial survey"); err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	lincoln, err := e.store.GetCustomerByName("Lincoln")
	if err != nil {
		t.Fatalf("GetCustomerByName: %v", err)
	}

	rr := e.postForm(t, fmt.Sprintf("/customers/%d/share", lincoln.ID), url.Values{})
	if rr.Code != http.StatusOK {
		t.Fatalf("share create status = %d, want 200", rr.Code)
	}
	var created map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	link := created["link"]
	if !strings.HasPrefix(link, "http://atlas.test/s/customer/") {
		t.Fatalf("link = %q, want absolute share URL", link)
	}

	path := strings.TrimPrefix(link, "http://atlas.test")
	rr = e.do(t, httptest.NewRequest(http.MethodGet, path, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("share view status = %d, want 200", rr.Code)
	}

	var tree share.CustomerTree
	if err := json.Unmarshal(rr.Body.Bytes(), &tree); err != nil {
		t.Fatalf("decode tree: %v", err)
	}
	if tree.Customer.Name != "Lincoln" || len(tree.Sites) != 1 || tree.Sites[0].Name != "Bedrock" {
		t.Fatalf("tree = %+v, want Lincoln with Bedrock", tree)
	}
	if len(tree.Sites[0].Jobs) != 1 || tree.Sites[0].Jobs[0].JobNumber != "30001" {
		t.Errorf("jobs = %+v, want 30001", tree.Sites[0].Jobs)
	}
	if len(tree.Sites[0].Notes) != 1 || tree.Sites[0].Notes[0].Body != "Initial survey" {
		t.Errorf("notes = %+v, want the survey note", tree.Sites[0].Notes)
	}
}

func TestShareViewInvalidToken(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(t, httptest.NewRequest(http.MethodGet, "/s/customer/bogus-token", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Invalid or expired link") {
		t.Errorf("body = %q, want invalid-link message", rr.Body.String())
	}
}

func TestSoftDeleteRestoreRoundTrip(t *testing.T) {
	e := newTestEnv(t)

	site, err := e.store.CreateSite("Quartz Vein", "Jefferson", "desc", 39.9, -122.1)
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	rr := e.postForm(t, fmt.Sprintf("/sites/%d/delete", site.ID), url.Values{})
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
		t.Fatalf("delete response = %d %q", rr.Code, rr.Header().Get("Location"))
	}

	rr = e.do(t, httptest.NewRequest(http.MethodGet, "/deleted", nil))
	var deleted []models.Site
	if err := json.Unmarshal(rr.Body.Bytes(), &deleted); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(deleted) != 1 || deleted[0].ID != site.ID {
		t.Fatalf("deleted = %+v, want the site", deleted)
	}

	rr = e.postForm(t, fmt.Sprintf("/sites/%d/restore", site.ID), url.Values{})
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/deleted" {
		t.Fatalf("restore response = %d %q", rr.Code, rr.Header().Get("Location"))
	}

	sites, err := e.store.ListSites(store.SiteFilter{})
	if err != nil {
		t.Fatalf("ListSites: %v", err)
	}
	if len(sites) != 1 || sites[0].ID != site.ID {
		t.Errorf("sites after restore = %+v", sites)
	}
}

func TestSitesExportHeaders(t *testing.T) {
	e := newTestEnv(t)

	if _, err := e.store.CreateSite("Wash Plant", "Kennedy", "desc", 40.0, -122.0); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	rr := e.do(t, httptest.NewRequest(http.MethodGet, "/api/sites/export", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q, want xlsx", ct)
	}
	if rr.Body.Len() == 0 {
		t.Error("empty export body")
	}
}

func TestSitesGeoJSON(t *testing.T) {
	e := newTestEnv(t)

	if _, err := e.store.CreateSite("Bedrock", "Lincoln", "desc", 39.0, -122.0); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	rr := e.do(t, httptest.NewRequest(http.MethodGet, "/api/sites/geojson", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &fc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 1 {
		t.Fatalf("feature collection = %+v", fc)
	}
	coords := fc.Features[0].Geometry.Coordinates
	if len(coords) != 2 || coords[0] != -122.0 || coords[1] != 39.0 {
		t.Errorf("coordinates = %v, want [lon lat]", coords)
	}
	if fc.Features[0].Properties["customer"] != "Lincoln" {
		t.Errorf("properties = %+v, want customer Lincoln", fc.Features[0].Properties)
	}
}

func TestUploadedFileServed(t *testing.T) {
	e := newTestEnv(t)

	site, err := e.store.CreateSite("Mine Portal", "Lincoln", "desc", 39.0, -122.0)
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("photo", "portal.png")
	fw.Write([]byte("png-bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/sites/%d/photos", site.ID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if rr := e.do(t, req); rr.Code != http.StatusSeeOther {
		t.Fatalf("upload status = %d", rr.Code)
	}

	photos, err := e.store.ListPhotosForSite(site.ID)
	if err != nil || len(photos) != 1 {
		t.Fatalf("photos = %+v, err = %v", photos, err)
	}

	rr := e.do(t, httptest.NewRequest(http.MethodGet, "/uploads/"+photos[0].Filename, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("serve status = %d, want 200", rr.Code)
	}
	if rr.Body.String() != "png-bytes" {
		t.Errorf("served body = %q", rr.Body.String())
	}
}

func TestUploadDirCreatedOnDemand(t *testing.T) {
	// The upload dir is nested and absent until the first upload.
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("precondition: dir exists")
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := config.Migrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	ds := store.New(db)
	api := handlers.New(ds, share.NewService(ds, false), config.Settings{UploadDir: dir})
	handler := routes.RegisterRoutes(api)

	site, err := ds.CreateSite("Grubstake", "Lincoln", "desc", 39.0, -122.0)
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("photo", "claim.jpg")
	fw.Write([]byte("bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/sites/%d/photos", site.ID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rr.Code)
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("upload dir entries = %v, err = %v", entries, err)
	}
}
