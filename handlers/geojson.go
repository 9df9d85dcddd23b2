package handlers

import (
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// SitesGeoJSON serves the filtered site list as a GeoJSON
// FeatureCollection, the map front end's native format. Same contract as
// /api/sites, different shape. GET /api/sites/geojson?q=&job=&customer=
func (api *API) SitesGeoJSON(w http.ResponseWriter, r *http.Request) {
	sites, err := api.Store.ListSites(siteFilterFromQuery(r))
	if err != nil {
		http.Error(w, "failed to fetch sites", http.StatusInternalServerError)
		return
	}

	fc := geojson.NewFeatureCollection()
	for _, s := range sites {
		feature := geojson.NewFeature(orb.Point{s.Longitude, s.Latitude})
		feature.Properties = geojson.Properties{
			"id":          s.ID,
			"name":        s.Name,
			"customer":    s.CustomerName,
			"description": s.Description,
		}
		fc.Append(feature)
	}

	writeJSON(w, fc)
}
