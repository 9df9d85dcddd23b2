package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
)

// SitesExport streams the filtered site register as an Excel workbook.
// GET /api/sites/export?q=&job=&customer=
func (api *API) SitesExport(w http.ResponseWriter, r *http.Request) {
	sites, err := api.Store.ListSites(siteFilterFromQuery(r))
	if err != nil {
		http.Error(w, "failed to fetch sites", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sites"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Customer", "Description", "Latitude", "Longitude", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, s := range sites {
		values := []any{s.ID, s.Name, s.CustomerName, s.Description, s.Latitude, s.Longitude, s.CreatedAt.Format(time.RFC3339)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to generate export", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("sites_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
