package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pkordes/travel-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "list", "text", "person", "completed", "created_at",
}

// exportTrip handles GET /trips/{tripID}/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) exportTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "csv" && format != "json" {
		respondError(w, r, requestError(fmt.Sprintf("unknown format %q", format)))
		return
	}

	rows, err := s.Export.Export(r.Context(), currentUser(r).ID, tripID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if format != "csv" {
		writeJSON(w, http.StatusOK, listResponse[domain.ExportRow]{Data: rows})
		return
	}

	body := buildCSV(rows)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trip-`+tripID.String()+`.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}

// buildCSV encodes rows with a header line.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write([]string{
			r.TripID,
			r.TripName,
			string(r.Kind),
			r.Text,
			r.Person,
			strconv.FormatBool(r.Completed),
			r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	cw.Flush()
	return &buf
}
