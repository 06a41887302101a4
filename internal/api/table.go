package api

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/nrrscope/nrrscope/pkg/standings"
)

// tableResponse is the data of a table write.
type tableResponse struct {
	Version string          `json:"version"`
	Teams   int             `json:"teams"`
	Table   standings.Table `json:"table"`
}

// handleGetTable handles GET /api/points-table: the table as stored.
func (h *Handler) handleGetTable(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	w.Header().Set("ETag", `"`+snap.Version+`"`)
	writeOK(w, snap.Entries, "")
}

// handleRankedTable handles GET /api/points-table/ranked.
func (h *Handler) handleRankedTable(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	ranked := standings.Rank(snap.Entries)
	for i := range ranked {
		ranked[i].Position = i + 1
	}
	w.Header().Set("ETag", `"`+snap.Version+`"`)
	writeOK(w, ranked, "")
}

// handleReplaceTable handles PUT /api/points-table: a bulk replace with a
// JSON table body, optionally gzip-encoded.
func (h *Handler) handleReplaceTable(w http.ResponseWriter, r *http.Request) {
	body, err := requestBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body", "failed to read body: "+err.Error())
		return
	}
	table, err := standings.Decode(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid points table", err.Error())
		return
	}

	snap, err := h.ingestion.Replace(r.Context(), table)
	h.writeTableResult(w, snap, err, "Points table replaced", http.StatusBadRequest)
}

// importRequest is the JSON body for POST /api/points-table/import.
type importRequest struct {
	URL string `json:"url"`
}

// handleImportTable handles POST /api/points-table/import. A JSON body with a
// url fetches that page; an HTML body is parsed directly.
func (h *Handler) handleImportTable(w http.ResponseWriter, r *http.Request) {
	body, err := requestBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	defer body.Close()

	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/html") {
		snap, err := h.ingestion.ImportHTML(r.Context(), body)
		h.writeTableResult(w, snap, err, "Points table imported", http.StatusBadRequest)
		return
	}

	var req importRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body", "invalid JSON body: "+err.Error())
		return
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		writeError(w, http.StatusBadRequest, "Validation failed", "url must be an http or https URL")
		return
	}

	snap, err := h.ingestion.ImportURL(r.Context(), req.URL)
	h.writeTableResult(w, snap, err, "Points table imported", http.StatusBadGateway)
}

// writeTableResult reports a table write. Invalid tables are always 400;
// other failures before publishing use failStatus.
func (h *Handler) writeTableResult(w http.ResponseWriter, snap *standings.Snapshot, err error, msg string, failStatus int) {
	switch {
	case err == nil:
		writeOK(w, tableResponse{Version: snap.Version, Teams: len(snap.Entries), Table: snap.Entries}, msg)
	case snap != nil:
		// Published but not persisted.
		writeError(w, http.StatusInternalServerError, "Points table updated but not persisted", err.Error())
	case errors.Is(err, standings.ErrInvalidTable):
		writeError(w, http.StatusBadRequest, "Invalid points table", err.Error())
	default:
		writeError(w, failStatus, "Points table import failed", err.Error())
	}
}

// requestBody returns the size-capped body, unwrapping gzip when the
// request says so.
func requestBody(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if r.Header.Get("Content-Encoding") != "gzip" {
		return body, nil
	}
	gz, err := gzip.NewReader(body)
	if err != nil {
		return nil, errors.New("invalid gzip body: " + err.Error())
	}
	return gz, nil
}
