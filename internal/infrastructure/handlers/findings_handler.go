package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cvefinder/internal/domain/commands"
	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

const maxEventSize = 1 << 20

// FindingsHandler receives scanner events over HTTP.
type FindingsHandler struct {
	command  commands.Ingest
	settings *entities.Settings
}

// NewFindingsHandler creates a new FindingsHandler.
func NewFindingsHandler(command commands.Ingest, settings *entities.Settings) *FindingsHandler {
	return &FindingsHandler{command: command, settings: settings}
}

// Create ingests one event. Like the ingestion command, it always answers 200.
func (it *FindingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var raw any

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventSize))
	if err != nil {
		logger.Errorf("[http] Failed to read event body: %v", err)
	} else if raw, err = entities.ParseScannerEvent(body); err != nil {
		logger.Errorf("[http] Failed to decode event: %v", err)
	}

	result := it.command.Execute(r.Context(), it.settings, raw)
	writeJSON(w, result.StatusCode, result)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		logger.Warnf("[http] Failed to write response: %v", err)
	}
}
