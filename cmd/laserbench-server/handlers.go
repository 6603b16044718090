package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"laserbench/db"
	"laserbench/internal/generator"
	"laserbench/internal/visualizer"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warnf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"store":  s.dbReady,
		})
	}
}

// handleGeneratePuzzle generates a fresh puzzle of the requested size class.
// Query params: size (default large), rules=1 to include the rule text.
func (s *Server) handleGeneratePuzzle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		size := r.URL.Query().Get("size")
		if size == "" {
			size = "large"
		}
		gen, err := generator.NewClassicGenerator(size)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		puzzle, err := gen.Generate()
		if err != nil {
			log.Errorf("generation failed: %v", err)
			writeError(w, http.StatusInternalServerError, "generation failed")
			return
		}

		viz := visualizer.NewVisualizer(puzzle)
		payload := map[string]interface{}{
			"puzzle": puzzle,
			"ascii":  viz.Ascii(),
		}
		if r.URL.Query().Get("rules") == "1" {
			payload["rules"] = viz.Rules()
		}
		log.WithFields(log.Fields{
			"size":    size,
			"bounces": puzzle.Bounces,
		}).Info("puzzle generated")
		writeJSON(w, http.StatusOK, payload)
	}
}

func (s *Server) handleListPuzzles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.dbReady {
			writeError(w, http.StatusServiceUnavailable, "record store unavailable")
			return
		}
		page := intQuery(r, "page", 1)
		perPage := intQuery(r, "perPage", 30)
		filters := map[string]string{}
		if sizeClass := r.URL.Query().Get("sizeClass"); sizeClass != "" {
			filters["sizeClass"] = sizeClass
		}
		if minBounces := r.URL.Query().Get("minBounces"); minBounces != "" {
			filters["minBounces"] = minBounces
		}

		result, err := db.ListPuzzles(page, perPage, filters, "created", "desc")
		if err != nil {
			log.Errorf("list failed: %v", err)
			writeError(w, http.StatusInternalServerError, "list failed")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handleGetPuzzle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.dbReady {
			writeError(w, http.StatusServiceUnavailable, "record store unavailable")
			return
		}
		id := way.Param(r.Context(), "id")
		record, err := db.GetPuzzle(id)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func intQuery(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
