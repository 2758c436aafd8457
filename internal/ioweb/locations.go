package ioweb

import (
	"net/http"

	"github.com/cardlab/cardlab/pkg/filter"
	"github.com/cardlab/cardlab/pkg/schema"
)

func (s *Server) handleLocationList(w http.ResponseWriter, r *http.Request) {
	f, err := filter.ParseLocation(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.QueryLocations(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLocationCreate(w http.ResponseWriter, r *http.Request) {
	var loc schema.Location
	if err := decodeJSON(w, r, &loc); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.CreateLocation(r.Context(), loc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleLocationGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.Location(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLocationUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var loc schema.Location
	if err = decodeJSON(w, r, &loc); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.UpdateLocation(r.Context(), id, loc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLocationDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err = s.lab.DeleteLocation(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLocationSummary(w http.ResponseWriter, r *http.Request) {
	res, err := s.lab.LocationSummary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if res.Pantheons == nil {
		res.Pantheons = []string{}
	}
	if res.Archetypes == nil {
		res.Archetypes = []string{}
	}
	writeJSON(w, http.StatusOK, res)
}
