package ioweb

import (
	"net/http"

	"github.com/cardlab/cardlab/pkg/schema"
)

// passiveResult is a passive with the cascade its change caused.
type passiveResult struct {
	*schema.Passive
	Cascade *schema.CascadeReport `json:"cascade"`
}

func (s *Server) handlePassiveList(w http.ResponseWriter, r *http.Request) {
	res, err := s.lab.Passives(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if res == nil {
		res = []schema.Passive{}
	}
	writeJSON(w, http.StatusOK, res)
}

// handlePassiveCreate is get-or-create: 201 for a new passive, 200 for
// an existing one with the same group and name.
func (s *Server) handlePassiveCreate(w http.ResponseWriter, r *http.Request) {
	var p schema.Passive
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	res, created, err := s.lab.EnsurePassive(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, createdStatus(created), res)
}

func (s *Server) handlePassiveGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.Passive(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePassiveUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var p schema.Passive
	if err = decodeJSON(w, r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	res, report, err := s.lab.UpdatePassive(r.Context(), id, p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, passiveResult{Passive: res, Cascade: report})
}

func (s *Server) handlePassiveDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err = s.lab.DeletePassive(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted{OK: true, ID: id})
}

func (s *Server) handlePassiveVersions(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.PassiveVersions(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePassiveVersion(w http.ResponseWriter, r *http.Request) {
	id, v, err := idVersion(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.PassiveVersion(r.Context(), id, v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePassiveRestore(w http.ResponseWriter, r *http.Request) {
	id, v, err := idVersion(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, report, err := s.lab.RestorePassive(r.Context(), id, v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, passiveResult{Passive: res, Cascade: report})
}

func createdStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
