package ioweb

import (
	"net/http"

	"github.com/cardlab/cardlab/pkg/schema"
)

type abilityResult struct {
	*schema.KeywordAbility
	Cascade *schema.CascadeReport `json:"cascade"`
}

func (s *Server) handleAbilityList(w http.ResponseWriter, r *http.Request) {
	res, err := s.lab.Abilities(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if res == nil {
		res = []schema.KeywordAbility{}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAbilityCreate(w http.ResponseWriter, r *http.Request) {
	var a schema.KeywordAbility
	if err := decodeJSON(w, r, &a); err != nil {
		writeError(w, r, err)
		return
	}
	res, created, err := s.lab.EnsureAbility(r.Context(), a)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, createdStatus(created), res)
}

func (s *Server) handleAbilityGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.Ability(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAbilityUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var a schema.KeywordAbility
	if err = decodeJSON(w, r, &a); err != nil {
		writeError(w, r, err)
		return
	}
	res, report, err := s.lab.UpdateAbility(r.Context(), id, a)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, abilityResult{KeywordAbility: res, Cascade: report})
}

func (s *Server) handleAbilityDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err = s.lab.DeleteAbility(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted{OK: true, ID: id})
}

func (s *Server) handleAbilityVersions(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.AbilityVersions(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAbilityVersion(w http.ResponseWriter, r *http.Request) {
	id, v, err := idVersion(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.AbilityVersion(r.Context(), id, v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAbilityRestore(w http.ResponseWriter, r *http.Request) {
	id, v, err := idVersion(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, report, err := s.lab.RestoreAbility(r.Context(), id, v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, abilityResult{KeywordAbility: res, Cascade: report})
}
