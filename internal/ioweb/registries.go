package ioweb

import (
	"net/http"

	"github.com/cardlab/cardlab/pkg/schema"
	"github.com/go-chi/chi/v5"
)

// registry describes which operations a registry exposes.
type registry struct {
	kind   schema.CategoryKind
	create bool
	update bool
	delete bool
}

var (
	registryPantheon      = registry{schema.CategoryPantheon, true, true, true}
	registryArchetype     = registry{schema.CategoryArchetype, true, true, true}
	registryTag           = registry{schema.CategoryTag, false, false, true}
	registryAbilityTiming = registry{schema.CategoryAbilityTiming, true, false, false}
)

type categoryResult struct {
	*schema.Category
	Cascade *schema.CascadeReport `json:"cascade"`
}

func (s *Server) registryRouter(reg registry) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", s.handleCategoryList(reg.kind))
		if reg.create {
			r.Post("/", s.handleCategoryCreate(reg.kind))
		}
		if reg.update {
			r.Put("/{id}", s.handleCategoryUpdate(reg.kind))
		}
		if reg.delete {
			r.Delete("/{id}", s.handleCategoryDelete(reg.kind))
		}
	}
}

func (s *Server) handleCategoryList(kind schema.CategoryKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := s.lab.Categories(r.Context(), kind)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if res == nil {
			res = []schema.Category{}
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) handleCategoryCreate(kind schema.CategoryKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c schema.Category
		if err := decodeJSON(w, r, &c); err != nil {
			writeError(w, r, err)
			return
		}
		c.Kind = kind
		res, created, err := s.lab.EnsureCategory(r.Context(), c)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, createdStatus(created), res)
	}
}

func (s *Server) handleCategoryUpdate(kind schema.CategoryKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var c schema.Category
		if err = decodeJSON(w, r, &c); err != nil {
			writeError(w, r, err)
			return
		}
		c.ID, c.Kind = id, kind
		res, report, err := s.lab.UpdateCategory(r.Context(), c)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, categoryResult{Category: res, Cascade: report})
	}
}

// handleCategoryDelete answers 204, except for tags: removing a tag
// touches cards, so the cascade report is returned.
func (s *Server) handleCategoryDelete(kind schema.CategoryKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		report, err := s.lab.DeleteCategory(r.Context(), kind, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if kind == schema.CategoryTag {
			writeJSON(w, http.StatusOK, deleted{OK: true, ID: id, Cascade: report})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
