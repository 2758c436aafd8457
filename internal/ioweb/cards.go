package ioweb

import (
	"net/http"

	"github.com/cardlab/cardlab/pkg/filter"
	"github.com/cardlab/cardlab/pkg/schema"
)

func (s *Server) handleCardList(w http.ResponseWriter, r *http.Request) {
	f, err := filter.ParseCard(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	cards, err := s.lab.QueryCards(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if cards == nil {
		cards = []schema.Card{}
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleCardCreate(w http.ResponseWriter, r *http.Request) {
	var c schema.Card
	if err := decodeJSON(w, r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.CreateCard(r.Context(), c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleCardGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.Card(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCardUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var c schema.Card
	if err = decodeJSON(w, r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.UpdateCard(r.Context(), id, c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCardDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err = s.lab.DeleteCard(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCardVersions(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.CardVersions(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCardVersion(w http.ResponseWriter, r *http.Request) {
	id, v, err := idVersion(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.CardVersion(r.Context(), id, v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCardRestore(w http.ResponseWriter, r *http.Request) {
	id, v, err := idVersion(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.lab.RestoreCard(r.Context(), id, v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
