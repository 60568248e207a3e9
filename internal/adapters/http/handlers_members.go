package web

import (
	"net/http"

	"celebration/internal/application/orchestrators"
	"celebration/internal/application/projections"
)

type createMemberRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Country   string `json:"country"`
	City      string `json:"city"`
}

func (s *server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := strictDecode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := orchestrators.ExecuteCreateMember(r.Context(), orchestrators.CreateMemberInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		Country:   req.Country,
		City:      req.City,
	}, orchestrators.CreateMemberDeps{
		MemberStore: s.svc.MemberStore,
		Now:         s.svc.Now,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.svc.Metrics.MemberCreated()
	writeJSON(w, http.StatusCreated, toMemberJSON(created))
}

func (s *server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sorted, err := queryBool(q, "sort_by_birthday", false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	upcoming, err := queryBool(q, "upcoming_only", false)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := projections.QueryGetMemberList(r.Context(), projections.GetMemberListQuery{
		UpcomingOnly:   upcoming,
		SortByBirthday: sorted,
	}, projections.GetMemberListDeps{
		MemberStore: s.svc.MemberStore,
		Now:         s.svc.Now,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]memberViewJSON, 0, len(result.Members))
	for _, v := range result.Members {
		out = append(out, memberViewJSON{memberJSON: toMemberJSON(v.Member), DaysUntilBirthday: v.DaysUntilBirthday})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	id, err := memberID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	v, err := projections.QueryGetMember(r.Context(), projections.GetMemberQuery{ID: id}, projections.GetMemberDeps{
		MemberStore: s.svc.MemberStore,
		Now:         s.svc.Now,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberViewJSON{memberJSON: toMemberJSON(v.Member), DaysUntilBirthday: v.DaysUntilBirthday})
}
