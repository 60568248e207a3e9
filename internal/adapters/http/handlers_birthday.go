package web

import (
	"fmt"
	"net/http"
	"net/url"

	"celebration/internal/application/orchestrators"
	"celebration/internal/domain/greeting"
)

func (s *server) handleBirthdayMessage(w http.ResponseWriter, r *http.Request) {
	id, err := memberID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	msg, err := orchestrators.ExecuteGenerateBirthdayMessage(r.Context(), orchestrators.GenerateBirthdayMessageInput{
		MemberID: id,
		Tone:     queryTone(r.URL.Query()),
	}, orchestrators.GenerateBirthdayMessageDeps{
		MemberStore: s.svc.MemberStore,
		Generator:   s.svc.Generator,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.svc.Metrics.MessageGenerated(fmt.Sprint(msg.Explanation.Parameters["tone"]), msg.Explanation.Model)
	writeJSON(w, http.StatusOK, msg)
}

// handleSendEmail defaults to a dry run; dispatch requires dry_run=false.
func (s *server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	id, err := memberID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	dryRun, err := queryBool(q, "dry_run", true)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := orchestrators.ExecuteSendBirthdayEmail(r.Context(), orchestrators.SendBirthdayEmailInput{
		MemberID: id,
		Tone:     queryTone(q),
		DryRun:   dryRun,
	}, orchestrators.SendBirthdayEmailDeps{
		MemberStore: s.svc.MemberStore,
		Generator:   s.svc.Generator,
		Sender:      s.svc.Sender,
		EmailDomain: s.svc.EmailDomain,
		From:        s.svc.EmailFrom,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.svc.Metrics.EmailHandled(result.Status)
	writeJSON(w, http.StatusOK, result)
}

// queryTone maps an absent tone to the default. A present but empty
// value is passed through so validation rejects it.
func queryTone(q url.Values) string {
	if !q.Has("tone") {
		return string(greeting.DefaultTone)
	}
	return q.Get("tone")
}
