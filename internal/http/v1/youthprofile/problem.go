package youthprofile

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	yp "github.com/delta94/youth-membership-admin-ui/internal/youthprofile"
)

// InvalidRecordProblem is the RFC 9457 body of a rejected record. Errors
// lists every message by body location; Report carries the same messages in
// the shape of the record.
type InvalidRecordProblem struct {
	huma.ErrorModel
	Report yp.ErrorReport `json:"report" doc:"Messages mirroring the record; addresses is index-aligned with the submitted list"`
}

func newInvalidRecordProblem(report yp.ErrorReport) *InvalidRecordProblem {
	p := &InvalidRecordProblem{
		ErrorModel: huma.ErrorModel{
			Title:  http.StatusText(http.StatusUnprocessableEntity),
			Status: http.StatusUnprocessableEntity,
			Detail: "youth profile record is invalid",
		},
		Report: report,
	}
	for _, issue := range report.Issues() {
		p.Errors = append(p.Errors, &huma.ErrorDetail{
			Location: "body." + issue.Path,
			Message:  issue.Message,
		})
	}
	return p
}
