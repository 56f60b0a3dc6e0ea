package ops

import (
	dbpkg "github.com/campusfest/memories/internal/db"
	"github.com/campusfest/memories/internal/errors"
)

// ReportInput contains parameters for the Report operation.
type ReportInput struct {
	Kind       string
	TargetID   string
	Reason     string
	Details    *string
	ReporterID string
}

// ReportOutput contains the result of the Report operation.
type ReportOutput struct {
	ID string `json:"id"`
}

// Report files an abuse report against a moment or a comment. The target
// must currently resolve; the reason is required.
func Report(g *Gallery, input ReportInput) (*ReportOutput, error) {
	if input.Reason == "" {
		return nil, errors.NewInvalidRequest("reason is required")
	}

	switch input.Kind {
	case "moment":
		if _, err := g.findMoment(input.TargetID); err != nil {
			return nil, err
		}
	case "comment":
		if _, err := dbpkg.GetComment(g.DB, input.TargetID); err != nil {
			return nil, err
		}
	default:
		return nil, errors.NewInvalidRequest("kind must be moment or comment")
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	report := &dbpkg.Report{
		ID:        id,
		Kind:      input.Kind,
		TargetID:  input.TargetID,
		Reason:    input.Reason,
		Details:   input.Details,
		CreatedAt: g.now().Unix(),
	}
	if input.ReporterID != "" {
		reporter := input.ReporterID
		report.ReporterID = &reporter
	}
	if err := dbpkg.InsertReport(g.DB, report); err != nil {
		return nil, err
	}
	return &ReportOutput{ID: id}, nil
}
