package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gocouncil/domain/council"
)

const (
	sessionsSheet     = "Decisions"
	perspectivesSheet = "Perspectives"
	defaultSheet      = "Sheet1"
)

// DecisionLogWriter renders completed council sessions into an xlsx
// workbook: one row per decision plus a second sheet with the individual
// persona verdicts.
type DecisionLogWriter struct{}

// NewDecisionLogWriter creates a new xlsx decision log writer
func NewDecisionLogWriter() *DecisionLogWriter {
	return &DecisionLogWriter{}
}

// Write renders the sessions into w as an xlsx workbook. Sessions without
// documents are skipped from the decision sheet but keep their verdicts.
func (e *DecisionLogWriter) Write(w io.Writer, sessions []*council.Session) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sessionsSheet); err != nil {
		return fmt.Errorf("failed to create decisions sheet: %w", err)
	}
	if _, err := f.NewSheet(perspectivesSheet); err != nil {
		return fmt.Errorf("failed to create perspectives sheet: %w", err)
	}
	f.DeleteSheet(defaultSheet)

	if err := e.writeDecisions(f, sessions); err != nil {
		return err
	}
	if err := e.writePerspectives(f, sessions); err != nil {
		return err
	}

	if index, err := f.GetSheetIndex(sessionsSheet); err == nil {
		f.SetActiveSheet(index)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (e *DecisionLogWriter) writeDecisions(f *excelize.File, sessions []*council.Session) error {
	headers := []interface{}{"Session ID", "Title", "Topic", "Status", "Decision Type", "Readiness", "Consensus", "Mean Score", "Created"}
	if err := f.SetSheetRow(sessionsSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write decision headers: %w", err)
	}

	row := 2
	for _, session := range sessions {
		decisionType := ""
		readiness := 0.0
		if session.Documents != nil {
			decisionType = session.Documents.DecisionType
			readiness = session.Documents.ReadinessScore
		}
		scores := council.SummarizeScores(session.Perspectives)
		values := []interface{}{
			session.ID.String(),
			session.Title,
			session.Topic,
			string(session.Status),
			decisionType,
			readiness,
			scores.Consensus,
			scores.Mean,
			session.CreatedAt.String(),
		}
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sessionsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write decision row %d: %w", row, err)
		}
		row++
	}
	return nil
}

func (e *DecisionLogWriter) writePerspectives(f *excelize.File, sessions []*council.Session) error {
	headers := []interface{}{"Session ID", "Title", "Principle", "Vote", "Score", "Reasoning"}
	if err := f.SetSheetRow(perspectivesSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write perspective headers: %w", err)
	}

	row := 2
	for _, session := range sessions {
		for _, perspective := range session.Perspectives {
			values := []interface{}{
				session.ID.String(),
				session.Title,
				perspective.Principle.String(),
				perspective.Vote,
				perspective.Score,
				perspective.Reasoning,
			}
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetSheetRow(perspectivesSheet, cell, &values); err != nil {
				return fmt.Errorf("failed to write perspective row %d: %w", row, err)
			}
			row++
		}
	}
	return nil
}
