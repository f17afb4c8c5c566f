package domain

import "time"

// CounselorReportKind names one of the counselor AI tools
type CounselorReportKind string

const (
	// CounselorReportConceptualization const - case conceptualization and treatment plan
	CounselorReportConceptualization CounselorReportKind = "conceptualization"
	// CounselorReportAssessment const - functional assessment of the client
	CounselorReportAssessment CounselorReportKind = "assessment"
	// CounselorReportSupervision const - clinical supervision of the counselor's work
	CounselorReportSupervision CounselorReportKind = "supervision"
)

// IsValid func
func (k CounselorReportKind) IsValid() bool {
	switch k {
	case CounselorReportConceptualization, CounselorReportAssessment, CounselorReportSupervision:
		return true
	}
	return false
}

type (
	// CounselorReportRequest struct - Counselor tool input. Transcript wins over
	// ParticipantID; without a transcript the participant's interview is used.
	CounselorReportRequest struct {
		Kind              CounselorReportKind
		ParticipantID     string
		Transcript        string
		ClientInfo        map[string]interface{}
		Conceptualization string
		Assessment        string
	}

	// CounselorReportResult struct - Counselor tool output
	CounselorReportResult struct {
		Kind      CounselorReportKind
		Content   string
		Timestamp time.Time
	}
)
