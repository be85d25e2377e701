package models

import "time"

// Case is a single customer-effort survey response tied to an engineer.
// Most survey columns are optional; absent spreadsheet cells stay NULL.
type Case struct {
	ID                        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CaseDescription           string    `gorm:"column:case_description;size:500;not null" json:"caseDescription"`
	Date                      time.Time `gorm:"not null" json:"date"`
	CESRating                 *int      `gorm:"column:ces_rating" json:"cesRating,omitempty"`
	SurveySource              *string   `gorm:"column:survey_source;size:10" json:"surveySource,omitempty"`
	SAPCaseID                 *string   `gorm:"column:sap_case_id;size:50" json:"sapCaseId,omitempty"`
	TopContractType           *string   `gorm:"column:top_contract_type;size:100" json:"topContractType,omitempty"`
	CESDriverCorrectSolution  *int      `gorm:"column:ces_driver_correct_solution" json:"cesDriverCorrectSolution,omitempty"`
	CESDriverTimelyUpdates    *int      `gorm:"column:ces_driver_timely_updates" json:"cesDriverTimelyUpdates,omitempty"`
	CESDriverTimelySolution   *int      `gorm:"column:ces_driver_timely_solution" json:"cesDriverTimelySolution,omitempty"`
	CESDriverProfessionalism  *int      `gorm:"column:ces_driver_professionalism" json:"cesDriverProfessionalism,omitempty"`
	CESDriverExpertise        *int      `gorm:"column:ces_driver_expertise" json:"cesDriverExpertise,omitempty"`
	ChatSessionID             *string   `gorm:"column:chat_session_id;size:100" json:"chatSessionId,omitempty"`
	SurveyFeedback            *string   `gorm:"column:survey_feedback;size:2000" json:"surveyFeedback,omitempty"`
	EngineerID                int64     `gorm:"column:engineer_id;not null" json:"engineerId"`
	Engineer                  *Engineer `gorm:"foreignKey:EngineerID" json:"engineer,omitempty"`
	ReportID                  *int64    `gorm:"column:report_id" json:"reportId,omitempty"`
	Report                    *Report   `gorm:"foreignKey:ReportID" json:"report,omitempty"`
}
