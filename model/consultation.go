package model

// Consultation represents a consultation entity
// @Description Consultation record information
type Consultation struct {
	ID                 uint    `json:"id" gorm:"primaryKey;autoIncrement" example:"1"`
	Date               string  `json:"date" gorm:"column:date_consultation;not null" example:"2024-05-01"`
	PatientLastName    string  `json:"patient_last_name" gorm:"column:nom_patient;not null" example:"Martin"`
	PatientFirstName   string  `json:"patient_first_name" gorm:"column:prenom_patient;not null" example:"Léa"`
	Age                int     `json:"age" gorm:"column:age;not null" example:"4"`
	Reason             string  `json:"reason" gorm:"column:motif_consultation;not null" example:"Fièvre"`
	ClinicalExam       *string `json:"clinical_exam" gorm:"column:examen_clinique" example:"Otite droite"`
	ComplementaryExams *string `json:"complementary_exams" gorm:"column:examens_complementaires"`
	Treatment          *string `json:"treatment" gorm:"column:traitement" example:"Amoxicilline"`
}

// TableName keeps the table name of existing consultation data files.
func (Consultation) TableName() string {
	return "consultations"
}

// ConsultationSummary is the projection returned when listing consultations.
type ConsultationSummary struct {
	ID               uint   `json:"id" gorm:"column:id"`
	Date             string `json:"date" gorm:"column:date_consultation"`
	PatientLastName  string `json:"patient_last_name" gorm:"column:nom_patient"`
	PatientFirstName string `json:"patient_first_name" gorm:"column:prenom_patient"`
	Age              int    `json:"age" gorm:"column:age"`
	Reason           string `json:"reason" gorm:"column:motif_consultation"`
}
