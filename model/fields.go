package model

// ConsultationField describes one input of the consultation form.
type ConsultationField struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Multiline bool   `json:"multiline"`
	Required  bool   `json:"required"`
}

// ConsultationFields lists the form inputs in storage field order.
var ConsultationFields = []ConsultationField{
	{Key: "date", Label: "Date de consultation", Required: true},
	{Key: "patient_last_name", Label: "Nom du patient", Required: true},
	{Key: "patient_first_name", Label: "Prénom du patient", Required: true},
	{Key: "age", Label: "Âge", Required: true},
	{Key: "reason", Label: "Motif de consultation", Multiline: true, Required: true},
	{Key: "clinical_exam", Label: "Examen clinique", Multiline: true},
	{Key: "complementary_exams", Label: "Examens complémentaires", Multiline: true},
	{Key: "treatment", Label: "Traitement", Multiline: true},
}
