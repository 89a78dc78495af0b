package endpoint

import (
	"fmt"

	"github.com/ariebrainware/cabinet-pediatrie/model"
	"github.com/ariebrainware/cabinet-pediatrie/store"
	"github.com/ariebrainware/cabinet-pediatrie/util"
	"github.com/gin-gonic/gin"
)

// consultationRequest is the submitted form. Pointer fields let an absent
// field be told apart from an empty one.
type consultationRequest struct {
	Date               *string `json:"date" example:"2024-05-01"`
	PatientLastName    *string `json:"patient_last_name" example:"Martin"`
	PatientFirstName   *string `json:"patient_first_name" example:"Léa"`
	Age                *int    `json:"age" example:"4"`
	Reason             *string `json:"reason" example:"Fièvre"`
	ClinicalExam       *string `json:"clinical_exam,omitempty"`
	ComplementaryExams *string `json:"complementary_exams,omitempty"`
	Treatment          *string `json:"treatment,omitempty"`
}

func missingField(name string) error {
	return fmt.Errorf("%w: %s is required", store.ErrIntegrity, name)
}

// toModel converts the form into a record. A missing required field is an
// integrity error, as storage would reject the NULL.
func (r consultationRequest) toModel() (model.Consultation, error) {
	switch {
	case r.Date == nil:
		return model.Consultation{}, missingField("date")
	case r.PatientLastName == nil:
		return model.Consultation{}, missingField("patient_last_name")
	case r.PatientFirstName == nil:
		return model.Consultation{}, missingField("patient_first_name")
	case r.Age == nil:
		return model.Consultation{}, missingField("age")
	case r.Reason == nil:
		return model.Consultation{}, missingField("reason")
	}
	return model.Consultation{
		Date:               *r.Date,
		PatientLastName:    *r.PatientLastName,
		PatientFirstName:   *r.PatientFirstName,
		Age:                *r.Age,
		Reason:             *r.Reason,
		ClinicalExam:       r.ClinicalExam,
		ComplementaryExams: r.ComplementaryExams,
		Treatment:          r.Treatment,
	}, nil
}

func bindConsultationOrRespond(c *gin.Context) (model.Consultation, bool) {
	var req consultationRequest
	if !bindJSONOrRespond(c, &req, "Formulaire de consultation invalide") {
		return model.Consultation{}, false
	}
	rec, err := req.toModel()
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Champ obligatoire manquant", Err: err})
		return model.Consultation{}, false
	}
	return rec, true
}

// ListConsultations godoc
// @Summary      List consultations
// @Description  List every consultation, most recent date first
// @Tags         Consultation
// @Produce      json
// @Success      200 {object} util.APIResponse{data=[]model.ConsultationSummary} "Consultations retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /consultation [get]
func ListConsultations(c *gin.Context) {
	s, ok := getConsultationStoreOrRespond(c)
	if !ok {
		return
	}

	consultations, err := s.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Impossible de charger les consultations")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Liste des consultations",
		Data: consultations,
	})
}

// ListConsultationFields godoc
// @Summary      Consultation form fields
// @Description  Static description of the consultation form inputs
// @Tags         Consultation
// @Produce      json
// @Success      200 {object} util.APIResponse{data=[]model.ConsultationField} "Fields"
// @Router       /consultation/fields [get]
func ListConsultationFields(c *gin.Context) {
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Champs du formulaire",
		Data: model.ConsultationFields,
	})
}

// CreateConsultation godoc
// @Summary      Create a consultation
// @Tags         Consultation
// @Accept       json
// @Produce      json
// @Param        request body consultationRequest true "Consultation"
// @Success      201 {object} util.APIResponse{data=model.Consultation} "Consultation created"
// @Failure      400 {object} util.APIResponse "Missing required field"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /consultation [post]
func CreateConsultation(c *gin.Context) {
	s, ok := getConsultationStoreOrRespond(c)
	if !ok {
		return
	}
	rec, ok := bindConsultationOrRespond(c)
	if !ok {
		return
	}

	id, err := s.Create(c.Request.Context(), rec)
	if err != nil {
		respondStoreError(c, err, "Impossible d'enregistrer la consultation")
		return
	}
	rec.ID = id

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Consultation enregistrée avec succès!",
		Data: rec,
	})
}

// GetConsultation godoc
// @Summary      Get a consultation
// @Tags         Consultation
// @Produce      json
// @Param        id path int true "Consultation ID"
// @Success      200 {object} util.APIResponse{data=model.Consultation} "Consultation retrieved"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /consultation/{id} [get]
func GetConsultation(c *gin.Context) {
	s, ok := getConsultationStoreOrRespond(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	rec, err := s.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Impossible de charger la consultation")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Consultation",
		Data: rec,
	})
}

// UpdateConsultation godoc
// @Summary      Replace a consultation
// @Description  Overwrite every field of the consultation; omitted optional fields are cleared
// @Tags         Consultation
// @Accept       json
// @Produce      json
// @Param        id path int true "Consultation ID"
// @Param        request body consultationRequest true "Consultation"
// @Success      200 {object} util.APIResponse{data=model.Consultation} "Consultation updated"
// @Failure      400 {object} util.APIResponse "Missing required field"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /consultation/{id} [put]
func UpdateConsultation(c *gin.Context) {
	s, ok := getConsultationStoreOrRespond(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	rec, ok := bindConsultationOrRespond(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := s.Update(ctx, id, rec); err != nil {
		respondStoreError(c, err, "Impossible de mettre à jour la consultation")
		return
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		respondStoreError(c, err, "Impossible de charger la consultation")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Consultation mise à jour avec succès!",
		Data: updated,
	})
}

// DeleteConsultation godoc
// @Summary      Delete a consultation
// @Description  Permanently remove the consultation
// @Tags         Consultation
// @Produce      json
// @Param        id path int true "Consultation ID"
// @Success      200 {object} util.APIResponse "Consultation deleted"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /consultation/{id} [delete]
func DeleteConsultation(c *gin.Context) {
	s, ok := getConsultationStoreOrRespond(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := s.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Impossible de supprimer la consultation")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Consultation supprimée avec succès!",
		Data: map[string]interface{}{"id": id},
	})
}
