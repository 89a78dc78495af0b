package endpoint

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createConsultation(t *testing.T, app *testApp, body map[string]interface{}) uint {
	t.Helper()
	code, resp := app.do(t, http.MethodPost, "/consultation", body)
	require.Equal(t, http.StatusCreated, code, "response: %v", resp)
	id, ok := dataMap(t, resp)["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

func TestConsultationRoutes_RequireLogin(t *testing.T) {
	app := setupTestApp(t, nil)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/consultation"},
		{http.MethodPost, "/consultation"},
		{http.MethodGet, "/consultation/fields"},
		{http.MethodGet, "/consultation/1"},
		{http.MethodPut, "/consultation/1"},
		{http.MethodDelete, "/consultation/1"},
		{http.MethodGet, "/stats"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			code, resp := app.do(t, r.method, r.path, nil)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Equal(t, "Veuillez vous connecter", resp["msg"])
		})
	}
}

func TestCreateConsultation(t *testing.T) {
	app := setupTestApp(t, nil)
	app.login(t)

	code, resp := app.do(t, http.MethodPost, "/consultation", consultationBody("2024-05-01", "Martin", 4))
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Consultation enregistrée avec succès!", resp["msg"])

	data := dataMap(t, resp)
	assert.NotZero(t, data["id"])
	assert.Equal(t, "Martin", data["patient_last_name"])
	assert.Nil(t, data["complementary_exams"])

	rec, err := app.consultations.Get(context.Background(), uint(data["id"].(float64)))
	require.NoError(t, err)
	assert.Equal(t, "Otite droite", *rec.ClinicalExam)
	assert.Nil(t, rec.ComplementaryExams)
}

func TestCreateConsultation_MissingRequiredField(t *testing.T) {
	app := setupTestApp(t, nil)
	app.login(t)

	for _, field := range []string{"date", "patient_last_name", "patient_first_name", "age", "reason"} {
		t.Run(field, func(t *testing.T) {
			body := consultationBody("2024-05-01", "Martin", 4)
			delete(body, field)

			code, resp := app.do(t, http.MethodPost, "/consultation", body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, false, resp["success"])
			assert.Contains(t, resp["error"], field)
		})
	}

	total, _, err := app.consultations.CountAndAverageAge(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateConsultation_EmptyStringsAccepted(t *testing.T) {
	app := setupTestApp(t, nil)
	app.login(t)

	body := consultationBody("", "", 0)
	body["reason"] = ""
	createConsultation(t, app, body)
}

func TestListConsultations_Order(t *testing.T) {
	app := setupTestApp(t, nil)
	app.login(t)

	older := createConsultation(t, app, consultationBody("2024-01-10", "Ancien", 3))
	first := createConsultation(t, app, consultationBody("2024-05-01", "Premier", 5))
	second := createConsultation(t, app, consultationBody("2024-05-01", "Second", 7))

	code, resp := app.do(t, http.MethodGet, "/consultation", nil)
	assert.Equal(t, http.StatusOK, code)

	list, ok := resp["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 3)

	var ids []uint
	for _, item := range list {
		row := item.(map[string]interface{})
		ids = append(ids, uint(row["id"].(float64)))
		assert.NotContains(t, row, "clinical_exam")
	}
	assert.Equal(t, []uint{second, first, older}, ids)
}

func TestListConsultations_Empty(t *testing.T) {
	app := setupTestApp(t, nil)
	app.login(t)

	code, resp := app.do(t, http.MethodGet, "/consultation", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []interface{}{}, resp["data"])
}

func TestGetConsultation(t *testing.T) {
	app := setupTestApp(t, nil)
	app.login(t)
	id := createConsultation(t, app, consultationBody("2024-05-01", "Martin", 4))

	code, resp := app.do(t, http.MethodGet, fmt.Sprintf("/consultation/%d", id), nil)
	assert.Equal(t, http.StatusOK, code)
	data := dataMap(t, resp)
	assert.Equal(t, "Amoxicilline", data["treatment"])
	assert.Equal(t, float64(4), data["age"])

	code, resp = app.do(t, http.MethodGet, "/consultation/999", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Consultation introuvable", resp["msg"])

	code, _ = app.do(t, http.MethodGet, "/consultation/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = app.do(t, http.MethodGet, "/consultation/0", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUpdateConsultation_FullReplace(t *testing.T) {
	app := setupTestApp(t, nil)
	app.login(t)
	id := createConsultation(t, app, consultationBody("2024-05-01", "Martin", 4))

	body := map[string]interface{}{
		"date":               "2024-05-02",
		"patient_last_name":  "Durand",
		"patient_first_name": "Hugo",
		"age":                6,
		"reason":             "",
	}
	code, resp := app.do(t, http.MethodPut, fmt.Sprintf("/consultation/%d", id), body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Consultation mise à jour avec succès!", resp["msg"])

	rec, err := app.consultations.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", rec.Date)
	assert.Equal(t, "Durand", rec.PatientLastName)
	assert.Equal(t, 6, rec.Age)
	assert.Equal(t, "", rec.Reason)
	assert.Nil(t, rec.ClinicalExam)
	assert.Nil(t, rec.Treatment)
}

func TestUpdateConsultation_Errors(t *testing.T) {
	app := setupTestApp(t, nil)
	app.login(t)
	id := createConsultation(t, app, consultationBody("2024-05-01", "Martin", 4))

	code, _ := app.do(t, http.MethodPut, "/consultation/999", consultationBody("2024-05-01", "X", 1))
	assert.Equal(t, http.StatusNotFound, code)

	body := consultationBody("2024-05-01", "Martin", 4)
	delete(body, "age")
	code, _ = app.do(t, http.MethodPut, fmt.Sprintf("/consultation/%d", id), body)
	assert.Equal(t, http.StatusBadRequest, code)

	rec, err := app.consultations.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 4, rec.Age)
}

func TestDeleteConsultation(t *testing.T) {
	app := setupTestApp(t, nil)
	app.login(t)
	id := createConsultation(t, app, consultationBody("2024-05-01", "Martin", 4))
	path := fmt.Sprintf("/consultation/%d", id)

	code, resp := app.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Consultation supprimée avec succès!", resp["msg"])

	code, _ = app.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = app.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestListConsultationFields(t *testing.T) {
	app := setupTestApp(t, nil)
	app.login(t)

	code, resp := app.do(t, http.MethodGet, "/consultation/fields", nil)
	assert.Equal(t, http.StatusOK, code)

	fields, ok := resp["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, fields, 8)
	first := fields[0].(map[string]interface{})
	assert.Equal(t, "date", first["key"])
	assert.Equal(t, true, first["required"])
	last := fields[7].(map[string]interface{})
	assert.Equal(t, "treatment", last["key"])
	assert.Equal(t, true, last["multiline"])
	assert.Equal(t, false, last["required"])
}
