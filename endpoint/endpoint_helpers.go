package endpoint

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ariebrainware/cabinet-pediatrie/middleware"
	"github.com/ariebrainware/cabinet-pediatrie/store"
	"github.com/ariebrainware/cabinet-pediatrie/util"
	"github.com/gin-gonic/gin"
)

func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

func getConsultationStoreOrRespond(c *gin.Context) (*store.ConsultationStore, bool) {
	s := middleware.GetConsultationStore(c)
	if s == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("consultation store is nil")})
		return nil, false
	}
	return s, true
}

func getCredentialStoreOrRespond(c *gin.Context) (*store.CredentialStore, bool) {
	s := middleware.GetCredentialStore(c)
	if s == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("credential store is nil")})
		return nil, false
	}
	return s, true
}

func getGateOrRespond(c *gin.Context) (*middleware.Gate, bool) {
	g := middleware.GetGate(c)
	if g == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Authentication not available", Err: fmt.Errorf("gate is nil")})
		return nil, false
	}
	return g, true
}

// parseIDParam reads the :id path parameter.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Identifiant de consultation invalide",
			Err: fmt.Errorf("invalid consultation id %q", c.Param("id")),
		})
		return 0, false
	}
	return uint(id), true
}

// respondStoreError maps a store error to the matching HTTP response.
func respondStoreError(c *gin.Context, err error, msg string) {
	params := util.APIErrorParams{Msg: msg, Err: err}
	switch {
	case errors.Is(err, store.ErrNotFound):
		params.Msg = "Consultation introuvable"
		util.CallErrorNotFound(c, params)
	case errors.Is(err, store.ErrIntegrity):
		util.CallUserError(c, params)
	default:
		util.CallServerError(c, params)
	}
}
