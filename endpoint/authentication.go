package endpoint

import (
	"errors"

	"github.com/ariebrainware/cabinet-pediatrie/middleware"
	"github.com/ariebrainware/cabinet-pediatrie/store"
	"github.com/ariebrainware/cabinet-pediatrie/util"
	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"doctor"`
	Password string `json:"password" binding:"required" example:"doctor"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

const loginFailedMsg = "Nom d'utilisateur ou mot de passe incorrect"

// Login godoc
// @Summary      Log in
// @Description  Verify the credential pair and open the application
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=SessionResponse} "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      401 {object} util.APIResponse "Invalid credentials"
// @Failure      429 {object} util.APIResponse "Too many attempts"
// @Router       /login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	creds, ok := getCredentialStoreOrRespond(c)
	if !ok {
		return
	}
	gate, ok := getGateOrRespond(c)
	if !ok {
		return
	}

	ip, agent := c.ClientIP(), c.Request.UserAgent()
	err := creds.Authenticate(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, store.ErrAuthFailure) {
		middleware.GetMetrics(c).ObserveLogin(false)
		util.LogLoginFailure(req.Username, ip, agent)
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: loginFailedMsg, Err: err})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	gate.Open(req.Username)
	middleware.GetMetrics(c).ObserveLogin(true)
	util.LogLoginSuccess(req.Username, ip, agent)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Bienvenue, " + req.Username,
		Data: SessionResponse{Authenticated: true, Username: req.Username},
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Close the application until the next login
// @Tags         Authentication
// @Produce      json
// @Success      200 {object} util.APIResponse{data=SessionResponse} "Logged out"
// @Router       /logout [delete]
func Logout(c *gin.Context) {
	gate, ok := getGateOrRespond(c)
	if !ok {
		return
	}
	username := gate.Close()
	if username != "" {
		util.LogLogout(username, c.ClientIP(), c.Request.UserAgent())
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Déconnexion réussie",
		Data: SessionResponse{Authenticated: false},
	})
}

// SessionStatus godoc
// @Summary      Session status
// @Description  Report whether the application is logged in
// @Tags         Authentication
// @Produce      json
// @Success      200 {object} util.APIResponse{data=SessionResponse} "Session status"
// @Router       /session [get]
func SessionStatus(c *gin.Context) {
	gate, ok := getGateOrRespond(c)
	if !ok {
		return
	}
	open, username := gate.Status()
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Session status",
		Data: SessionResponse{Authenticated: open, Username: username},
	})
}
