package middleware

import (
	"github.com/ariebrainware/cabinet-pediatrie/monitoring"
	"github.com/ariebrainware/cabinet-pediatrie/store"
	"github.com/gin-gonic/gin"
)

const (
	CredentialsKey   = "credentials"
	ConsultationsKey = "consultations"
	GateKey          = "gate"
	MetricsKey       = "metrics"
)

// Dependencies are the objects handlers reach through the request context.
type Dependencies struct {
	Credentials   *store.CredentialStore
	Consultations *store.ConsultationStore
	Gate          *Gate
	Metrics       *monitoring.Metrics
}

// DependenciesMiddleware makes deps available to every handler.
func DependenciesMiddleware(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CredentialsKey, deps.Credentials)
		c.Set(ConsultationsKey, deps.Consultations)
		c.Set(GateKey, deps.Gate)
		c.Set(MetricsKey, deps.Metrics)
		c.Next()
	}
}

// GetCredentialStore returns the credential store, or nil if none was injected.
func GetCredentialStore(c *gin.Context) *store.CredentialStore {
	s, _ := c.Get(CredentialsKey)
	creds, _ := s.(*store.CredentialStore)
	return creds
}

// GetConsultationStore returns the consultation store, or nil if none was injected.
func GetConsultationStore(c *gin.Context) *store.ConsultationStore {
	s, _ := c.Get(ConsultationsKey)
	consultations, _ := s.(*store.ConsultationStore)
	return consultations
}

func GetGate(c *gin.Context) *Gate {
	g, _ := c.Get(GateKey)
	gate, _ := g.(*Gate)
	return gate
}

func GetMetrics(c *gin.Context) *monitoring.Metrics {
	m, _ := c.Get(MetricsKey)
	metrics, _ := m.(*monitoring.Metrics)
	return metrics
}
