package controllers

import "net/http"

// ModelInfo reports which completion model the service is running with.
type ModelInfo interface {
	Model() string
	Configured() bool
}

// MetaController serves the static service metadata endpoints.
type MetaController struct {
	model ModelInfo
}

func NewMetaController(model ModelInfo) *MetaController {
	return &MetaController{model: model}
}

type agentInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// agentCatalog is the fixed provider listing; it changes only with code.
var agentCatalog = []agentInfo{
	{Name: "Market Data", Description: "Price, market cap, volume and supply metrics"},
	{Name: "Scam Analysis", Description: "Heuristic scam-risk scoring from known fraud indicators"},
	{Name: "Security Audit", Description: "Audit status, scores and vulnerability summaries"},
	{Name: "Exchange Analysis", Description: "Exchange trust, regulation and incident history"},
	{Name: "Founder Analysis", Description: "Founder and team credibility assessment"},
	{Name: "Project Analysis", Description: "Project fundamentals, use cases and development activity"},
	{Name: "Related Projects", Description: "Cross-references to projects in the same ecosystem"},
}

// GetWelcome is the root landing response.
func (c *MetaController) GetWelcome(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"service": "decryptify",
		"message": "Crypto trust assessment API. See /api/agents for available analyses.",
		"status":  "success",
	})
}

// GetAgents lists the analysis providers.
func (c *MetaController) GetAgents(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"agents": agentCatalog,
		"status": "success",
	})
}

// GetModel reports the configured completion model. The API key itself is
// never echoed back.
func (c *MetaController) GetModel(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"model":       c.model.Model(),
		"api_key_set": c.model.Configured(),
		"status":      "success",
	})
}
