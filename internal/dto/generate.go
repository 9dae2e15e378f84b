package dto

// GenerateRequest is the provider-neutral generation call built from a Query.
type GenerateRequest struct {
	Model  string
	Prompt string
}

type GenerateResponse struct {
	Text string
}

// OllamaGenerateRequest is the body of POST /api/generate.
type OllamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type OllamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// OllamaErrorResponse is what Ollama returns alongside a non-2xx status.
type OllamaErrorResponse struct {
	Error string `json:"error"`
}
