package dto

// WhatisRequest is the JSON body accepted by GET / and POST /.
type WhatisRequest struct {
	CmdOrFunc *string `json:"cmd_or_func"`
	Verbose   *bool   `json:"verbose"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
