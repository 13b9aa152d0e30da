//
// messages.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//

package wsstream

// Request runs script lines on the session's controller. Options are
// used only in the session's first request.
type Request struct {
	Options map[string]interface{} `json:"options,omitempty"`
	Script  []string               `json:"script"`
}

// Status reports the result of a request.
type Status struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Output  string `json:"output,omitempty"`
}
