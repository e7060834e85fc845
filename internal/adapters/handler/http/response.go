package http

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

type dataResponse struct {
	Status  string `json:"status"`
	Token   string `json:"token,omitempty"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, dataResponse{Status: "success", Data: data})
}

func respondList(w http.ResponseWriter, status int, results int, data any) {
	respondJSON(w, status, dataResponse{Status: "success", Results: &results, Data: data})
}

func respondTokenData(w http.ResponseWriter, status int, token string, data any) {
	respondJSON(w, status, dataResponse{Status: "success", Token: token, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
