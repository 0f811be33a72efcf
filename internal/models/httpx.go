package models

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Problem представляет ответ об ошибке в стиле RFC 7807.
type Problem struct {
	Type     string      `json:"type,omitempty"`   // URL с описанием типа проблемы (можно оставить пустым)
	Title    string      `json:"title"`            // краткое название
	Status   int         `json:"status"`           // HTTP код
	Detail   string      `json:"detail,omitempty"` // подробности
	Instance string      `json:"instance,omitempty"`
	Extra    interface{} `json:"extra,omitempty"` // произвольные поля (map/struct)
}

func WriteProblem(w http.ResponseWriter, status int, title, detail string, extra any) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Problem{
		Title:  title,
		Status: status,
		Detail: detail,
		Extra:  extra,
	})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError отображает доменную ошибку на HTTP-код с фиксированным текстом.
// ErrRefNotExist намеренно сведён к тому же 404, что и ErrNotFound: клиенту
// не важно, отсутствует сама запись или запись, на которую она ссылается.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalid):
		WriteProblem(w, http.StatusBadRequest, "Invalid request", "", nil)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrRefNotExist):
		WriteProblem(w, http.StatusNotFound, "Resource does not exist", "", nil)
	case errors.Is(err, ErrExists):
		WriteProblem(w, http.StatusConflict, "Resource with the same identity already exists", "", nil)
	default:
		WriteProblem(w, http.StatusInternalServerError, "Server error", "", nil)
	}
}
