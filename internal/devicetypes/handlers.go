package devicetypes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"userdevice/internal/logs"
	"userdevice/internal/models"
	"userdevice/internal/repo"
)

func NewHandler(store *repo.TypeStore) *Handler { return &Handler{store: store} }

type Handler struct {
	store *repo.TypeStore
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var t models.DeviceType
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		models.WriteError(w, models.ErrInvalid)
		return
	}
	id, err := h.store.Create(r.Context(), &t)
	if err != nil {
		logs.Logger.Debugf("device type create failed: %v", err)
		models.WriteError(w, err)
		return
	}
	logs.Logger.Infof("device type created, type=%s", id)
	models.WriteJSON(w, http.StatusCreated, idResponse(id))
}

func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	resp, err := h.store.Query(r.Context(), q)
	if err != nil {
		logs.Logger.Debugf("device type query failed: %v", err)
		models.WriteError(w, err)
		return
	}
	logs.Logger.Infof("device type query ok, size=%d total=%d", len(resp.Results), resp.Total)
	models.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["type"]
	t, err := h.store.Get(r.Context(), id)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, t)
}

// Update — PUT: полный объект, обязательный набор полей проверяется до
// merge-пути.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["type"]
	var t models.DeviceType
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		models.WriteError(w, models.ErrInvalid)
		return
	}
	if err := t.ValidateForCreate(); err != nil {
		models.WriteError(w, err)
		return
	}
	if err := h.store.Update(r.Context(), id, t.AsPatch()); err != nil {
		models.WriteError(w, err)
		return
	}
	logs.Logger.Infof("device type updated, type=%s", id)
	models.WriteJSON(w, http.StatusOK, idResponse(id))
}

// PartialUpdate — PATCH: накладываем только присутствующие поля.
func (h *Handler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["type"]
	var p models.DeviceTypePatch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		models.WriteError(w, models.ErrInvalid)
		return
	}
	if err := h.store.Update(r.Context(), id, &p); err != nil {
		models.WriteError(w, err)
		return
	}
	logs.Logger.Infof("device type partially updated, type=%s", id)
	models.WriteJSON(w, http.StatusOK, idResponse(id))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["type"]
	if err := h.store.Delete(r.Context(), id); err != nil {
		models.WriteError(w, err)
		return
	}
	logs.Logger.Infof("device type deleted, type=%s", id)
	models.WriteJSON(w, http.StatusOK, idResponse(id))
}

func idResponse(id string) map[string]string {
	return map[string]string{"device_type": id}
}

func parseQuery(r *http.Request) (*models.DeviceTypeQuery, error) {
	vals := r.URL.Query()
	q := &models.DeviceTypeQuery{Sort: vals.Get("sort")}

	var err error
	if q.Offset, err = models.QueryInt(vals, "offset"); err != nil {
		return nil, err
	}
	if q.Limit, err = models.QueryInt(vals, "limit"); err != nil {
		return nil, err
	}
	if q.Name, err = models.QueryString(vals, "name"); err != nil {
		return nil, err
	}
	if q.Modelname, err = models.QueryString(vals, "modelname"); err != nil {
		return nil, err
	}
	if q.Manufacturer, err = models.QueryString(vals, "manufacturer"); err != nil {
		return nil, err
	}
	return q, nil
}
