package devices

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"userdevice/internal/logs"
	"userdevice/internal/models"
	"userdevice/internal/repo"
)

func NewHandler(store *repo.DeviceStore) *Handler { return &Handler{store: store} }

type Handler struct {
	store *repo.DeviceStore
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var d models.Device
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		models.WriteError(w, models.ErrInvalid)
		return
	}
	id, err := h.store.Create(r.Context(), &d)
	if err != nil {
		logs.Logger.Debugf("device create failed: %v", err)
		models.WriteError(w, err)
		return
	}
	logs.Logger.Infof("device created, id=%s", id)
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
		logs.Logger.Debugf("device query failed: %v", err)
		models.WriteError(w, err)
		return
	}
	logs.Logger.Infof("device query ok, size=%d total=%d", len(resp.Results), resp.Total)
	models.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	d, err := h.store.Get(r.Context(), id)
	if err != nil {
		models.WriteError(w, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, d)
}

// Update — PUT: полный объект, обязательный набор полей проверяется до
// merge-пути.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var d models.Device
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		models.WriteError(w, models.ErrInvalid)
		return
	}
	if err := d.ValidateForCreate(); err != nil {
		models.WriteError(w, err)
		return
	}
	if err := h.store.Update(r.Context(), id, d.AsPatch()); err != nil {
		models.WriteError(w, err)
		return
	}
	logs.Logger.Infof("device updated, id=%s", id)
	models.WriteJSON(w, http.StatusOK, idResponse(id))
}

// PartialUpdate — PATCH: накладываем только присутствующие поля.
func (h *Handler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var p models.DevicePatch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		models.WriteError(w, models.ErrInvalid)
		return
	}
	if err := h.store.Update(r.Context(), id, &p); err != nil {
		models.WriteError(w, err)
		return
	}
	logs.Logger.Infof("device partially updated, id=%s", id)
	models.WriteJSON(w, http.StatusOK, idResponse(id))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.store.Delete(r.Context(), id); err != nil {
		models.WriteError(w, err)
		return
	}
	logs.Logger.Infof("device deleted, id=%s", id)
	models.WriteJSON(w, http.StatusOK, idResponse(id))
}

func idResponse(id string) map[string]string {
	return map[string]string{"device_id": id}
}

func parseQuery(r *http.Request) (*models.DeviceQuery, error) {
	vals := r.URL.Query()
	q := &models.DeviceQuery{Sort: vals.Get("sort")}

	var err error
	if q.Offset, err = models.QueryInt(vals, "offset"); err != nil {
		return nil, err
	}
	if q.Limit, err = models.QueryInt(vals, "limit"); err != nil {
		return nil, err
	}
	if q.Type, err = models.QueryUint(vals, "type"); err != nil {
		return nil, err
	}
	if q.MAC, err = models.QueryString(vals, "mac"); err != nil {
		return nil, err
	}
	if q.Name, err = models.QueryString(vals, "name"); err != nil {
		return nil, err
	}
	return q, nil
}
