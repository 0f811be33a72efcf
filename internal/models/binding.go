package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Binding — связка пользователь↔устройство. Пара (user_id, device_id)
// уникальна; обновления не поддерживаются (create/read/delete).
type Binding struct {
	ID       uint      `gorm:"primaryKey"`
	UserID   uint      `gorm:"column:user_id;not null;uniqueIndex:idx_bindings_user_device"`
	DeviceID uint      `gorm:"column:device_id;not null;uniqueIndex:idx_bindings_user_device"`
	BoundAt  time.Time `gorm:"column:bound_at"`

	// связи для FK-констрейнтов; User в ответы не попадает,
	// Device — только при attach (см. BindingQuery.AttachDevice)
	User   *User   `gorm:"foreignKey:UserID"`
	Device *Device `gorm:"foreignKey:DeviceID"`
}

func (b Binding) MarshalJSON() ([]byte, error) {
	type out struct {
		ID       string    `json:"id"`
		UserID   string    `json:"user_id"`
		DeviceID string    `json:"device_id"`
		BoundAt  time.Time `json:"boundAt"`
		Device   *Device   `json:"device,omitempty"`
	}
	return json.Marshal(out{
		ID:       strconv.FormatUint(uint64(b.ID), 10),
		UserID:   strconv.FormatUint(uint64(b.UserID), 10),
		DeviceID: strconv.FormatUint(uint64(b.DeviceID), 10),
		BoundAt:  b.BoundAt,
		Device:   b.Device,
	})
}

// BindingRequest — тело POST /bindings: оба id приходят строками.
type BindingRequest struct {
	UserID   string `json:"user_id" validate:"required,number"`
	DeviceID string `json:"device_id" validate:"required,number"`
}

func (r *BindingRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

var bindingSortColumns = map[string]string{
	"boundAt": "bound_at",
}

const defaultBindingSort = "-boundAt"

// BindingQuery — фильтры и пагинация запроса списка связок.
// AttachDevice включает жадную подгрузку устройства в каждый результат.
type BindingQuery struct {
	Page
	UserID       *uint
	DeviceID     *uint
	Sort         string
	AttachDevice bool
}

func (q *BindingQuery) Validate() error {
	if err := q.Page.Validate(); err != nil {
		return err
	}
	_, err := q.OrderClause()
	return err
}

func (q *BindingQuery) OrderClause() (string, error) {
	s := q.Sort
	if s == "" {
		s = defaultBindingSort
	}
	return ParseSort(s, bindingSortColumns)
}
