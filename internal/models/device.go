package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Device — конкретное устройство. Ссылается на DeviceType по колонке type.
// JSON-имена в snake_case, id сериализуется строкой, type — числом.
type Device struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Type      uint      `json:"type" gorm:"column:type;not null" validate:"required"`
	Name      string    `json:"name" gorm:"size:50;not null" validate:"required,min=1,max=50"`
	MAC       string    `json:"mac" gorm:"column:mac;uniqueIndex;size:12;not null" validate:"required,mac12"`
	PinCode   int       `json:"pin_code" gorm:"not null" validate:"gte=0,lte=9999"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// связь для FK-констрейнта; в ответах не участвует
	DeviceType *DeviceType `json:"-" gorm:"foreignKey:Type;references:Type"`
}

// NormalizeMAC приводит mac-адрес к хранимой форме (lowercase).
func NormalizeMAC(mac string) string { return strings.ToLower(mac) }

func (d *Device) ValidateForCreate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func (d *Device) AsPatch() *DevicePatch {
	return &DevicePatch{
		Type:    &d.Type,
		Name:    &d.Name,
		MAC:     &d.MAC,
		PinCode: &d.PinCode,
	}
}

func (d Device) MarshalJSON() ([]byte, error) {
	type out struct {
		ID        string    `json:"id"`
		Type      uint      `json:"type"`
		Name      string    `json:"name"`
		MAC       string    `json:"mac"`
		PinCode   int       `json:"pin_code"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}
	return json.Marshal(out{
		ID:        strconv.FormatUint(uint64(d.ID), 10),
		Type:      d.Type,
		Name:      d.Name,
		MAC:       d.MAC,
		PinCode:   d.PinCode,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	})
}

// DevicePatch — частичное обновление устройства.
type DevicePatch struct {
	Type    *uint   `json:"type" validate:"omitnil,gt=0"`
	Name    *string `json:"name" validate:"omitnil,min=1,max=50"`
	MAC     *string `json:"mac" validate:"omitnil,mac12"`
	PinCode *int    `json:"pin_code" validate:"omitnil,gte=0,lte=9999"`
}

func (p *DevicePatch) Validate() error {
	if p.Type == nil && p.Name == nil && p.MAC == nil && p.PinCode == nil {
		return fmt.Errorf("%w: update requires at least one field", ErrInvalid)
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

var deviceSortColumns = map[string]string{
	"type":      "type",
	"name":      "name",
	"mac":       "mac",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

const defaultDeviceSort = "-updatedAt"

// DeviceQuery — фильтры и пагинация запроса списка устройств.
// MAC-фильтр нормализуется до сравнения.
type DeviceQuery struct {
	Page
	Type *uint
	MAC  *string
	Name *string
	Sort string
}

func (q *DeviceQuery) Validate() error {
	if err := q.Page.Validate(); err != nil {
		return err
	}
	_, err := q.OrderClause()
	return err
}

func (q *DeviceQuery) OrderClause() (string, error) {
	s := q.Sort
	if s == "" {
		s = defaultDeviceSort
	}
	return ParseSort(s, deviceSortColumns)
}
