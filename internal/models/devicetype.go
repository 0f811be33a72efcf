package models

import "fmt"

// DeviceType — каталожная запись (модель/производитель), которую
// инстанцирует Device. Временных меток у типа нет.
type DeviceType struct {
	Type         uint   `json:"type" gorm:"primaryKey;column:type"`
	Name         string `json:"name" gorm:"size:50;not null" validate:"required,min=1,max=50"`
	Description  string `json:"description,omitempty" gorm:"size:150" validate:"max=150"`
	Modelname    string `json:"modelname" gorm:"size:100;not null" validate:"required,min=1,max=100"`
	Manufacturer string `json:"manufacturer" gorm:"size:100;not null" validate:"required,min=1,max=100"`
}

func (t *DeviceType) ValidateForCreate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func (t *DeviceType) AsPatch() *DeviceTypePatch {
	p := &DeviceTypePatch{
		Name:         &t.Name,
		Modelname:    &t.Modelname,
		Manufacturer: &t.Manufacturer,
	}
	if t.Description != "" {
		p.Description = &t.Description
	}
	return p
}

// DeviceTypePatch — частичное обновление типа устройства.
type DeviceTypePatch struct {
	Name         *string `json:"name" validate:"omitnil,min=1,max=50"`
	Description  *string `json:"description" validate:"omitnil,min=1,max=150"`
	Modelname    *string `json:"modelname" validate:"omitnil,min=1,max=100"`
	Manufacturer *string `json:"manufacturer" validate:"omitnil,min=1,max=100"`
}

func (p *DeviceTypePatch) Validate() error {
	if p.Name == nil && p.Description == nil && p.Modelname == nil && p.Manufacturer == nil {
		return fmt.Errorf("%w: update requires at least one field", ErrInvalid)
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

var deviceTypeSortColumns = map[string]string{
	"type":         "type",
	"name":         "name",
	"modelname":    "modelname",
	"manufacturer": "manufacturer",
}

const defaultDeviceTypeSort = "-type"

// DeviceTypeQuery — фильтры и пагинация запроса списка типов.
type DeviceTypeQuery struct {
	Page
	Name         *string
	Modelname    *string
	Manufacturer *string
	Sort         string
}

func (q *DeviceTypeQuery) Validate() error {
	if err := q.Page.Validate(); err != nil {
		return err
	}
	_, err := q.OrderClause()
	return err
}

func (q *DeviceTypeQuery) OrderClause() (string, error) {
	s := q.Sort
	if s == "" {
		s = defaultDeviceTypeSort
	}
	return ParseSort(s, deviceTypeSortColumns)
}
