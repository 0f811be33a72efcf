package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// User — учётная запись. JSON-имена повторяют публичный API: поля в
// camelCase, id сериализуется строкой.
type User struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null" validate:"required,min=1"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null" validate:"required,email"`
	Password  string    `json:"password" gorm:"size:255;not null" validate:"required,min=6"`
	Enabled   bool      `json:"enabled" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidateForCreate проверяет обязательный набор полей (POST и PUT).
func (u *User) ValidateForCreate() error {
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// AsPatch представляет полный объект как патч со всеми полями —
// PUT идёт через тот же merge-путь, что и PATCH.
func (u *User) AsPatch() *UserPatch {
	return &UserPatch{
		Name:     &u.Name,
		Email:    &u.Email,
		Password: &u.Password,
		Enabled:  &u.Enabled,
	}
}

func (u User) MarshalJSON() ([]byte, error) {
	type out struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Password  string    `json:"password"`
		Enabled   bool      `json:"enabled"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
	return json.Marshal(out{
		ID:        strconv.FormatUint(uint64(u.ID), 10),
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	})
}

// UserPatch — частичное обновление: nil — поле не трогаем.
// Присутствующее поле обязано быть валидным и непустым.
type UserPatch struct {
	Name     *string `json:"name" validate:"omitnil,min=1"`
	Email    *string `json:"email" validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,min=6"`
	Enabled  *bool   `json:"enabled"`
}

func (p *UserPatch) Validate() error {
	if p.Name == nil && p.Email == nil && p.Password == nil && p.Enabled == nil {
		return fmt.Errorf("%w: update requires at least one field", ErrInvalid)
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// допустимые поля сортировки → колонки БД
var userSortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

const defaultUserSort = "-updatedAt"

// UserQuery — фильтры и пагинация запроса списка пользователей.
type UserQuery struct {
	Page
	Name    *string
	Email   *string
	Enabled *bool
	Sort    string
}

func (q *UserQuery) Validate() error {
	if err := q.Page.Validate(); err != nil {
		return err
	}
	_, err := q.OrderClause()
	return err
}

// OrderClause возвращает ORDER BY для текущего токена сортировки.
func (q *UserQuery) OrderClause() (string, error) {
	s := q.Sort
	if s == "" {
		s = defaultUserSort
	}
	return ParseSort(s, userSortColumns)
}
