package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryResponse — единый конверт ответа на запросы списков:
// total — сколько записей подходит под фильтры всего,
// results — текущая страница.
type QueryResponse[T any] struct {
	Total   int64 `json:"total"`
	Results []T   `json:"results"`
}

// Page — постраничные параметры. Отдаём только выровненные страницы:
// offset обязан быть кратен limit.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) Validate() error {
	if p.Offset < 0 {
		return fmt.Errorf("%w: offset must be >= 0", ErrInvalid)
	}
	if p.Limit < 1 {
		return fmt.Errorf("%w: limit must be >= 1", ErrInvalid)
	}
	if p.Offset%p.Limit != 0 {
		return fmt.Errorf("%w: offset must be a multiple of limit", ErrInvalid)
	}
	return nil
}

// ParseSort разбирает токен сортировки: ведущий "-" — по убыванию.
// allowed отображает токен поля на имя колонки; всё вне allow-листа — ошибка
// до обращения к хранилищу.
func ParseSort(token string, allowed map[string]string) (string, error) {
	desc := strings.HasPrefix(token, "-")
	field := strings.TrimPrefix(token, "-")
	col, ok := allowed[field]
	if !ok {
		return "", fmt.Errorf("%w: unknown sort field %q", ErrInvalid, field)
	}
	if desc {
		return col + " DESC", nil
	}
	return col + " ASC", nil
}

/* хелперы разбора строки запроса (для контроллеров) */

// QueryInt читает обязательный числовой параметр.
func QueryInt(vals url.Values, key string) (int, error) {
	s := vals.Get(key)
	if s == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalid, key)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalid, key)
	}
	return n, nil
}

// QueryString читает необязательный строковый фильтр; пустое значение — ошибка.
func QueryString(vals url.Values, key string) (*string, error) {
	if _, ok := vals[key]; !ok {
		return nil, nil
	}
	s := vals.Get(key)
	if s == "" {
		return nil, fmt.Errorf("%w: %s must not be empty", ErrInvalid, key)
	}
	return &s, nil
}

// QueryBool читает необязательный булев фильтр.
func QueryBool(vals url.Values, key string) (*bool, error) {
	if _, ok := vals[key]; !ok {
		return nil, nil
	}
	b, err := strconv.ParseBool(vals.Get(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a boolean", ErrInvalid, key)
	}
	return &b, nil
}

// QueryUint читает необязательный числовой фильтр.
func QueryUint(vals url.Values, key string) (*uint, error) {
	if _, ok := vals[key]; !ok {
		return nil, nil
	}
	n, err := strconv.ParseUint(vals.Get(key), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalid, key)
	}
	u := uint(n)
	return &u, nil
}
