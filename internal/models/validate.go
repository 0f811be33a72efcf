package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Один общий инстанс валидатора на пакет (потокобезопасен, кэширует метаданные).
var validate = validator.New(validator.WithRequiredStructEnabled())

// mac-адрес храним и сравниваем как 12 hex-символов без разделителей
var macRE = regexp.MustCompile(`^[a-fA-F0-9]{12}$`)

func init() {
	_ = validate.RegisterValidation("mac12", func(fl validator.FieldLevel) bool {
		return macRE.MatchString(fl.Field().String())
	})
}
