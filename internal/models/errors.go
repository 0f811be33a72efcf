package models

import "errors"

// Доменная таксономия ошибок. Репозитории сводят ошибки хранилища к этим
// видам и никогда не отдают наружу детали драйвера; клиент видит только
// фиксированные сообщения (см. WriteError).
var (
	ErrInvalid     = errors.New("invalid request")
	ErrNotFound    = errors.New("resource does not exist")
	ErrRefNotExist = errors.New("referenced resource does not exist")
	ErrExists      = errors.New("resource already exists")
)
