package repo

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"userdevice/internal/models"
)

// classify сводит ошибку хранилища к доменному виду. Сначала смотрим
// переведённые gorm-ошибки (TranslateError), затем структурные коды
// драйверов — никакого разбора имён констрейнтов.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.ErrExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return models.ErrRefNotExist
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return models.ErrExists
		case "23503": // foreign_key_violation
			return models.ErrRefNotExist
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062: // ER_DUP_ENTRY
			return models.ErrExists
		case 1451, 1452: // ER_ROW_IS_REFERENCED_2, ER_NO_REFERENCED_ROW_2
			return models.ErrRefNotExist
		}
	}

	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		switch sqErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return models.ErrExists
		case sqlite3.ErrConstraintForeignKey:
			return models.ErrRefNotExist
		}
	}

	return fmt.Errorf("storage error: %w", err)
}

// parseID разбирает строковый id из URL. Нечисловой или пустой id —
// ошибка валидации, в отличие от числового, которого просто нет в базе.
func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad id %q", models.ErrInvalid, s)
	}
	return uint(n), nil
}

func formatID(id uint) string { return strconv.FormatUint(uint64(id), 10) }
