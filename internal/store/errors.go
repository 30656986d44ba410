package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// store 對外只回傳這些錯誤，呼叫端以 errors.Is 判斷
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrInvalidReference = errors.New("invalid reference")
	ErrMissingField     = errors.New("missing required field")
	ErrValueTooLong     = errors.New("value too long")
)

// classify 把 pgx/Postgres 錯誤轉成 store 錯誤，其他錯誤原樣回傳
func classify(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		var kind error
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			kind = ErrConflict
		case pgerrcode.ForeignKeyViolation:
			kind = ErrInvalidReference
		case pgerrcode.NotNullViolation:
			kind = ErrMissingField
		case pgerrcode.StringDataRightTruncationDataException:
			kind = ErrValueTooLong
		}
		if kind != nil {
			return fmt.Errorf("%s: %w (%s)", op, kind, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
