package service

import (
	"database/sql"
	"errors"
)

// orNotFound swaps a store miss for the given NotFound error.
func orNotFound(err, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return err
}
