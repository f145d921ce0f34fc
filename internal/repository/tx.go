package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// InnoDB error numbers that mean the transaction lost a lock race and can
// be replayed as-is.
const (
	mysqlErrLockDeadlock    = 1213
	mysqlErrLockWaitTimeout = 1205
)

const txMaxAttempts = 3

// InTransaction runs fn in a database transaction, replaying it a bounded
// number of times when the database rolls it back for a deadlock or lock
// wait timeout. Concurrent bookings at the same slot take gap locks that
// InnoDB may resolve by killing one transaction; the replay then observes
// the committed row count and returns the business outcome. Errors returned
// by fn itself are never retried.
func InTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < txMaxAttempts; attempt++ {
		err = db.Transaction(fn)
		if !isLockConflict(err) {
			return err
		}
	}
	return err
}

func isLockConflict(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return mysqlErr.Number == mysqlErrLockDeadlock || mysqlErr.Number == mysqlErrLockWaitTimeout
}
