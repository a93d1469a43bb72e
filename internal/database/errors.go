package database

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrDisconnected   = errors.New("database connection is not established")
	ErrRejected       = errors.New("rejected by the database")
	ErrUnknownRoutine = errors.New("unknown stored procedure")
)

// MySQL server error numbers we translate.
const (
	erSignalException = 1644 // SIGNAL inside a procedure
	erRowIsReferenced = 1451
	erNoReferencedRow = 1452
	erBadNull         = 1048
	erDupEntry        = 1062
	erDataTooLong     = 1406
	erTruncatedValue  = 1366
	erSPDoesNotExist  = 1305
)

// classify maps server errors onto our sentinels, keeping the server's
// message so the UI can show why a call was refused.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}

	switch me.Number {
	case erSignalException, erRowIsReferenced, erNoReferencedRow, erBadNull, erDupEntry, erDataTooLong, erTruncatedValue:
		return fmt.Errorf("%w: %s", ErrRejected, me.Message)
	case erSPDoesNotExist:
		return fmt.Errorf("%w: %s", ErrUnknownRoutine, me.Message)
	}
	return err
}
