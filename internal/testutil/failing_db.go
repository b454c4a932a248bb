package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/bachlog/internal/db"
)

// FailExecOnArg is a DBTX that injects Err into every ExecContext call whose
// arguments include Arg. Reads pass through untouched, which lets tests fail
// the insert of one specific course while its siblings persist.
type FailExecOnArg struct {
	db.DBTX
	Arg any
	Err error
}

func (f *FailExecOnArg) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	for _, a := range args {
		if a == f.Arg {
			return nil, f.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
