package db

import (
	"fmt"

	"mockcenter/internal/domain"
)

// WriteKinds names the taxonomy kinds a write maps onto: Failed for
// non-unique failures, NoRows when the statement matched nothing.
type WriteKinds struct {
	Failed domain.ErrorKind
	NoRows domain.ErrorKind
}

var (
	InsertKinds = WriteKinds{Failed: domain.KindInsertFailed, NoRows: domain.KindInsertFailed}
	UpdateKinds = WriteKinds{Failed: domain.KindUpdateFailed, NoRows: domain.KindNotFoundEntry}
	DeleteKinds = WriteKinds{Failed: domain.KindDeleteFailed, NoRows: domain.KindDeleteFailed}
)

// Translate maps a WriteResult onto the error taxonomy. A unique violation
// always becomes DuplicateEntry; every other failure becomes k.Failed.
func Translate(op string, res WriteResult, k WriteKinds) (Applied, error) {
	switch r := res.(type) {
	case Applied:
		if r.Rows <= 0 {
			return r, domain.E(k.NoRows, op, nil)
		}
		return r, nil
	case ConstraintViolation:
		if r.Unique {
			return Applied{}, domain.E(domain.KindDuplicateEntry, op, r)
		}
		return Applied{}, domain.E(k.Failed, op, r)
	case Failure:
		return Applied{}, domain.E(k.Failed, op, r.Err)
	}
	return Applied{}, domain.E(k.Failed, op, fmt.Errorf("unexpected write result %T", res))
}
