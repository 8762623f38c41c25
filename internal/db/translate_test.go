package db

import (
	"errors"
	"testing"

	"mockcenter/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	dup := ClassifyError(&mysql.MySQLError{Number: 1062})
	fk := ClassifyError(&mysql.MySQLError{Number: 1452})
	boom := ClassifyError(errors.New("connection reset"))

	cases := []struct {
		name  string
		res   WriteResult
		kinds WriteKinds
		want  domain.ErrorKind
	}{
		{"insert duplicate", dup, InsertKinds, domain.KindDuplicateEntry},
		{"update duplicate", dup, UpdateKinds, domain.KindDuplicateEntry},
		{"insert other constraint", fk, InsertKinds, domain.KindInsertFailed},
		{"insert failure", boom, InsertKinds, domain.KindInsertFailed},
		{"update failure", boom, UpdateKinds, domain.KindUpdateFailed},
		{"update no rows", Applied{}, UpdateKinds, domain.KindNotFoundEntry},
		{"delete no rows", Applied{}, DeleteKinds, domain.KindDeleteFailed},
		{"delete failure", boom, DeleteKinds, domain.KindDeleteFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Translate("op", tc.res, tc.kinds)
			require.Error(t, err)
			kind, ok := domain.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tc.want, kind)
		})
	}
}

func TestTranslateApplied(t *testing.T) {
	applied, err := Translate("insert mock", Applied{Rows: 1, LastID: 9}, InsertKinds)
	require.NoError(t, err)
	assert.Equal(t, int64(9), applied.LastID)
}

func TestTranslateHidesCauseFromPublicMessage(t *testing.T) {
	_, err := Translate("insert mock", ClassifyError(errors.New("dial tcp 10.0.0.1: refused")), InsertKinds)
	r := domain.FromError(err)
	assert.Equal(t, domain.KindInsertFailed.Code(), r.Code)
	assert.NotContains(t, r.Message, "10.0.0.1")
}
