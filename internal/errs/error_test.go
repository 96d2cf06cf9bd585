package errs_test

import (
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/library-service/internal/errs"
)

func TestFromPg(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "serialization failure is transient",
			in:   &pgconn.PgError{Code: pgerrcode.SerializationFailure},
			want: errs.ErrTransientStore,
		},
		{
			name: "check violation breaks the invariant",
			in:   &pgconn.PgError{Code: pgerrcode.CheckViolation},
			want: errs.ErrInvariantViolation,
		},
		{
			name: "unique violation is a duplicate review",
			in:   &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			want: errs.ErrDuplicateReview,
		},
		{
			name: "foreign key violation names a missing row",
			in:   &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation},
			want: errs.ErrNotFound,
		},
		{
			name: "unparsable key names a missing row",
			in:   &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation},
			want: errs.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, errs.FromPg(tt.in), tt.want)
		})
	}
}

func TestFromPg_PassesThroughOtherErrors(t *testing.T) {
	t.Parallel()
	err := errors.New("dial timeout")
	require.Equal(t, err, errs.FromPg(err))
}
