package ptr

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func IntFromPgtype(pi pgtype.Int4) *int {
	if !pi.Valid {
		return nil
	}
	v := int(pi.Int32)
	return &v
}

func IntToPgtype(v *int) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	// #nosec G115 -- capacities are validated small positive values
	return pgtype.Int4{Int32: int32(*v), Valid: true}
}

func TimeFromPgtype(pt pgtype.Timestamptz) *time.Time {
	if !pt.Valid {
		return nil
	}
	t := pt.Time.UTC()
	return &t
}

func TimeToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func StringFromPgtype(ps pgtype.Text) *string {
	if !ps.Valid {
		return nil
	}
	return &ps.String
}

func StringToPgtype(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func Of[T any](v T) *T {
	return &v
}
