//go:build unit

package httperr_test

import (
	"net/http"
	"testing"

	"availability-engine/internal/handler/httperr"
	"availability-engine/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: errs.Validation("end before start"), want: http.StatusBadRequest},
		{name: "not found", err: errs.NotFound("hold"), want: http.StatusNotFound},
		{name: "not party wins over invalid state", err: errs.WithKind(errs.New("requester cannot answer"), errs.ErrNotParty), want: http.StatusForbidden},
		{name: "forbidden", err: errs.WithKind(errs.New("agency"), errs.ErrForbidden), want: http.StatusForbidden},
		{name: "invalid state", err: errs.WithKind(errs.New("hold already accepted"), errs.ErrInvalidState), want: http.StatusConflict},
		{name: "wrapped invalid state", err: errs.Wrap(errs.WithKind(errs.New("expired"), errs.ErrInvalidState), "respond"), want: http.StatusConflict},
		{name: "unclassified", err: errs.New("connection reset"), want: http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, httperr.StatusFor(tc.err))
		})
	}
}
