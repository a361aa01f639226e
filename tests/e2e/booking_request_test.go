//go:build e2e

package e2e

import (
	"net/http"
	"testing"
	"time"

	"availability-engine/internal/domain/party"
	resdto "availability-engine/internal/handler/dto/response"
	"availability-engine/tests/common/authtest"
	"availability-engine/tests/common/builder"
	"availability-engine/tests/common/dbtest"
	"availability-engine/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var defaultDMC = party.Ref{ID: uuid.MustParse("00000000-0000-0000-0000-00000000d001"), Type: party.TypeDMC}

type BookingRequestE2ETestSuite struct {
	SharedSuite
	jwt *authtest.JWTHelper
}

func (s *BookingRequestE2ETestSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func TestBookingRequestE2ESuite(t *testing.T) {
	suite.Run(t, new(BookingRequestE2ETestSuite))
}

func (s *BookingRequestE2ETestSuite) TestAcceptMaterializesSlot() {
	s.Run("success: accepted request blocks the window", func() {
		driver := dbtest.CreateTestParty(s.T(), s.DB, party.TypeTransport, "Kansai Coaches")
		startsAt := time.Now().UTC().Truncate(time.Hour).Add(72 * time.Hour)

		req := builder.NewBookingRequestBuilder().With(func(b *builder.BookingRequestBuilder) {
			b.Requester = defaultDMC
			b.Target = driver
			b.StartsAt = startsAt
			b.EndsAt = startsAt.Add(10 * time.Hour)
		}).BuildCreateRequestDTO()

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/booking-requests", req, s.jwt.GenerateToken(s.T(), defaultDMC))
		var created resdto.BookingRequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
		s.Equal("pending", created.Status)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/booking-requests/"+created.ID.String()+"/respond",
			map[string]string{"decision": "accepted"}, s.jwt.GenerateToken(s.T(), driver))
		var resp resdto.RespondBookingRequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("accepted", resp.Request.Status)
		s.Require().NotNil(resp.Slot)
		s.Equal("booking", resp.Slot.Source)
		s.Equal(1, dbtest.CountSlots(s.T(), s.DB, created.ID))

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/availability/blocking-owners",
			map[string]any{"ownerIds": []uuid.UUID{driver.ID}, "startsAt": startsAt.Add(time.Hour), "endsAt": startsAt.Add(2 * time.Hour)},
			s.jwt.GenerateToken(s.T(), defaultDMC))
		var owners resdto.BlockingOwnersResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &owners)
		s.Equal([]uuid.UUID{driver.ID}, owners.OwnerIDs)
	})

	s.Run("error: window already started", func() {
		driver := dbtest.CreateTestParty(s.T(), s.DB, party.TypeTransport, "Osaka Vans")
		startsAt := time.Now().UTC().Add(-time.Hour)

		req := builder.NewBookingRequestBuilder().With(func(b *builder.BookingRequestBuilder) {
			b.Requester = defaultDMC
			b.Target = driver
			b.StartsAt = startsAt
			b.EndsAt = startsAt.Add(4 * time.Hour)
		}).BuildCreateRequestDTO()

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/booking-requests", req, s.jwt.GenerateToken(s.T(), defaultDMC))
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
