//go:build e2e

package e2e

import (
	"context"
	"net/http"
	"net/url"
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

var defaultAgency = party.Ref{ID: uuid.MustParse("00000000-0000-0000-0000-00000000a001"), Type: party.TypeAgency}

type HoldE2ETestSuite struct {
	SharedSuite
	jwt *authtest.JWTHelper
}

func (s *HoldE2ETestSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func TestHoldE2ESuite(t *testing.T) {
	suite.Run(t, new(HoldE2ETestSuite))
}

func (s *HoldE2ETestSuite) createHold(holdee party.Ref, start, end string) resdto.HoldResponse {
	req := builder.NewHoldBuilder().With(func(b *builder.HoldBuilder) {
		b.Holdee = holdee
		b.Requester = defaultAgency
	}).WithDates(start, end).BuildCreateRequestDTO()

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/holds", req, s.jwt.GenerateToken(s.T(), defaultAgency))
	var body resdto.HoldResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
	return body
}

func (s *HoldE2ETestSuite) isAvailable(owner party.Ref, start, end string) bool {
	v := url.Values{}
	v.Set("ownerId", owner.ID.String())
	v.Set("role", owner.Type.String())
	v.Set("start", start+"T00:00:00Z")
	v.Set("end", end+"T00:00:00Z")

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/availability?"+v.Encode(), nil, s.jwt.GenerateToken(s.T(), defaultAgency))
	var body resdto.AvailabilityResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	return body.Available
}

func (s *HoldE2ETestSuite) TestGroupTour() {
	s.Run("success: accepted hold blocks the guide for every day", func() {
		guide := dbtest.CreateTestParty(s.T(), s.DB, party.TypeGuide, "Aiko Tanaka")
		s.True(s.isAvailable(guide, "2025-06-01", "2025-06-04"))

		h := s.createHold(guide, "2025-06-01", "2025-06-03")
		s.Equal("pending", h.Status)
		s.True(s.isAvailable(guide, "2025-06-01", "2025-06-04"), "pending holds do not block")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/holds/"+h.ID.String()+"/respond",
			map[string]string{"decision": "accepted", "message": "See you there"}, s.jwt.GenerateToken(s.T(), guide))
		var resp resdto.RespondHoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("accepted", resp.Hold.Status)
		s.Len(resp.Slots, 3)
		s.Empty(resp.PartialError)

		s.Equal(3, dbtest.CountSlots(s.T(), s.DB, h.ID))
		s.False(s.isAvailable(guide, "2025-06-02", "2025-06-03"))
		s.True(s.isAvailable(guide, "2025-06-04", "2025-06-05"))
	})

	s.Run("error: second answer conflicts", func() {
		guide := dbtest.CreateTestParty(s.T(), s.DB, party.TypeGuide, "Ken Sato")
		h := s.createHold(guide, "2025-06-10", "2025-06-10")
		token := s.jwt.GenerateToken(s.T(), guide)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/holds/"+h.ID.String()+"/respond",
			map[string]string{"decision": "declined"}, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/holds/"+h.ID.String()+"/respond",
			map[string]string{"decision": "accepted"}, token)
		s.Equal(http.StatusConflict, rec.Code)
		s.Zero(dbtest.CountSlots(s.T(), s.DB, h.ID))
	})

	s.Run("error: requester cannot respond", func() {
		guide := dbtest.CreateTestParty(s.T(), s.DB, party.TypeGuide, "Mei Ito")
		h := s.createHold(guide, "2025-06-12", "2025-06-12")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/holds/"+h.ID.String()+"/respond",
			map[string]string{"decision": "accepted"}, s.jwt.GenerateToken(s.T(), defaultAgency))
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *HoldE2ETestSuite) TestExpiry() {
	s.Run("success: swept hold can no longer be answered", func() {
		guide := dbtest.CreateTestParty(s.T(), s.DB, party.TypeGuide, "Yui Mori")
		h := s.createHold(guide, "2025-07-01", "2025-07-02")

		dbtest.ForceHoldExpiry(s.T(), s.DB, h.ID, time.Now().Add(-time.Minute))
		res, err := s.Sweeper.Tick(context.Background())
		s.Require().NoError(err)
		s.False(res.Skipped)
		s.Equal(1, res.ExpiredHolds)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/holds/"+h.ID.String(), nil, s.jwt.GenerateToken(s.T(), guide))
		var got resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal("expired", got.Status)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/holds/"+h.ID.String()+"/respond",
			map[string]string{"decision": "accepted"}, s.jwt.GenerateToken(s.T(), guide))
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("success: expiry applies before the sweep runs", func() {
		guide := dbtest.CreateTestParty(s.T(), s.DB, party.TypeGuide, "Sora Abe")
		h := s.createHold(guide, "2025-07-05", "2025-07-05")
		dbtest.ForceHoldExpiry(s.T(), s.DB, h.ID, time.Now().Add(-time.Minute))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/holds/"+h.ID.String()+"/respond",
			map[string]string{"decision": "accepted"}, s.jwt.GenerateToken(s.T(), guide))
		s.Equal(http.StatusConflict, rec.Code)
		s.Zero(dbtest.CountSlots(s.T(), s.DB, h.ID))
	})
}

func (s *HoldE2ETestSuite) TestAdvisoryOverlap() {
	s.Run("success: overlapping holds are both accepted", func() {
		guide := dbtest.CreateTestParty(s.T(), s.DB, party.TypeGuide, "Riku Kato")
		first := s.createHold(guide, "2025-08-01", "2025-08-03")
		second := s.createHold(guide, "2025-08-02", "2025-08-04")
		token := s.jwt.GenerateToken(s.T(), guide)

		for _, id := range []uuid.UUID{first.ID, second.ID} {
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/holds/"+id.String()+"/respond",
				map[string]string{"decision": "accepted"}, token)
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		}

		s.Equal(3, dbtest.CountSlots(s.T(), s.DB, first.ID))
		s.Equal(3, dbtest.CountSlots(s.T(), s.DB, second.ID))
	})
}

func (s *HoldE2ETestSuite) TestCancel() {
	s.Run("success: requester cancels a pending hold", func() {
		guide := dbtest.CreateTestParty(s.T(), s.DB, party.TypeGuide, "Hina Ono")
		h := s.createHold(guide, "2025-09-01", "2025-09-01")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/holds/"+h.ID.String()+"/cancel", nil, s.jwt.GenerateToken(s.T(), defaultAgency))
		var got resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal("cancelled", got.Status)
	})

	s.Run("error: expired token", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/holds", nil, s.jwt.CreateExpiredToken(s.T(), defaultAgency))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}
