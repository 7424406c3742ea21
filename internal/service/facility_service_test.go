package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/sanitrack/sanitrack/internal/config"
	"github.com/sanitrack/sanitrack/internal/domain"
	"github.com/sanitrack/sanitrack/internal/ledger"
	"github.com/sanitrack/sanitrack/internal/registry"
	"github.com/sanitrack/sanitrack/internal/service"
)

// FacilityServiceTestSuite is the test suite for FacilityService.
type FacilityServiceTestSuite struct {
	suite.Suite
	reg        *registry.Registry
	led        *ledger.Ledger
	svc        *service.FacilityService
	cleaner    *domain.Staff
	supervisor *domain.Staff
}

func (s *FacilityServiceTestSuite) SetupTest() {
	now := time.Now()
	s.reg = registry.New(registry.SeedFacilities(now))
	s.led = ledger.New(50)
	s.reg.AddSink(s.led.Append)

	staffDir := registry.NewStaffDirectory(registry.SeedStaff(now))

	cfg := config.DefaultSimulation()
	cfg.CompletionDelay = 30 * time.Millisecond
	cfg.Seed = 42
	s.svc = service.New(s.reg, staffDir, s.led, cfg)

	var err error
	s.cleaner, err = staffDir.GetByID(registry.SeedCleanerID)
	s.Require().NoError(err)
	s.supervisor, err = staffDir.GetByID(registry.SeedSupervisorID)
	s.Require().NoError(err)
}

func (s *FacilityServiceTestSuite) TearDownTest() {
	s.svc.Shutdown()
}

func TestFacilityServiceSuite(t *testing.T) {
	suite.Run(t, new(FacilityServiceTestSuite))
}

func (s *FacilityServiceTestSuite) TestStartCleaningByAssignedCleaner() {
	f, err := s.svc.StartCleaning(s.cleaner, "facility_002")
	s.Require().NoError(err)
	s.Equal(domain.StatusCleaning, f.Status)
}

func (s *FacilityServiceTestSuite) TestStartCleaningUnassignedCleanerForbidden() {
	// facility_003 has no assigned cleaner.
	_, err := s.svc.StartCleaning(s.cleaner, "facility_003")
	s.ErrorIs(err, domain.ErrNotAssigned)
}

func (s *FacilityServiceTestSuite) TestSupervisorMayCleanAnywhere() {
	f, err := s.svc.StartCleaning(s.supervisor, "facility_003")
	s.Require().NoError(err)
	s.Equal(domain.StatusCleaning, f.Status)
}

func (s *FacilityServiceTestSuite) TestSecondStartConflicts() {
	_, err := s.svc.StartCleaning(s.cleaner, "facility_002")
	s.Require().NoError(err)

	_, err = s.svc.StartCleaning(s.supervisor, "facility_002")
	s.ErrorIs(err, domain.ErrCleaningInProgress)
}

func (s *FacilityServiceTestSuite) TestStartCleaningUnknownFacility() {
	_, err := s.svc.StartCleaning(s.cleaner, "facility_999")
	s.ErrorIs(err, domain.ErrFacilityNotFound)
}

func (s *FacilityServiceTestSuite) TestManualCompleteCleaning() {
	_, err := s.svc.StartCleaning(s.cleaner, "facility_002")
	s.Require().NoError(err)

	before, err := s.reg.Get("facility_002")
	s.Require().NoError(err)

	f, err := s.svc.CompleteCleaning("facility_002", s.cleaner.ID)
	s.Require().NoError(err)

	s.Equal(domain.StatusClean, f.Status)
	s.GreaterOrEqual(f.HygieneScore, 80)
	s.LessOrEqual(f.HygieneScore, 95)
	s.Equal(domain.AllAvailable(), f.Amenities)
	s.True(f.LastCleanedAt.After(before.LastCleanedAt))
}

func (s *FacilityServiceTestSuite) TestCompleteWithoutCleaningConflicts() {
	_, err := s.svc.CompleteCleaning("facility_002", s.cleaner.ID)
	s.ErrorIs(err, domain.ErrStatusConflict)
}

func (s *FacilityServiceTestSuite) TestScheduledCompletionFires() {
	_, err := s.svc.StartCleaning(s.cleaner, "facility_002")
	s.Require().NoError(err)

	s.Eventually(func() bool {
		f, err := s.reg.Get("facility_002")
		return err == nil && f.Status == domain.StatusClean
	}, time.Second, 5*time.Millisecond)

	f, err := s.reg.Get("facility_002")
	s.Require().NoError(err)
	s.GreaterOrEqual(f.HygieneScore, 80)
	s.LessOrEqual(f.HygieneScore, 95)
}

func (s *FacilityServiceTestSuite) TestManualCompleteCancelsScheduledTimer() {
	_, err := s.svc.StartCleaning(s.cleaner, "facility_002")
	s.Require().NoError(err)

	_, err = s.svc.CompleteCleaning("facility_002", s.cleaner.ID)
	s.Require().NoError(err)

	// Give the cancelled timer a chance to misfire; the ledger must show
	// exactly one completion.
	time.Sleep(100 * time.Millisecond)

	completions := 0
	for _, ev := range s.led.Snapshot() {
		if ev.FacilityID == "facility_002" && ev.Kind == domain.EventKindCleaningCompleted {
			completions++
		}
	}
	s.Equal(1, completions)
}

func (s *FacilityServiceTestSuite) TestAddReviewValidation() {
	_, err := s.svc.AddReview("facility_001", "visitor", 0, "bad rating")
	s.ErrorIs(err, domain.ErrInvalidRating)

	_, err = s.svc.AddReview("facility_001", "visitor", 6, "bad rating")
	s.ErrorIs(err, domain.ErrInvalidRating)

	_, err = s.svc.AddReview("facility_999", "visitor", 4, "no such place")
	s.ErrorIs(err, domain.ErrFacilityNotFound)
}

func (s *FacilityServiceTestSuite) TestAddReviewDefaultsAuthor() {
	review, err := s.svc.AddReview("facility_001", "", 5, "spotless")
	s.Require().NoError(err)
	s.Equal("anonymous", review.Author)
	s.NotEmpty(review.ID)

	f, err := s.reg.Get("facility_001")
	s.Require().NoError(err)
	s.Len(f.Reviews, 1)
}

func (s *FacilityServiceTestSuite) TestStatsForDerivedFromLedger() {
	for _, id := range []string{"facility_002", "facility_004"} {
		_, err := s.svc.StartCleaning(s.cleaner, id)
		s.Require().NoError(err)
		_, err = s.svc.CompleteCleaning(id, s.cleaner.ID)
		s.Require().NoError(err)
	}

	stats, err := s.svc.StatsFor(s.cleaner.ID)
	s.Require().NoError(err)

	s.Equal(s.cleaner.ID, stats.StaffID)
	s.Equal(3, stats.AssignedFacilities)
	s.Equal(2, stats.TotalCleaned)
	s.GreaterOrEqual(stats.AverageScore, 80.0)
	s.LessOrEqual(stats.AverageScore, 95.0)
	s.InDelta(float64(2)/float64(3)*100, stats.EfficiencyPercent, 0.01)
}

func (s *FacilityServiceTestSuite) TestStatsForUnknownStaff() {
	_, err := s.svc.StatsFor("staff_999")
	s.ErrorIs(err, domain.ErrStaffNotFound)
}
