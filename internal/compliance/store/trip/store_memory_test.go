package trip

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"staywatch/internal/compliance/models"
	id "staywatch/pkg/domain"
)

type InMemoryTripStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryTripStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryTripStoreSuite))
}

func (s *InMemoryTripStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
}

func interval(traveler id.TravelerID, entry, exit string) models.TravelInterval {
	return models.TravelInterval{
		TravelerID: traveler,
		Territory:  "FR",
		EntryDate:  models.MustParseDate(entry),
		ExitDate:   models.MustParseDate(exit),
	}
}

func (s *InMemoryTripStoreSuite) TestListIntervals() {
	ctx := context.Background()

	s.Run("unknown traveler returns an empty slice", func() {
		got, err := s.store.ListIntervals(ctx, id.TravelerID(uuid.New()))
		s.NoError(err)
		s.NotNil(got)
		s.Empty(got)
	})

	s.Run("stores malformed intervals verbatim", func() {
		traveler := id.TravelerID(uuid.New())
		bad := interval(traveler, "2024-03-10", "2024-03-01")
		s.Require().NoError(s.store.Add(ctx, bad))

		got, err := s.store.ListIntervals(ctx, traveler)
		s.Require().NoError(err)
		s.Equal([]models.TravelInterval{bad}, got)
	})

	s.Run("returned slice does not alias the store", func() {
		traveler := id.TravelerID(uuid.New())
		s.Require().NoError(s.store.Add(ctx, interval(traveler, "2024-01-01", "2024-01-05")))

		got, err := s.store.ListIntervals(ctx, traveler)
		s.Require().NoError(err)
		got[0].Territory = "XX"

		again, err := s.store.ListIntervals(ctx, traveler)
		s.Require().NoError(err)
		s.Equal("FR", again[0].Territory)
	})
}

func (s *InMemoryTripStoreSuite) TestReplaceAndListTravelers() {
	ctx := context.Background()
	a := id.TravelerID(uuid.New())
	b := id.TravelerID(uuid.New())
	s.Require().NoError(s.store.Add(ctx, interval(a, "2024-01-01", "2024-01-05"), interval(b, "2024-02-01", "2024-02-05")))

	travelers, err := s.store.ListTravelers(ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]id.TravelerID{a, b}, travelers)

	s.Require().NoError(s.store.Replace(ctx, a, nil))
	travelers, err = s.store.ListTravelers(ctx)
	s.Require().NoError(err)
	s.Equal([]id.TravelerID{b}, travelers)
}
