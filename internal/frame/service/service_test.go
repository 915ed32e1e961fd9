package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"targetonchain/internal/frame/models"
	"targetonchain/internal/frame/store"
	"targetonchain/internal/verification"
	dErrors "targetonchain/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	svc *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.svc = New(store.NewMemory())
}

func validCreate() models.CreateFrameRequest {
	return models.CreateFrameRequest{
		Title:            "Exclusive drop",
		Shop:             "store.example",
		Image:            "https://cdn.example/frame.png",
		Button:           "Reveal my pick",
		MatchingCriteria: string(verification.CriteriaReceiptsRunning),
	}
}

func (s *ServiceSuite) TestCreateAssignsIDAndParsesCriteria() {
	frame, err := s.svc.Create(context.Background(), validCreate())

	s.Require().NoError(err)
	s.NotZero(frame.ID)
	s.Equal(verification.CriteriaReceiptsRunning, frame.MatchingCriteria)
}

func (s *ServiceSuite) TestCreateRejectsBlankFields() {
	req := validCreate()
	req.Shop = "  "

	_, err := s.svc.Create(context.Background(), req)

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestCreateRejectsUnknownCriteria() {
	req := validCreate()
	req.MatchingCriteria = "SOMETHING_ELSE"

	_, err := s.svc.Create(context.Background(), req)

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestUpdateReplacesFrame() {
	ctx := context.Background()
	frame, err := s.svc.Create(ctx, validCreate())
	s.Require().NoError(err)

	updated, err := s.svc.Update(ctx, models.UpdateFrameRequest{
		ID:               frame.ID,
		Title:            "Renamed",
		Shop:             frame.Shop,
		Image:            frame.Image,
		Button:           frame.Button,
		MatchingCriteria: string(verification.CriteriaCoinbaseCountry),
	})

	s.Require().NoError(err)
	s.Equal("Renamed", updated.Title)

	got, err := s.svc.Get(ctx, frame.ID)
	s.Require().NoError(err)
	s.Equal(verification.CriteriaCoinbaseCountry, got.MatchingCriteria)
}

func (s *ServiceSuite) TestUpdateMissingFrame() {
	_, err := s.svc.Update(context.Background(), models.UpdateFrameRequest{
		ID:               404,
		Title:            "Ghost",
		Shop:             "store.example",
		Image:            "https://cdn.example/frame.png",
		Button:           "Reveal",
		MatchingCriteria: string(verification.CriteriaReceiptsRunning),
	})

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestDeleteMissingFrame() {
	err := s.svc.Delete(context.Background(), models.DeleteFrameRequest{ID: 404})

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestListOrdersByID() {
	ctx := context.Background()
	first, err := s.svc.Create(ctx, validCreate())
	s.Require().NoError(err)
	second, err := s.svc.Create(ctx, validCreate())
	s.Require().NoError(err)

	frames, err := s.svc.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(frames, 2)
	s.Equal(first.ID, frames[0].ID)
	s.Equal(second.ID, frames[1].ID)
}
