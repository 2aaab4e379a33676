package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/lobbyregistry/internal/model"
)

type RecorderSuite struct {
	suite.Suite
	recorder *Recorder
	ctx      context.Context
}

func TestRecorderSuite(t *testing.T) {
	suite.Run(t, new(RecorderSuite))
}

func (s *RecorderSuite) SetupTest() {
	s.recorder = New(3)
	s.ctx = context.Background()
}

func (s *RecorderSuite) publish(names ...string) {
	for _, name := range names {
		s.Require().NoError(s.recorder.Publish(s.ctx, model.Event{
			Type:        model.EventPlayerRegistered,
			DisplayName: name,
		}))
	}
}

func (s *RecorderSuite) names(evts []model.Event) []string {
	out := make([]string, len(evts))
	for i, e := range evts {
		out[i] = e.DisplayName
	}
	return out
}

func (s *RecorderSuite) TestEmpty() {
	evts, err := s.recorder.Recent(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(evts)
}

func (s *RecorderSuite) TestNewestFirst() {
	s.publish("alice", "bob")

	evts, err := s.recorder.Recent(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal([]string{"bob", "alice"}, s.names(evts))
}

func (s *RecorderSuite) TestOverwritesOldest() {
	s.publish("alice", "bob", "carol", "dave")

	evts, err := s.recorder.Recent(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal([]string{"dave", "carol", "bob"}, s.names(evts))
}

func (s *RecorderSuite) TestLimit() {
	s.publish("alice", "bob", "carol")

	evts, err := s.recorder.Recent(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal([]string{"carol", "bob"}, s.names(evts))
}

func (s *RecorderSuite) TestDefaultCapacity() {
	s.Len(New(0).ring, DefaultCapacity)
}
