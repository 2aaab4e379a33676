package registry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/lobbyregistry/internal/dependencies/mocks"
	"github.com/mcoot/lobbyregistry/internal/events/memory"
	redisevents "github.com/mcoot/lobbyregistry/internal/events/redis"
	"github.com/mcoot/lobbyregistry/internal/model"
	"github.com/mcoot/lobbyregistry/internal/testutil"
)

var xmas2023 = time.Date(2023, 12, 25, 10, 0, 0, 0, time.UTC)

type RegistrySuite struct {
	suite.Suite
	clock    *mocks.MockClock
	ids      *mocks.MockIdentity
	recorder *memory.Recorder
	registry *Registry
	ctx      context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.clock = mocks.NewMockClock(xmas2023)
	s.ids = mocks.NewMockIdentity()
	s.recorder = memory.New(100)
	s.registry = New(s.clock, s.ids, s.recorder, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *RegistrySuite) useConfig(cfg Config) {
	s.registry = New(s.clock, s.ids, s.recorder, cfg, testutil.NopLogger())
}

func (s *RegistrySuite) register(name string) model.Player {
	p, err := s.registry.RegisterPlayer(s.ctx, name)
	s.Require().NoError(err)
	return p
}

func (s *RegistrySuite) createGame(title string, creator model.Player) model.GameView {
	g, err := s.registry.CreateGame(s.ctx, title, creator.PrivateID)
	s.Require().NoError(err)
	return g
}

func (s *RegistrySuite) join(g model.GameView, p model.Player) {
	_, err := s.registry.JoinGame(s.ctx, g.ID, p)
	s.Require().NoError(err)
}

func (s *RegistrySuite) memberNames(gameID uuid.UUID) []string {
	members, err := s.registry.GameMembers(s.ctx, gameID)
	s.Require().NoError(err)
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.DisplayName
	}
	return names
}

func (s *RegistrySuite) eventTypes() []model.EventType {
	evts, err := s.recorder.Recent(s.ctx, 0)
	s.Require().NoError(err)
	types := make([]model.EventType, len(evts))
	for i, e := range evts {
		// Recent is newest first
		types[len(evts)-1-i] = e.Type
	}
	return types
}

// RegisterPlayer tests

func (s *RegistrySuite) TestRegisterPlayerUsesGeneratedIDs() {
	private, public := uuid.New(), uuid.New()
	s.ids.Queue(private, public)

	p := s.register("alice")

	s.Equal(private, p.PrivateID)
	s.Equal(public, p.PublicID)
	s.Equal("alice", p.DisplayName)
	s.Equal(xmas2023, p.LastSeenAt)
}

func (s *RegistrySuite) TestRegisterPlayerNeverReusesPrivateIDAsPublic() {
	same := uuid.New()
	s.ids.Queue(same, same)

	p := s.register("alice")

	s.Equal(same, p.PrivateID)
	s.NotEqual(p.PrivateID, p.PublicID)
}

func (s *RegistrySuite) TestListPlayersInRegistrationOrder() {
	s.register("alice")
	s.register("bob")
	s.register("carol")

	players := s.registry.ListPlayers(s.ctx)
	s.Require().Len(players, 3)
	s.Equal("alice", players[0].DisplayName)
	s.Equal("bob", players[1].DisplayName)
	s.Equal("carol", players[2].DisplayName)
}

// FindPlayerByPublicID tests

func (s *RegistrySuite) TestFindPlayerRefreshesLiveness() {
	alice := s.register("alice")

	s.clock.Advance(15 * time.Minute)
	found, err := s.registry.FindPlayerByPublicID(s.ctx, alice.PublicID)
	s.Require().NoError(err)
	s.Equal(xmas2023.Add(15*time.Minute), found.LastSeenAt)

	// 30 minutes after registration but only 15 after the lookup
	s.clock.Advance(15 * time.Minute)
	_, err = s.registry.FindPlayerByPublicID(s.ctx, alice.PublicID)
	s.NoError(err)
}

func (s *RegistrySuite) TestFindPlayerByPrivateIDFails() {
	alice := s.register("alice")

	_, err := s.registry.FindPlayerByPublicID(s.ctx, alice.PrivateID)
	s.ErrorIs(err, model.ErrUnknownPlayer)
}

func (s *RegistrySuite) TestFindPlayerAfterTimeoutFails() {
	alice := s.register("alice")

	s.clock.Advance(DefaultPlayerTimeout + time.Second)

	_, err := s.registry.FindPlayerByPublicID(s.ctx, alice.PublicID)
	s.ErrorIs(err, model.ErrUnknownPlayer)
	s.Empty(s.registry.ListPlayers(s.ctx))
}

// CreateGame tests

func (s *RegistrySuite) TestCreateGameSucceeds() {
	alice := s.register("alice")
	gameID := uuid.New()
	s.ids.Queue(gameID)

	g := s.createGame("g1", alice)

	s.Equal(gameID, g.ID)
	s.Equal("g1", g.Title)
	s.Equal(alice.PublicID, g.Creator.PublicID)
	s.Require().Len(g.Members, 1)
	s.Equal(alice.PublicID, g.Members[0].PublicID)
}

func (s *RegistrySuite) TestCreateGameMarksCreatorAlive() {
	alice := s.register("alice")

	s.clock.Advance(15 * time.Minute)
	s.createGame("g1", alice)
	s.clock.Advance(15 * time.Minute)

	s.Len(s.registry.ListPlayers(s.ctx), 1)
	s.Len(s.registry.ListGames(s.ctx), 1)
}

func (s *RegistrySuite) TestCreateGameUnknownCreator() {
	alice := s.register("alice")

	_, err := s.registry.CreateGame(s.ctx, "g1", alice.PublicID)
	s.ErrorIs(err, model.ErrUnknownCreator)
	s.Empty(s.registry.ListGames(s.ctx))
}

func (s *RegistrySuite) TestCreateGameWhileInGameFails() {
	alice := s.register("alice")
	s.createGame("g1", alice)

	_, err := s.registry.CreateGame(s.ctx, "g2", alice.PrivateID)
	s.ErrorIs(err, model.ErrAlreadyInGame)
}

func (s *RegistrySuite) TestCreateGameWhileMemberOfAnotherGameFails() {
	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.join(g, bob)

	_, err := s.registry.CreateGame(s.ctx, "g2", bob.PrivateID)
	s.ErrorIs(err, model.ErrAlreadyInGame)
}

// JoinGame tests

func (s *RegistrySuite) TestJoinGameKeepsOrder() {
	alice, bob, carol := s.register("alice"), s.register("bob"), s.register("carol")
	g := s.createGame("g1", alice)

	s.join(g, bob)
	s.join(g, carol)

	s.Equal([]string{"alice", "bob", "carol"}, s.memberNames(g.ID))
}

func (s *RegistrySuite) TestJoinUnknownGame() {
	alice := s.register("alice")

	_, err := s.registry.JoinGame(s.ctx, uuid.New(), alice)
	s.ErrorIs(err, model.ErrUnknownGame)
}

func (s *RegistrySuite) TestJoinTwiceIsDuplicate() {
	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.join(g, bob)

	_, err := s.registry.JoinGame(s.ctx, g.ID, bob)
	s.ErrorIs(err, model.ErrDuplicateMember)

	_, err = s.registry.JoinGame(s.ctx, g.ID, alice)
	s.ErrorIs(err, model.ErrDuplicateMember)
}

func (s *RegistrySuite) TestJoinSecondGameFails() {
	alice, bob, carol := s.register("alice"), s.register("bob"), s.register("carol")
	g1 := s.createGame("g1", alice)
	g2 := s.createGame("g2", bob)
	s.join(g1, carol)

	_, err := s.registry.JoinGame(s.ctx, g2.ID, carol)
	s.ErrorIs(err, model.ErrAlreadyInGame)
}

func (s *RegistrySuite) TestJoinDeletedPlayerFails() {
	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.Require().NoError(s.registry.DeletePlayer(s.ctx, bob.PublicID, bob.PrivateID))

	_, err := s.registry.JoinGame(s.ctx, g.ID, bob)
	s.ErrorIs(err, model.ErrUnknownPlayer)
}

func (s *RegistrySuite) TestConcurrentJoinsToDifferentGamesAdmitOnce() {
	creators := make([]model.Player, 8)
	games := make([]model.GameView, len(creators))
	for i := range creators {
		creators[i] = s.register("creator")
		games[i] = s.createGame("game", creators[i])
	}
	bob := s.register("bob")

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for _, g := range games {
		for n := 0; n < 4; n++ {
			wg.Add(1)
			go func(id uuid.UUID) {
				defer wg.Done()
				if _, err := s.registry.JoinGame(s.ctx, id, bob); err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
				}
			}(g.ID)
		}
	}
	wg.Wait()

	s.Equal(1, successes)
	_, ok := s.registry.FindPlayerCurrentGame(s.ctx, bob.PublicID)
	s.True(ok)
}

// FindPlayerCurrentGame tests

func (s *RegistrySuite) TestFindPlayerCurrentGame() {
	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)

	found, ok := s.registry.FindPlayerCurrentGame(s.ctx, alice.PublicID)
	s.Require().True(ok)
	s.Equal(g.ID, found.ID)

	_, ok = s.registry.FindPlayerCurrentGame(s.ctx, bob.PublicID)
	s.False(ok)
}

// RemoveFromGame tests

func (s *RegistrySuite) TestRemoveScenario() {
	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.join(g, bob)

	games := s.registry.ListGames(s.ctx)
	s.Require().Len(games, 1)
	s.Equal("g1", games[0].Title)
	s.Equal([]string{"alice", "bob"}, s.memberNames(g.ID))

	// bob cannot kick alice
	_, err := s.registry.RemoveFromGame(s.ctx, g.ID, alice.PublicID, bob.PrivateID)
	s.ErrorIs(err, model.ErrForbidden)

	// alice leaves on her own
	removed, err := s.registry.RemoveFromGame(s.ctx, g.ID, alice.PublicID, alice.PrivateID)
	s.Require().NoError(err)
	s.True(removed)
	s.Equal([]string{"bob"}, s.memberNames(g.ID))

	// the last member leaving closes the game
	removed, err = s.registry.RemoveFromGame(s.ctx, g.ID, bob.PublicID, bob.PrivateID)
	s.Require().NoError(err)
	s.True(removed)
	s.Empty(s.registry.ListGames(s.ctx))

	_, err = s.registry.GetGame(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrUnknownGame)
}

func (s *RegistrySuite) TestCreatorCanKick() {
	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.join(g, bob)

	removed, err := s.registry.RemoveFromGame(s.ctx, g.ID, bob.PublicID, alice.PrivateID)
	s.Require().NoError(err)
	s.True(removed)
	s.Equal([]string{"alice"}, s.memberNames(g.ID))
	s.Contains(s.eventTypes(), model.EventMemberKicked)
}

func (s *RegistrySuite) TestRemoveNonMember() {
	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)

	removed, err := s.registry.RemoveFromGame(s.ctx, g.ID, bob.PublicID, alice.PrivateID)
	s.NoError(err)
	s.False(removed)
}

func (s *RegistrySuite) TestRemoveUnknownTargets() {
	alice := s.register("alice")
	g := s.createGame("g1", alice)

	_, err := s.registry.RemoveFromGame(s.ctx, uuid.New(), alice.PublicID, alice.PrivateID)
	s.ErrorIs(err, model.ErrUnknownGame)

	_, err = s.registry.RemoveFromGame(s.ctx, g.ID, uuid.New(), alice.PrivateID)
	s.ErrorIs(err, model.ErrUnknownPlayer)
}

func (s *RegistrySuite) TestPositionPolicyPromotesNextMember() {
	alice, bob, carol := s.register("alice"), s.register("bob"), s.register("carol")
	g := s.createGame("g1", alice)
	s.join(g, bob)
	s.join(g, carol)

	_, err := s.registry.RemoveFromGame(s.ctx, g.ID, alice.PublicID, alice.PrivateID)
	s.Require().NoError(err)

	view, err := s.registry.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(bob.PublicID, view.Creator.PublicID)

	// bob now holds creator rights and alice no longer does
	s.ErrorIs(s.registry.DeleteGame(s.ctx, g.ID, alice.PrivateID), model.ErrForbidden)
	s.NoError(s.registry.DeleteGame(s.ctx, g.ID, bob.PrivateID))
}

func (s *RegistrySuite) TestFounderPolicyKeepsCreatorRights() {
	cfg := DefaultConfig()
	cfg.CreatorPolicy = model.CreatorByFounder
	s.useConfig(cfg)

	alice, bob, carol := s.register("alice"), s.register("bob"), s.register("carol")
	g := s.createGame("g1", alice)
	s.join(g, bob)
	s.join(g, carol)

	_, err := s.registry.RemoveFromGame(s.ctx, g.ID, alice.PublicID, alice.PrivateID)
	s.Require().NoError(err)

	view, err := s.registry.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(alice.PublicID, view.Creator.PublicID)

	_, err = s.registry.RemoveFromGame(s.ctx, g.ID, carol.PublicID, bob.PrivateID)
	s.ErrorIs(err, model.ErrForbidden)

	removed, err := s.registry.RemoveFromGame(s.ctx, g.ID, carol.PublicID, alice.PrivateID)
	s.Require().NoError(err)
	s.True(removed)
}

func (s *RegistrySuite) TestFounderPolicyClosesGameWhenFounderExpires() {
	cfg := DefaultConfig()
	cfg.CreatorPolicy = model.CreatorByFounder
	s.useConfig(cfg)

	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.join(g, bob)
	_, err := s.registry.RemoveFromGame(s.ctx, g.ID, alice.PublicID, alice.PrivateID)
	s.Require().NoError(err)

	// bob stays active, alice goes silent
	s.clock.Advance(15 * time.Minute)
	_, err = s.registry.FindPlayerByPublicID(s.ctx, bob.PublicID)
	s.Require().NoError(err)
	s.clock.Advance(10 * time.Minute)

	s.Empty(s.registry.ListGames(s.ctx))
	s.Len(s.registry.ListPlayers(s.ctx), 1)
}

// DeleteGame tests

func (s *RegistrySuite) TestDeleteGameByCreator() {
	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.join(g, bob)

	s.Require().NoError(s.registry.DeleteGame(s.ctx, g.ID, alice.PrivateID))

	s.Empty(s.registry.ListGames(s.ctx))
	// bob is free to start a game of his own
	s.createGame("g2", bob)
}

func (s *RegistrySuite) TestDeleteGameErrors() {
	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.join(g, bob)

	s.ErrorIs(s.registry.DeleteGame(s.ctx, uuid.New(), alice.PrivateID), model.ErrUnknownGame)
	s.ErrorIs(s.registry.DeleteGame(s.ctx, g.ID, bob.PrivateID), model.ErrForbidden)
	s.ErrorIs(s.registry.DeleteGame(s.ctx, g.ID, alice.PublicID), model.ErrForbidden)
}

func (s *RegistrySuite) TestDeleteGameMarksCreatorAlive() {
	alice := s.register("alice")
	g := s.createGame("g1", alice)

	s.clock.Advance(15 * time.Minute)
	s.Require().NoError(s.registry.DeleteGame(s.ctx, g.ID, alice.PrivateID))
	s.clock.Advance(15 * time.Minute)

	s.Len(s.registry.ListPlayers(s.ctx), 1)
}

// DeletePlayer tests

func (s *RegistrySuite) TestDeletePlayer() {
	alice := s.register("alice")

	s.ErrorIs(s.registry.DeletePlayer(s.ctx, uuid.New(), alice.PrivateID), model.ErrUnknownPlayer)
	s.ErrorIs(s.registry.DeletePlayer(s.ctx, alice.PublicID, alice.PublicID), model.ErrForbidden)
	s.Require().NoError(s.registry.DeletePlayer(s.ctx, alice.PublicID, alice.PrivateID))

	s.Empty(s.registry.ListPlayers(s.ctx))
}

func (s *RegistrySuite) TestDeletePlayerCascadesIntoGame() {
	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.join(g, bob)

	s.Require().NoError(s.registry.DeletePlayer(s.ctx, bob.PublicID, bob.PrivateID))
	s.Equal([]string{"alice"}, s.memberNames(g.ID))

	s.Require().NoError(s.registry.DeletePlayer(s.ctx, alice.PublicID, alice.PrivateID))
	s.Empty(s.registry.ListGames(s.ctx))
}

func (s *RegistrySuite) TestDeletePlayerWithoutCascadeLeavesMembership() {
	cfg := DefaultConfig()
	cfg.CascadePlayerDelete = false
	s.useConfig(cfg)

	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.join(g, bob)

	s.Require().NoError(s.registry.DeletePlayer(s.ctx, bob.PublicID, bob.PrivateID))
	s.Equal([]string{"alice", "bob"}, s.memberNames(g.ID))

	// the creator can still kick the departed player
	removed, err := s.registry.RemoveFromGame(s.ctx, g.ID, bob.PublicID, alice.PrivateID)
	s.Require().NoError(err)
	s.True(removed)
}

func (s *RegistrySuite) TestDeletedMemberWithoutCascadeOutlivesExpiry() {
	cfg := DefaultConfig()
	cfg.CascadePlayerDelete = false
	s.useConfig(cfg)

	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.join(g, bob)
	s.Require().NoError(s.registry.DeletePlayer(s.ctx, alice.PublicID, alice.PrivateID))

	// bob expires; alice is no longer a player, so nothing ever expires her
	s.clock.Advance(DefaultPlayerTimeout + time.Minute)
	s.Empty(s.registry.ListPlayers(s.ctx))
	s.Equal([]string{"alice"}, s.memberNames(g.ID))

	s.clock.Advance(24 * time.Hour)
	view, err := s.registry.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(alice.PublicID, view.Creator.PublicID)
}

func (s *RegistrySuite) TestConcurrentBatchesPublishInCommitOrder() {
	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.registry.RegisterPlayer(s.ctx, "p")
			s.NoError(err)
		}()
	}
	wg.Wait()

	players := s.registry.ListPlayers(s.ctx)
	evts, err := s.recorder.Recent(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(evts, n)
	s.Require().Len(players, n)

	// history is newest first, players are in registration order
	for i, p := range players {
		s.Equal(p.PublicID, evts[n-1-i].PlayerID, "event %d out of commit order", i)
	}
}

// Expiry tests

func (s *RegistrySuite) TestSoloCreatorExpiryRemovesPlayerAndGame() {
	alice := s.register("alice")
	s.createGame("g1", alice)

	s.clock.Advance(DefaultPlayerTimeout + time.Minute)

	s.Empty(s.registry.ListPlayers(s.ctx))
	s.Empty(s.registry.ListGames(s.ctx))
}

func (s *RegistrySuite) TestExpiredMemberLeavesGame() {
	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.join(g, bob)

	s.clock.Advance(15 * time.Minute)
	_, err := s.registry.FindPlayerByPublicID(s.ctx, alice.PublicID)
	s.Require().NoError(err)
	s.clock.Advance(10 * time.Minute)

	s.Equal([]string{"alice"}, s.memberNames(g.ID))
}

func (s *RegistrySuite) TestExpiredCreatorHandsGameToNextMember() {
	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.join(g, bob)

	s.clock.Advance(15 * time.Minute)
	_, err := s.registry.FindPlayerByPublicID(s.ctx, bob.PublicID)
	s.Require().NoError(err)
	s.clock.Advance(10 * time.Minute)

	view, err := s.registry.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(bob.PublicID, view.Creator.PublicID)
}

func (s *RegistrySuite) TestJoinNeverSeesGameOfExpiredCreator() {
	alice := s.register("alice")
	g := s.createGame("g1", alice)

	s.clock.Advance(DefaultPlayerTimeout + time.Minute)
	bob := s.register("bob")

	_, err := s.registry.JoinGame(s.ctx, g.ID, bob)
	s.ErrorIs(err, model.ErrUnknownGame)
}

func (s *RegistrySuite) TestCustomTimeout() {
	cfg := DefaultConfig()
	cfg.PlayerTimeout = time.Minute
	s.useConfig(cfg)

	s.register("alice")
	s.clock.Advance(2 * time.Minute)

	s.Empty(s.registry.ListPlayers(s.ctx))
}

// Event tests

func (s *RegistrySuite) TestEventsFollowLifecycle() {
	alice, bob := s.register("alice"), s.register("bob")
	g := s.createGame("g1", alice)
	s.join(g, bob)
	_, err := s.registry.RemoveFromGame(s.ctx, g.ID, bob.PublicID, bob.PrivateID)
	s.Require().NoError(err)
	_, err = s.registry.RemoveFromGame(s.ctx, g.ID, alice.PublicID, alice.PrivateID)
	s.Require().NoError(err)

	s.Equal([]model.EventType{
		model.EventPlayerRegistered,
		model.EventPlayerRegistered,
		model.EventGameCreated,
		model.EventMemberJoined,
		model.EventMemberLeft,
		model.EventMemberLeft,
		model.EventGameClosed,
	}, s.eventTypes())
}

func (s *RegistrySuite) TestExpiryEventsCarryGame() {
	alice := s.register("alice")
	g := s.createGame("g1", alice)
	s.clock.Advance(DefaultPlayerTimeout + time.Minute)

	s.registry.ListPlayers(s.ctx)

	evts, err := s.recorder.Recent(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(evts, 2)
	s.Equal(model.EventGameClosed, evts[0].Type)
	s.Equal(model.EventPlayerExpired, evts[1].Type)
	s.Equal(g.ID, evts[1].GameID)
	s.Equal(alice.PublicID, evts[1].PlayerID)
}

func (s *RegistrySuite) TestCounts() {
	alice := s.register("alice")
	s.register("bob")
	s.createGame("g1", alice)

	players, games := s.registry.Counts(s.ctx)
	s.Equal(2, players)
	s.Equal(1, games)
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, model.Event) error {
	return errors.New("broker down")
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	logger, logs := testutil.CaptureLogger()
	reg := New(mocks.NewMockClock(xmas2023), mocks.NewMockIdentity(), failingPublisher{}, DefaultConfig(), logger)

	p, err := reg.RegisterPlayer(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.DisplayName)

	rec, ok := logs.Find("failed to publish event")
	require.True(t, ok, logs.String())
	assert.Equal(t, string(model.EventPlayerRegistered), rec["type"])
	assert.Equal(t, "registry", rec["component"])
}

func TestExpiryIsLogged(t *testing.T) {
	logger, logs := testutil.CaptureLogger()
	clk := mocks.NewMockClock(xmas2023)
	reg := New(clk, mocks.NewMockIdentity(), nil, DefaultConfig(), logger)

	p, err := reg.RegisterPlayer(context.Background(), "alice")
	require.NoError(t, err)
	clk.Advance(DefaultPlayerTimeout + time.Second)
	reg.ListPlayers(context.Background())

	rec, ok := logs.Find("player expired")
	require.True(t, ok, logs.String())
	assert.Equal(t, p.PublicID.String(), rec["player_id"])
}

func TestCancelledRequestStillPublishes(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	store := redisevents.NewWithClient(client, redisevents.DefaultConfig(), testutil.NopLogger())
	t.Cleanup(func() { _ = store.Close() })

	logger, logs := testutil.CaptureLogger()
	reg := New(mocks.NewMockClock(xmas2023), mocks.NewMockIdentity(), store, DefaultConfig(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := reg.RegisterPlayer(ctx, "alice")
	require.NoError(t, err)

	evts, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, evts, 1)
	assert.Equal(t, model.EventPlayerRegistered, evts[0].Type)
	assert.Equal(t, p.PublicID, evts[0].PlayerID)

	_, failed := logs.Find("failed to publish event")
	assert.False(t, failed, logs.String())
}
