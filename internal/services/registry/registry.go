package registry

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/lobbyregistry/internal/dependencies/clock"
	"github.com/mcoot/lobbyregistry/internal/dependencies/identity"
	"github.com/mcoot/lobbyregistry/internal/events"
	"github.com/mcoot/lobbyregistry/internal/model"
)

// Registry owns every player and game. All operations run under one lock and
// start by purging expired players and empty games, so callers never observe
// stale state.
type Registry struct {
	mu     sync.Mutex
	tables tables

	// publishMu is taken before mu is released, so batches go out in
	// commit order
	publishMu sync.Mutex

	clock     clock.Clock
	ids       identity.Generator
	publisher events.Publisher
	cfg       Config
	logger    *slog.Logger
}

// New creates an empty Registry
func New(
	clock clock.Clock,
	ids identity.Generator,
	publisher events.Publisher,
	cfg Config,
	logger *slog.Logger,
) *Registry {
	if cfg.PlayerTimeout <= 0 {
		cfg.PlayerTimeout = DefaultPlayerTimeout
	}
	if cfg.CreatorPolicy == "" {
		cfg.CreatorPolicy = model.CreatorByPosition
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Registry{
		tables:    newTables(),
		clock:     clock,
		ids:       ids,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "registry")),
	}
}

// Config returns the registry configuration in effect
func (r *Registry) Config() Config {
	return r.cfg
}

// RegisterPlayer adds a new player with fresh private and public ids
func (r *Registry) RegisterPlayer(ctx context.Context, displayName string) (model.Player, error) {
	now, b := r.begin()
	defer r.end(ctx, b)

	privateID := r.ids.NewID()
	publicID := r.ids.NewID()
	for publicID == privateID || r.tables.players[publicID] != nil {
		publicID = r.ids.NewID()
	}

	player := model.NewPlayer(privateID, publicID, displayName, now)
	player.Seq = r.tables.nextSeq()
	r.tables.players[publicID] = player

	r.logger.Info("player registered",
		slog.String("player_id", publicID.String()),
		slog.String("display_name", displayName))
	b.add(model.EventPlayerRegistered, now, nil, player)

	return *player, nil
}

// FindPlayerByPublicID returns the player and counts the lookup as a sign of life
func (r *Registry) FindPlayerByPublicID(ctx context.Context, publicID uuid.UUID) (model.Player, error) {
	now, b := r.begin()
	defer r.end(ctx, b)

	player, ok := r.tables.players[publicID]
	if !ok {
		return model.Player{}, model.ErrUnknownPlayer
	}
	player.MarkAlive(now)
	return *player, nil
}

// FindPlayerCurrentGame returns the game the player belongs to, if any
func (r *Registry) FindPlayerCurrentGame(ctx context.Context, publicID uuid.UUID) (model.GameView, bool) {
	_, b := r.begin()
	defer r.end(ctx, b)

	g := r.tables.currentGame(publicID)
	if g == nil {
		return model.GameView{}, false
	}
	return g.View(r.cfg.CreatorPolicy), true
}

// CreateGame opens a game whose sole member is the player owning creatorPrivateID
func (r *Registry) CreateGame(ctx context.Context, title string, creatorPrivateID uuid.UUID) (model.GameView, error) {
	now, b := r.begin()
	defer r.end(ctx, b)

	creator := r.tables.playerByPrivateID(creatorPrivateID)
	if creator == nil {
		return model.GameView{}, model.ErrUnknownCreator
	}
	if r.tables.currentGame(creator.PublicID) != nil {
		return model.GameView{}, model.ErrAlreadyInGame
	}

	id := r.ids.NewID()
	for r.tables.games[id] != nil {
		id = r.ids.NewID()
	}

	g := model.NewGame(id, title, creator, now)
	g.Seq = r.tables.nextSeq()
	creator.MarkAlive(now)
	r.tables.games[id] = g

	r.logger.Info("game created",
		slog.String("game_id", id.String()),
		slog.String("title", title),
		slog.String("creator_id", creator.PublicID.String()))
	b.add(model.EventGameCreated, now, g, creator)

	return g.View(r.cfg.CreatorPolicy), nil
}

// GetGame returns a live game
func (r *Registry) GetGame(ctx context.Context, gameID uuid.UUID) (model.GameView, error) {
	_, b := r.begin()
	defer r.end(ctx, b)

	g, ok := r.tables.games[gameID]
	if !ok {
		return model.GameView{}, model.ErrUnknownGame
	}
	return g.View(r.cfg.CreatorPolicy), nil
}

// GameMembers returns the members of a live game in join order
func (r *Registry) GameMembers(ctx context.Context, gameID uuid.UUID) ([]model.Player, error) {
	_, b := r.begin()
	defer r.end(ctx, b)

	g, ok := r.tables.games[gameID]
	if !ok {
		return nil, model.ErrUnknownGame
	}
	return g.Members(), nil
}

// JoinGame appends player to a game's membership.
//
// The caller is responsible for checking that whoever asked owns the player's
// private id. A player already in another game is refused with
// ErrAlreadyInGame; that check and the join happen under the same lock.
func (r *Registry) JoinGame(ctx context.Context, gameID uuid.UUID, player model.Player) (model.GameView, error) {
	now, b := r.begin()
	defer r.end(ctx, b)

	g, ok := r.tables.games[gameID]
	if !ok {
		return model.GameView{}, model.ErrUnknownGame
	}
	p, ok := r.tables.players[player.PublicID]
	if !ok {
		return model.GameView{}, model.ErrUnknownPlayer
	}
	if g.Contains(p.PublicID) {
		return model.GameView{}, model.ErrDuplicateMember
	}
	if r.tables.currentGame(p.PublicID) != nil {
		return model.GameView{}, model.ErrAlreadyInGame
	}
	if err := g.Add(p); err != nil {
		return model.GameView{}, err
	}
	p.MarkAlive(now)

	r.logger.Debug("player joined game",
		slog.String("game_id", gameID.String()),
		slog.String("player_id", p.PublicID.String()))
	b.add(model.EventMemberJoined, now, g, p)

	return g.View(r.cfg.CreatorPolicy), nil
}

// RemoveFromGame takes the target out of a game. actingPrivateID must belong to
// the target itself or to the game's creator. It reports whether the target was
// a member; a game left empty is closed.
func (r *Registry) RemoveFromGame(ctx context.Context, gameID, targetPublicID, actingPrivateID uuid.UUID) (bool, error) {
	now, b := r.begin()
	defer r.end(ctx, b)

	g, ok := r.tables.games[gameID]
	if !ok {
		return false, model.ErrUnknownGame
	}
	target := g.Member(targetPublicID)
	if target == nil {
		target = r.tables.players[targetPublicID]
	}
	if target == nil {
		return false, model.ErrUnknownPlayer
	}

	removed, err := g.Remove(target, actingPrivateID, r.cfg.CreatorPolicy)
	if err != nil {
		return false, err
	}
	if !removed {
		return false, nil
	}

	evtType := model.EventMemberKicked
	if target.Owns(actingPrivateID) {
		evtType = model.EventMemberLeft
	}
	r.logger.Debug("player removed from game",
		slog.String("game_id", gameID.String()),
		slog.String("player_id", target.PublicID.String()),
		slog.String("reason", string(evtType)))
	b.add(evtType, now, g, target)

	r.closeGamesLocked(now, b)
	return true, nil
}

// DeleteGame removes a game regardless of its members. Only the creator may.
func (r *Registry) DeleteGame(ctx context.Context, gameID, actingPrivateID uuid.UUID) error {
	now, b := r.begin()
	defer r.end(ctx, b)

	g, ok := r.tables.games[gameID]
	if !ok {
		return model.ErrUnknownGame
	}
	creator := g.Creator(r.cfg.CreatorPolicy)
	if creator == nil || !creator.Owns(actingPrivateID) {
		return model.ErrForbidden
	}

	creator.MarkAlive(now)
	delete(r.tables.games, gameID)

	r.logger.Info("game deleted", slog.String("game_id", gameID.String()))
	b.add(model.EventGameDeleted, now, g, creator)
	return nil
}

// DeletePlayer removes a player at its owner's request. With
// CascadePlayerDelete the player also leaves its game.
func (r *Registry) DeletePlayer(ctx context.Context, publicID, actingPrivateID uuid.UUID) error {
	now, b := r.begin()
	defer r.end(ctx, b)

	p, ok := r.tables.players[publicID]
	if !ok {
		return model.ErrUnknownPlayer
	}
	if !p.Owns(actingPrivateID) {
		return model.ErrForbidden
	}

	delete(r.tables.players, publicID)

	if r.cfg.CascadePlayerDelete {
		for _, g := range r.tables.games {
			if g.Evict(publicID) != nil {
				b.add(model.EventMemberLeft, now, g, p)
			}
		}
	}

	r.logger.Info("player deleted", slog.String("player_id", publicID.String()))
	b.add(model.EventPlayerDeleted, now, nil, p)

	r.closeGamesLocked(now, b)
	return nil
}

// ListPlayers returns every live player in registration order
func (r *Registry) ListPlayers(ctx context.Context) []model.Player {
	_, b := r.begin()
	defer r.end(ctx, b)

	players := make([]model.Player, 0, len(r.tables.players))
	for _, p := range r.tables.players {
		players = append(players, *p)
	}
	slices.SortFunc(players, func(x, y model.Player) int {
		return cmp.Compare(x.Seq, y.Seq)
	})
	return players
}

// ListGames returns every live game in creation order
func (r *Registry) ListGames(ctx context.Context) []model.GameView {
	_, b := r.begin()
	defer r.end(ctx, b)

	games := make([]*model.Game, 0, len(r.tables.games))
	for _, g := range r.tables.games {
		games = append(games, g)
	}
	slices.SortFunc(games, func(x, y *model.Game) int {
		return cmp.Compare(x.Seq, y.Seq)
	})

	views := make([]model.GameView, len(games))
	for i, g := range games {
		views[i] = g.View(r.cfg.CreatorPolicy)
	}
	return views
}

// Counts returns the number of live players and games
func (r *Registry) Counts(ctx context.Context) (players, games int) {
	_, b := r.begin()
	defer r.end(ctx, b)
	return len(r.tables.players), len(r.tables.games)
}

// begin locks the registry and runs the cleanup pass. Every caller must defer
// end with the returned batch.
func (r *Registry) begin() (time.Time, *batch) {
	r.mu.Lock()
	now := r.clock.Now()
	b := &batch{}

	res := purge(&r.tables, now, r.cfg)
	for _, exp := range res.expired {
		r.logger.Info("player expired",
			slog.String("player_id", exp.player.PublicID.String()),
			slog.Time("last_seen_at", exp.player.LastSeenAt))
		b.add(model.EventPlayerExpired, now, exp.game, exp.player)
	}
	r.recordClosed(now, b, res.closed)

	return now, b
}

// end releases the lock and then publishes the batch. The mutation has
// already committed, so a caller hanging up must not lose its events.
func (r *Registry) end(ctx context.Context, b *batch) {
	if len(b.events) == 0 {
		r.mu.Unlock()
		return
	}

	r.publishMu.Lock()
	defer r.publishMu.Unlock()
	r.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	for _, evt := range b.events {
		if err := r.publisher.Publish(ctx, evt); err != nil {
			r.logger.Warn("failed to publish event",
				slog.String("type", string(evt.Type)),
				slog.String("error", err.Error()))
		}
	}
}

func (r *Registry) closeGamesLocked(now time.Time, b *batch) {
	r.recordClosed(now, b, closeGames(&r.tables, r.cfg.CreatorPolicy))
}

func (r *Registry) recordClosed(now time.Time, b *batch, closed []*model.Game) {
	for _, g := range closed {
		r.logger.Info("game closed", slog.String("game_id", g.ID.String()))
		b.add(model.EventGameClosed, now, g, nil)
	}
}

// batch collects events raised while the lock is held
type batch struct {
	events []model.Event
}

func (b *batch) add(typ model.EventType, now time.Time, g *model.Game, p *model.Player) {
	evt := model.Event{Type: typ, Timestamp: now}
	if g != nil {
		evt.GameID = g.ID
		evt.GameTitle = g.Title
	}
	if p != nil {
		evt.PlayerID = p.PublicID
		evt.DisplayName = p.DisplayName
	}
	b.events = append(b.events, evt)
}
