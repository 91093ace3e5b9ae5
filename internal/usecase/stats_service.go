package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/mystats/internal/domain/aggregate"
	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	"github.com/riskibarqy/mystats/internal/domain/leaderboard"
	"github.com/riskibarqy/mystats/internal/domain/records"
	"github.com/riskibarqy/mystats/internal/domain/roster"
	"github.com/riskibarqy/mystats/internal/domain/season"
	"github.com/riskibarqy/mystats/internal/platform/cache"
	"github.com/riskibarqy/mystats/internal/platform/logging"
)

const (
	defaultStatsWorkers = 8
	linesKeyPrefix      = "lines:"
)

type StatsServiceOptions struct {
	Workers int
	Metrics StatsMetrics
	Logger  *logging.Logger
}

// StatsService builds player and team reports from raw box-score rows.
type StatsService struct {
	rows       boxscore.RowSource
	rosterRepo roster.Repository
	normalizer boxscore.Normalizer
	classifier season.Classifier
	lines      cache.Cache[[]boxscore.GameStatLine]
	metrics    StatsMetrics
	logger     *logging.Logger
	workers    int

	// entity id -> snapshot key currently cached
	snapshots sync.Map
}

func NewStatsService(
	rows boxscore.RowSource,
	rosterRepo roster.Repository,
	normalizer boxscore.Normalizer,
	classifier season.Classifier,
	lines cache.Cache[[]boxscore.GameStatLine],
	opts StatsServiceOptions,
) *StatsService {
	if lines == nil {
		lines = cache.NewStore[[]boxscore.GameStatLine](0)
	}
	if opts.Metrics == nil {
		opts.Metrics = nopStatsMetrics{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = defaultStatsWorkers
	}

	return &StatsService{
		rows:       rows,
		rosterRepo: rosterRepo,
		normalizer: normalizer,
		classifier: classifier,
		lines:      lines,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		workers:    opts.Workers,
	}
}

func (s *StatsService) ListTeams(ctx context.Context) ([]roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ListTeams")
	defer span.End()

	teams, err := s.rosterRepo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *StatsService) GetTeam(ctx context.Context, teamID string) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetTeam")
	defer span.End()

	return s.team(ctx, teamID)
}

func (s *StatsService) ListPlayers(ctx context.Context) ([]roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ListPlayers")
	defer span.End()

	players, err := s.rosterRepo.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// PlayerLines returns every normalized line of the player in source order.
func (s *StatsService) PlayerLines(ctx context.Context, playerID string) ([]boxscore.GameStatLine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerLines", attribute.String("player_id", playerID))
	defer span.End()

	_, lines, err := s.player(ctx, playerID)
	return lines, err
}

func (s *StatsService) PlayerAverages(ctx context.Context, playerID string, filter boxscore.Filter) (PlayerSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerAverages", attribute.String("player_id", playerID))
	defer span.End()

	if err := validateFilter(filter); err != nil {
		return PlayerSummary{}, err
	}
	player, lines, err := s.player(ctx, playerID)
	if err != nil {
		return PlayerSummary{}, err
	}

	return PlayerSummary{
		Player: player,
		Filter: filter,
		Line:   aggregate.Aggregate(player.ID, filter.Apply(lines)),
	}, nil
}

func (s *StatsService) PlayerGameLog(ctx context.Context, playerID string, filter boxscore.Filter) (PlayerGameLog, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerGameLog", attribute.String("player_id", playerID))
	defer span.End()

	if err := validateFilter(filter); err != nil {
		return PlayerGameLog{}, err
	}
	player, lines, err := s.player(ctx, playerID)
	if err != nil {
		return PlayerGameLog{}, err
	}

	return PlayerGameLog{Player: player, Filter: filter, Games: filter.Apply(lines)}, nil
}

func (s *StatsService) PlayerSeasons(ctx context.Context, playerID string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerSeasons", attribute.String("player_id", playerID))
	defer span.End()

	_, lines, err := s.player(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return boxscore.SeasonLabels(lines, s.classifier), nil
}

// TeamLeaderboard ranks the roster by key. Players without a game in the
// filtered set are left out.
func (s *StatsService) TeamLeaderboard(
	ctx context.Context,
	teamID string,
	filter boxscore.Filter,
	key leaderboard.SortKey,
	mode leaderboard.Mode,
) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TeamLeaderboard", attribute.String("team_id", teamID))
	defer span.End()

	if err := validateFilter(filter); err != nil {
		return Leaderboard{}, err
	}
	key, err := leaderboard.ParseSortKey(string(key))
	if err != nil {
		return Leaderboard{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	switch mode {
	case "":
		mode = leaderboard.ModeAverages
	case leaderboard.ModeAverages, leaderboard.ModeTotals:
	default:
		return Leaderboard{}, fmt.Errorf("%w: unknown mode %s", ErrInvalidInput, mode)
	}

	team, err := s.team(ctx, teamID)
	if err != nil {
		return Leaderboard{}, err
	}
	perPlayer, err := s.rosterLines(ctx, team.Roster)
	if err != nil {
		return Leaderboard{}, err
	}

	aggregated := iter.Map(perPlayer, func(p *entityLines) aggregate.Line {
		return aggregate.Aggregate(p.id, filter.Apply(p.lines))
	})
	active := make([]aggregate.Line, 0, len(aggregated))
	for _, line := range aggregated {
		if line.GamesPlayed > 0 {
			active = append(active, line)
		}
	}

	players := s.playerIndex(ctx)
	entries := leaderboard.BuildMode(active, key, mode)
	rows := make([]LeaderboardRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, LeaderboardRow{Entry: entry, Player: lookupPlayer(players, entry.EntityID)})
	}

	return Leaderboard{Team: team, Filter: filter, SortKey: key, Mode: mode, Rows: rows}, nil
}

// TeamRecords finds single-game highs across the roster. Ties go to the
// player listed first on the roster.
func (s *StatsService) TeamRecords(ctx context.Context, teamID string, filter boxscore.Filter) (TeamRecords, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TeamRecords", attribute.String("team_id", teamID))
	defer span.End()

	if err := validateFilter(filter); err != nil {
		return TeamRecords{}, err
	}
	team, err := s.team(ctx, teamID)
	if err != nil {
		return TeamRecords{}, err
	}
	perPlayer, err := s.rosterLines(ctx, team.Roster)
	if err != nil {
		return TeamRecords{}, err
	}

	candidates := make([]records.Line, 0)
	for _, p := range perPlayer {
		for _, line := range filter.Apply(p.lines) {
			candidates = append(candidates, records.Line{OwnerID: p.id, Stat: line})
		}
	}

	players := s.playerIndex(ctx)
	ordered := records.Find(candidates).Ordered()
	rows := make([]RecordRow, 0, len(ordered))
	for _, entry := range ordered {
		rows = append(rows, RecordRow{Entry: entry, Player: lookupPlayer(players, entry.OwnerID)})
	}

	return TeamRecords{Team: team, Filter: filter, Records: rows}, nil
}

// TeamSeasons lists the season labels seen in the team's own rows and in
// any roster player's rows.
func (s *StatsService) TeamSeasons(ctx context.Context, teamID string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TeamSeasons", attribute.String("team_id", teamID))
	defer span.End()

	team, err := s.team(ctx, teamID)
	if err != nil {
		return nil, err
	}
	perEntity, err := s.rosterLines(ctx, append([]string{team.ID}, team.Roster...))
	if err != nil {
		return nil, err
	}

	all := make([]boxscore.GameStatLine, 0)
	for _, e := range perEntity {
		all = append(all, e.lines...)
	}
	return boxscore.SeasonLabels(all, s.classifier), nil
}

func (s *StatsService) TeamGames(ctx context.Context, teamID string, filter boxscore.Filter) (TeamGameLog, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TeamGames", attribute.String("team_id", teamID))
	defer span.End()

	if err := validateFilter(filter); err != nil {
		return TeamGameLog{}, err
	}
	team, err := s.team(ctx, teamID)
	if err != nil {
		return TeamGameLog{}, err
	}
	lines, _, err := s.entityLines(ctx, team.ID)
	if err != nil {
		return TeamGameLog{}, err
	}

	out := TeamGameLog{Team: team, Filter: filter, Games: filter.Apply(lines)}
	for _, game := range out.Games {
		switch gameOutcome(game) {
		case outcomeWin:
			out.Wins++
		case outcomeLoss:
			out.Losses++
		case outcomeTie:
			out.Ties++
		}
	}
	return out, nil
}

// Invalidate drops the cached lines of entityID. An empty entityID drops
// every entity and a cached roster directory as well.
func (s *StatsService) Invalidate(ctx context.Context, entityID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Invalidate")
	defer span.End()

	entityID = strings.TrimSpace(entityID)
	prefix := linesKeyPrefix
	if entityID != "" {
		prefix = boxscore.SnapshotPrefix(entityID)
		s.snapshots.Delete(entityID)
	} else {
		s.snapshots.Clear()
	}

	if err := s.lines.DeletePrefix(ctx, prefix); err != nil {
		return fmt.Errorf("%w: invalidate cache prefix=%s: %w", ErrDependencyUnavailable, prefix, err)
	}
	if inv, ok := s.rosterRepo.(roster.Invalidator); ok && entityID == "" {
		if err := inv.Invalidate(ctx); err != nil {
			return fmt.Errorf("%w: invalidate roster: %w", ErrDependencyUnavailable, err)
		}
	}
	s.logger.InfoContext(ctx, "stats cache invalidated", "entity_id", entityID)
	return nil
}

func (s *StatsService) player(ctx context.Context, playerID string) (roster.Player, []boxscore.GameStatLine, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return roster.Player{}, nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	player, err := s.rosterRepo.GetPlayer(ctx, playerID)
	inRoster := err == nil
	switch {
	case errors.Is(err, roster.ErrNotFound):
		player = roster.Player{ID: playerID}
	case err != nil:
		return roster.Player{}, nil, fmt.Errorf("get player: %w", err)
	}

	lines, known, err := s.entityLines(ctx, playerID)
	if err != nil {
		return roster.Player{}, nil, err
	}
	if !known && !inRoster {
		return roster.Player{}, nil, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return player, lines, nil
}

func (s *StatsService) team(ctx context.Context, teamID string) (roster.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return roster.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	team, err := s.rosterRepo.GetTeam(ctx, teamID)
	if errors.Is(err, roster.ErrNotFound) {
		return roster.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if err != nil {
		return roster.Team{}, fmt.Errorf("get team: %w", err)
	}
	return team, nil
}

// playerIndex is best effort: display falls back to ids when the roster
// directory cannot be read.
func (s *StatsService) playerIndex(ctx context.Context) map[string]roster.Player {
	players, err := s.rosterRepo.ListPlayers(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "list players for display failed", "error", err)
		return nil
	}
	out := make(map[string]roster.Player, len(players))
	for _, p := range players {
		out[p.ID] = p
	}
	return out
}

func lookupPlayer(index map[string]roster.Player, playerID string) roster.Player {
	if p, ok := index[playerID]; ok {
		return p
	}
	return roster.Player{ID: playerID}
}

type entityLines struct {
	id    string
	lines []boxscore.GameStatLine
}

// rosterLines fetches every entity concurrently and returns the results in
// the order of ids.
func (s *StatsService) rosterLines(ctx context.Context, ids []string) ([]entityLines, error) {
	out := make([]entityLines, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	workers := s.workers
	if workers > len(ids) {
		workers = len(ids)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	var submitErr error
	for i, id := range ids {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			lines, _, err := s.entityLines(ctx, id)
			out[i] = entityLines{id: id, lines: lines}
			errs[i] = err
		}); err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submit task to worker pool: %w", err)
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		return nil, submitErr
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// entityLines returns the normalized lines of one entity. known is false
// when the source has no rows configured for it.
func (s *StatsService) entityLines(ctx context.Context, entityID string) ([]boxscore.GameStatLine, bool, error) {
	start := time.Now()
	rows, err := s.rows.ListRows(ctx, entityID)
	switch {
	case errors.Is(err, boxscore.ErrUnknownEntity):
		s.metrics.ObserveSourceFetch(FetchOutcomeUnknown, time.Since(start))
		return nil, false, nil
	case err != nil:
		s.metrics.ObserveSourceFetch(FetchOutcomeError, time.Since(start))
		s.logger.WarnContext(ctx, "row source failed", "entity_id", entityID, "error", err)
		return nil, false, fmt.Errorf("%w: list rows entity=%s: %w", ErrDependencyUnavailable, entityID, err)
	}
	s.metrics.ObserveSourceFetch(FetchOutcomeOK, time.Since(start))

	key := boxscore.SnapshotKey(entityID, rows)
	if previous, loaded := s.snapshots.Swap(entityID, key); loaded && previous.(string) != key {
		if err := s.lines.DeletePrefix(ctx, boxscore.SnapshotPrefix(entityID)); err != nil {
			s.logger.WarnContext(ctx, "drop stale snapshot failed", "entity_id", entityID, "error", err)
		}
	}

	lines, hit, err := s.lines.GetOrLoad(ctx, key, func(ctx context.Context) ([]boxscore.GameStatLine, error) {
		return s.normalize(ctx, entityID, rows), nil
	})
	if err != nil {
		return nil, true, fmt.Errorf("load lines entity=%s: %w", entityID, err)
	}
	s.metrics.ObserveCacheLookup(hit)
	return lines, true, nil
}

func (s *StatsService) normalize(ctx context.Context, entityID string, rows []boxscore.RawRow) []boxscore.GameStatLine {
	debug := s.logger.Enabled(logging.LevelDebug)
	defaulted := 0
	out := make([]boxscore.GameStatLine, 0, len(rows))
	for i, row := range rows {
		line, audit := s.normalizer.NormalizeAudited(row, entityID)
		if !audit.Empty() {
			defaulted += len(audit.Defaulted)
			if debug {
				s.logger.DebugContext(ctx, "row cells defaulted", "entity_id", entityID, "row", i, "fields", audit.Defaulted)
			}
		}
		out = append(out, line)
	}
	s.metrics.ObserveDefaultedCells(defaulted)
	return out
}

func validateFilter(filter boxscore.Filter) error {
	switch strings.TrimSpace(filter.Phase) {
	case "", boxscore.All, string(boxscore.PhaseRegular), string(boxscore.PhasePlayoffs):
		return nil
	default:
		return fmt.Errorf("%w: unknown phase %q", ErrInvalidInput, filter.Phase)
	}
}

type outcome int

const (
	outcomeUnknown outcome = iota
	outcomeWin
	outcomeLoss
	outcomeTie
)

// gameOutcome reads the result cell first ("W", "Win", "L 78-80") and
// falls back to comparing the scores.
func gameOutcome(game boxscore.GameStatLine) outcome {
	result := strings.ToUpper(strings.TrimSpace(game.Result))
	if result != "" {
		switch result[0] {
		case 'W':
			return outcomeWin
		case 'L':
			return outcomeLoss
		case 'T', 'D':
			return outcomeTie
		}
	}
	if game.ScoreFor == 0 && game.ScoreAgainst == 0 {
		return outcomeUnknown
	}
	switch {
	case game.ScoreFor > game.ScoreAgainst:
		return outcomeWin
	case game.ScoreFor < game.ScoreAgainst:
		return outcomeLoss
	default:
		return outcomeTie
	}
}
