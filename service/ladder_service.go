package service

import (
	"context"
	"fmt"

	"ladder/config"
	"ladder/events"
	"ladder/models"

	log "github.com/sirupsen/logrus"
)

type ladderService struct {
	uowFactory UnitOfWorkFactory
	threshold  int
}

// NewLadderService creates a new ladder service
func NewLadderService(uowFactory UnitOfWorkFactory, cfg *config.Config) LadderService {
	return &ladderService{
		uowFactory: uowFactory,
		threshold:  cfg.LadderThreshold,
	}
}

// Join signs the actor up at the bottom of the ladder if they are new and
// refreshes their display name otherwise
func (s *ladderService) Join(ctx context.Context, actor models.Actor) (*models.PlayerRanking, error) {
	if actor.Identity == "" {
		return nil, fmt.Errorf("%w: empty identity", ErrUnknownPlayer)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	rankings := uow.RankingRepository()

	player, err := rankings.GetByIdentity(ctx, actor.Identity)
	if err != nil {
		return nil, fmt.Errorf("failed to get ranking: %w", err)
	}

	switch {
	case player == nil:
		player, err = rankings.Create(ctx, actor.Identity, actor.DisplayName)
		if err != nil {
			return nil, fmt.Errorf("failed to create ranking: %w", err)
		}
		uow.EventBus().Publish(events.PlayerJoinedEvent{
			Identity:    player.Identity,
			DisplayName: player.DisplayName,
			Rank:        player.Rank,
		})
		log.WithFields(log.Fields{
			"identity": player.Identity,
			"rank":     player.Rank,
		}).Info("Player joined the ladder")

	case player.DisplayName != actor.DisplayName:
		if err := rankings.UpdateDisplayName(ctx, actor.Identity, actor.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to update display name: %w", err)
		}
		player.DisplayName = actor.DisplayName

	default:
		return player, nil
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return player, nil
}

// InterpretReport turns a free-text report into an unconfirmed match result.
// Nothing is written.
func (s *ladderService) InterpretReport(ctx context.Context, actor models.Actor, text string) (*models.MatchResult, error) {
	logger := log.WithFields(log.Fields{
		"actor": actor.Identity,
		"text":  text,
	})

	scores, err := ExtractScores(text)
	if err != nil {
		logger.Debug("No scores found in report")
		return nil, err
	}
	win, lose := ExtractCues(text)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rankings := uow.RankingRepository()

	actorRanking, err := rankings.GetByIdentity(ctx, actor.Identity)
	if err != nil {
		return nil, fmt.Errorf("failed to get ranking: %w", err)
	}
	if actorRanking == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, actor.Identity)
	}

	identities, err := rankings.ListIdentities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	others := make([]string, 0, len(identities))
	for _, identity := range identities {
		if identity != actor.Identity {
			others = append(others, identity)
		}
	}

	opponent, opponentWon, err := ResolveOpponent(text, others, win, lose)
	if err != nil {
		logger.WithError(err).Debug("Could not resolve report")
		return nil, err
	}

	opponentRanking, err := rankings.GetByIdentity(ctx, opponent)
	if err != nil {
		return nil, fmt.Errorf("failed to get ranking: %w", err)
	}
	if opponentRanking == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, opponent)
	}

	result, err := OrderChallenge(actorRanking, opponentRanking, scores, opponentWon, s.threshold)
	if err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"challenger": result.Challenger,
		"defender":   result.Defender,
		"success":    result.ChallengeSuccess,
		"ladderGame": result.IsLadderGame,
	}).Debug("Interpreted match report")

	return result, nil
}

// RecordResult commits a confirmed result. Both rankings and the history
// entry are written in one transaction with the two rows locked.
func (s *ladderService) RecordResult(ctx context.Context, result models.MatchResult) (*models.MatchOutcome, error) {
	if err := validateResult(result); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	locked, err := uow.RankingRepository().GetForUpdate(ctx, result.Challenger, result.Defender)
	if err != nil {
		return nil, fmt.Errorf("failed to lock rankings: %w", err)
	}

	var challenger, defender *models.PlayerRanking
	for _, p := range locked {
		switch p.Identity {
		case result.Challenger:
			challenger = p
		case result.Defender:
			defender = p
		}
	}

	outcome, err := ApplyMatch(result, challenger, defender)
	if err != nil {
		return nil, err
	}

	if err := uow.RankingRepository().Put(ctx, &outcome.Challenger, &outcome.Defender); err != nil {
		return nil, fmt.Errorf("failed to save rankings: %w", err)
	}
	if err := uow.HistoryRepository().Append(ctx, &outcome.History); err != nil {
		return nil, fmt.Errorf("failed to append match history: %w", err)
	}

	uow.EventBus().Publish(events.MatchRecordedEvent{
		HistoryID:       outcome.History.ID,
		Challenger:      outcome.Challenger.Identity,
		Defender:        outcome.Defender.Identity,
		ChallengerScore: result.ChallengerScore,
		DefenderScore:   result.DefenderScore,
		ChallengerRank:  outcome.Challenger.Rank,
		DefenderRank:    outcome.Defender.Rank,
		IsLadderGame:    result.IsLadderGame,
		RanksSwapped:    outcome.RanksSwapped,
		ChallengerNews:  outcome.Challenger.News,
		DefenderNews:    outcome.Defender.News,
	})

	if err := uow.Commit(); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"challenger": result.Challenger,
			"defender":   result.Defender,
		}).Error("Failed to commit match result")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"challenger":   result.Challenger,
		"defender":     result.Defender,
		"ladderGame":   result.IsLadderGame,
		"ranksSwapped": outcome.RanksSwapped,
	}).Info("Match result recorded")

	return outcome, nil
}

// Standings returns the ladder in rank order
func (s *ladderService) Standings(ctx context.Context) (*models.Standings, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ordered, err := uow.RankingRepository().ListOrderedByRank(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings: %w", err)
	}

	standings := &models.Standings{
		Rankings:     ordered,
		DisplayNames: make([]string, len(ordered)),
	}
	for i, p := range ordered {
		standings.DisplayNames[i] = p.DisplayName
	}
	return standings, nil
}

// Timeline returns the rank movement history for charting
func (s *ladderService) Timeline(ctx context.Context) (*models.Timeline, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	history, err := uow.HistoryRepository().ListChronological(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list match history: %w", err)
	}
	ordered, err := uow.RankingRepository().ListOrderedByRank(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings: %w", err)
	}

	return BuildTimeline(history, ordered), nil
}

// RecentMatches returns up to limit of the latest matches, newest first
func (s *ladderService) RecentMatches(ctx context.Context, limit int) ([]*models.MatchSummary, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.HistoryRepository().ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent matches: %w", err)
	}
	ordered, err := uow.RankingRepository().ListOrderedByRank(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings: %w", err)
	}

	names := make(map[string]string, len(ordered))
	for _, p := range ordered {
		names[p.Identity] = p.DisplayName
	}

	summaries := make([]*models.MatchSummary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, &models.MatchSummary{
			MatchHistoryEntry: *entry,
			ChallengerName:    displayNameOr(names, entry.Challenger),
			DefenderName:      displayNameOr(names, entry.Defender),
		})
	}
	return summaries, nil
}

func displayNameOr(names map[string]string, identity string) string {
	if name, ok := names[identity]; ok && name != "" {
		return name
	}
	return Salutation(identity)
}
