package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"ladder/config"
	"ladder/events"
	"ladder/models"
	"ladder/repository/testutil"
	"ladder/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_RecordResultEndToEnd(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	recorded := make(chan events.MatchRecordedEvent, 1)
	bus.Subscribe(events.EventTypeMatchRecorded, func(ctx context.Context, event events.Event) {
		recorded <- event.(events.MatchRecordedEvent)
	})

	ladder := service.NewLadderService(NewUnitOfWorkFactory(testDB.DB, bus), config.NewTestConfig())

	for _, handle := range []string{"ann", "bob", "carol", "dave"} {
		_, err := ladder.Join(ctx, service.NewActor(handle))
		require.NoError(t, err)
	}

	result, err := ladder.InterpretReport(ctx, service.NewActor("dave"), "I beat Bob 3-1")
	require.NoError(t, err)
	assert.Equal(t, "dave", result.Challenger)
	assert.Equal(t, "bob", result.Defender)
	assert.True(t, result.IsLadderGame)
	assert.True(t, result.ChallengeSuccess)

	outcome, err := ladder.RecordResult(ctx, *result)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Challenger.Rank)
	assert.Equal(t, 4, outcome.Defender.Rank)

	standings, err := ladder.Standings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Dave", "Carol", "Bob"}, standings.DisplayNames)
	assert.Equal(t, 1, standings.Rankings[1].Wins)
	assert.Equal(t, 1, standings.Rankings[3].Losses)

	timeline, err := ladder.Timeline(ctx)
	require.NoError(t, err)
	require.Len(t, timeline.Events, 2)
	assert.Equal(t, []int{models.NoRank, 4, models.NoRank, 2}, timeline.Events[0].Before)
	assert.Equal(t, []int{models.NoRank, 2, models.NoRank, 4}, timeline.Events[0].After)

	select {
	case e := <-recorded:
		assert.Equal(t, outcome.History.ID, e.HistoryID)
		assert.True(t, e.RanksSwapped)
	case <-time.After(2 * time.Second):
		t.Fatal("match recorded event was not delivered")
	}
}

func TestUnitOfWork_RollbackDiscardsEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	delivered := make(chan struct{}, 1)
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		delivered <- struct{}{}
	})

	uow := NewUnitOfWorkFactory(testDB.DB, bus).Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.RankingRepository().Create(ctx, "ann", "Ann")
	require.NoError(t, err)
	uow.EventBus().Publish(events.PlayerJoinedEvent{Identity: "ann", Rank: 1})

	require.NoError(t, uow.Rollback())
	assert.Zero(t, uow.(*unitOfWork).transactionalBus.Pending())

	p, err := NewRankingRepository(testDB.DB).GetByIdentity(ctx, "ann")
	require.NoError(t, err)
	assert.Nil(t, p)

	select {
	case <-delivered:
		t.Fatal("event delivered after rollback")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnitOfWork_ConcurrentChallengesKeepPermutation(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	testutil.SeedLadder(t, testDB.DB, "ann", "bob", "cat", "dan")
	ladder := service.NewLadderService(NewUnitOfWorkFactory(testDB.DB, events.NewBus()), config.NewTestConfig())

	// cat and dan both beat ann at the same time
	results := []models.MatchResult{
		{Challenger: "cat", Defender: "ann", ChallengerScore: 3, DefenderScore: 0, ChallengeSuccess: true, IsLadderGame: true},
		{Challenger: "dan", Defender: "ann", ChallengerScore: 3, DefenderScore: 1, ChallengeSuccess: true, IsLadderGame: true},
	}

	var wg sync.WaitGroup
	for _, r := range results {
		wg.Add(1)
		go func(r models.MatchResult) {
			defer wg.Done()
			_, err := ladder.RecordResult(ctx, r)
			assert.NoError(t, err)
		}(r)
	}
	wg.Wait()

	ordered, err := NewRankingRepository(testDB.DB).ListOrderedByRank(ctx)
	require.NoError(t, err)
	require.Len(t, ordered, 4)
	ranks := make(map[string]int, len(ordered))
	for i, p := range ordered {
		assert.Equal(t, i+1, p.Rank)
		ranks[p.Identity] = p.Rank
	}

	// The commit that waited on ann's row lock must replay last
	history, err := NewHistoryRepository(testDB.DB).ListChronological(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.False(t, history[1].PlayedAt.Before(history[0].PlayedAt))
	last := history[1]
	assert.Equal(t, ranks[last.Challenger], *last.ChallengerRank)
	assert.Equal(t, ranks[last.Defender], *last.DefenderRank)
}
