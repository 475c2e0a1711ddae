package ladder

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"ladder/models"
	"ladder/service"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLadderService struct {
	mock.Mock
}

func (m *mockLadderService) Join(ctx context.Context, actor models.Actor) (*models.PlayerRanking, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerRanking), args.Error(1)
}

func (m *mockLadderService) InterpretReport(ctx context.Context, actor models.Actor, text string) (*models.MatchResult, error) {
	args := m.Called(ctx, actor, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MatchResult), args.Error(1)
}

func (m *mockLadderService) RecordResult(ctx context.Context, result models.MatchResult) (*models.MatchOutcome, error) {
	args := m.Called(ctx, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MatchOutcome), args.Error(1)
}

func (m *mockLadderService) Standings(ctx context.Context) (*models.Standings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Standings), args.Error(1)
}

func (m *mockLadderService) Timeline(ctx context.Context) (*models.Timeline, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Timeline), args.Error(1)
}

func (m *mockLadderService) RecentMatches(ctx context.Context, limit int) ([]*models.MatchSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MatchSummary), args.Error(1)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// newTestSession returns a session whose REST calls all succeed without a network
func newTestSession(t *testing.T) *discordgo.Session {
	t.Helper()

	s, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	s.Client = &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNoContent,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     make(http.Header),
			Request:    r,
		}, nil
	})}
	return s
}

func confirmClick(token string) *discordgo.InteractionCreate {
	reporter := &discordgo.User{ID: "100", Username: "bob"}
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:     "interaction-1",
		Type:   discordgo.InteractionMessageComponent,
		Member: &discordgo.Member{User: reporter},
		Data:   discordgo.MessageComponentInteractionData{CustomID: ConfirmPrefix + token},
		Message: &discordgo.Message{
			ID:          "prompt-1",
			Interaction: &discordgo.MessageInteraction{User: reporter},
		},
	}}
}

func sampleResult() models.MatchResult {
	return models.MatchResult{
		Challenger:       "bob",
		Defender:         "alice",
		ChallengerScore:  3,
		DefenderScore:    1,
		ChallengeSuccess: true,
		IsLadderGame:     true,
	}
}

func sampleOutcome(result models.MatchResult) *models.MatchOutcome {
	return &models.MatchOutcome{
		Result:       result,
		Challenger:   models.PlayerRanking{Identity: "bob", DisplayName: "Bob", Rank: 1, Wins: 1},
		Defender:     models.PlayerRanking{Identity: "alice", DisplayName: "Alice", Rank: 2, Losses: 1},
		RanksSwapped: true,
	}
}

func TestHandleInteraction_ConcurrentConfirmsCommitOnce(t *testing.T) {
	session := newTestSession(t)
	ladderService := new(mockLadderService)
	feature := NewFeature(session, ladderService, "")

	result := sampleResult()
	ladderService.On("RecordResult", mock.Anything, result).
		Run(func(mock.Arguments) { time.Sleep(20 * time.Millisecond) }).
		Return(sampleOutcome(result), nil)

	click := confirmClick(service.EncodeResultToken(result))

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			feature.HandleInteraction(session, click)
		}()
	}
	wg.Wait()

	ladderService.AssertNumberOfCalls(t, "RecordResult", 1)
}

func TestHandleInteraction_ConfirmAfterCommitIsRejected(t *testing.T) {
	session := newTestSession(t)
	ladderService := new(mockLadderService)
	feature := NewFeature(session, ladderService, "")

	result := sampleResult()
	ladderService.On("RecordResult", mock.Anything, result).Return(sampleOutcome(result), nil)

	click := confirmClick(service.EncodeResultToken(result))
	feature.HandleInteraction(session, click)
	feature.HandleInteraction(session, click)

	ladderService.AssertNumberOfCalls(t, "RecordResult", 1)
}

func TestHandleInteraction_FailedCommitCanBeRetried(t *testing.T) {
	session := newTestSession(t)
	ladderService := new(mockLadderService)
	feature := NewFeature(session, ladderService, "")

	result := sampleResult()
	ladderService.On("RecordResult", mock.Anything, result).Return(nil, errors.New("connection reset")).Once()
	ladderService.On("RecordResult", mock.Anything, result).Return(sampleOutcome(result), nil).Once()

	click := confirmClick(service.EncodeResultToken(result))
	feature.HandleInteraction(session, click)
	feature.HandleInteraction(session, click)
	feature.HandleInteraction(session, click)

	ladderService.AssertNumberOfCalls(t, "RecordResult", 2)
}

func TestHandleInteraction_CancelSettlesPrompt(t *testing.T) {
	session := newTestSession(t)
	ladderService := new(mockLadderService)
	feature := NewFeature(session, ladderService, "")

	result := sampleResult()
	confirm := confirmClick(service.EncodeResultToken(result))
	cancel := confirmClick("")
	cancel.Data = discordgo.MessageComponentInteractionData{CustomID: CancelPrefix}

	feature.HandleInteraction(session, cancel)
	feature.HandleInteraction(session, confirm)

	ladderService.AssertNotCalled(t, "RecordResult", mock.Anything, mock.Anything)
}
