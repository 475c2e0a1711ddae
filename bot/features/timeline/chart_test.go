package timeline

import (
	"bytes"
	"image/png"
	"testing"

	"ladder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTimeline() *models.Timeline {
	return &models.Timeline{
		Players:      []string{"bob", "alice", "carol"},
		DisplayNames: []string{"Bob", "Alice", "Carol"},
		Events: []models.TimelineEvent{
			{Challenger: "bob", Defender: "alice", Before: []int{2, 1, 0}, After: []int{1, 2, 0}},
			{Before: []int{1, 2, 3}, After: []int{1, 2, 3}, IsCurrent: true},
		},
	}
}

func TestColumnCount(t *testing.T) {
	assert.Equal(t, 3, columnCount(sampleTimeline()))
}

func TestPlayerPaths(t *testing.T) {
	paths := playerPaths(sampleTimeline())
	require.Len(t, paths, 3)

	assert.Equal(t, []point{{0, 2}, {1, 1}, {2, 1}}, paths[0])
	assert.Equal(t, []point{{0, 1}, {1, 2}, {2, 2}}, paths[1])
	// Not party to any swap, only the present-day position
	assert.Equal(t, []point{{2, 3}}, paths[2])
}

func TestRender(t *testing.T) {
	g := NewChartGenerator()

	data, err := g.Render(sampleTimeline())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, g.style.Width, img.Bounds().Dx())
	assert.GreaterOrEqual(t, img.Bounds().Dy(), g.style.MinHeight)
}

func TestRender_SinglePlayerOnlyCurrent(t *testing.T) {
	timeline := &models.Timeline{
		Players:      []string{"alice"},
		DisplayNames: []string{"Alice"},
		Events:       []models.TimelineEvent{{Before: []int{1}, After: []int{1}, IsCurrent: true}},
	}

	data, err := NewChartGenerator().Render(timeline)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRender_Empty(t *testing.T) {
	_, err := NewChartGenerator().Render(&models.Timeline{})
	assert.ErrorIs(t, err, ErrEmptyTimeline)

	_, err = NewChartGenerator().Render(nil)
	assert.ErrorIs(t, err, ErrEmptyTimeline)
}
