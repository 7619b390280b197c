package catalog

import (
	"context"
	"testing"

	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresherRunNow(t *testing.T) {
	want := Result{Races: []models.Race{{Time: "14:00", Place: "Ascot"}}, Origin: OriginRemote}
	var applied []Result
	r, err := NewRefresher("1 0 * * *",
		func(context.Context) Result { return want },
		func(res Result) { applied = append(applied, res) },
		logger.NewMock())
	require.NoError(t, err)

	r.Start()
	r.RunNow(context.Background())
	r.Stop()

	assert.Equal(t, []Result{want}, applied)
}

func TestRefresherRejectsBadSchedule(t *testing.T) {
	_, err := NewRefresher("every midnight", nil, nil, logger.Nop{})
	assert.ErrorContains(t, err, "invalid reload schedule")
}
