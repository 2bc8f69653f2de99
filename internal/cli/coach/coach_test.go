package coach

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/config"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	return &cli.Context{
		Config: config.Default(),
		Store:  storage.NewMemoryStore(),
		Clock:  utils.FixedClock{T: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)},
	}
}

func TestAssessAndAdopt(t *testing.T) {
	ctx := setupTestContext(t)

	require.NoError(t, (&RecommendCmd{}).Run(ctx))

	cmd := &AssessCmd{Stress: 8, Goal: []string{"Reduce stress"}}
	require.NoError(t, cmd.Run(ctx))

	tr, err := ctx.Tracker()
	require.NoError(t, err)
	recs := tr.Recommendations()
	require.NotEmpty(t, recs)
	require.NoError(t, (&RecommendCmd{Verbose: true}).Run(ctx))

	require.NoError(t, (&AdoptCmd{ID: recs[0].ID}).Run(ctx))
	habits := tr.Habits("")
	require.Len(t, habits, 1)
	assert.Equal(t, recs[0].Title, habits[0].Title)
	assert.Zero(t, habits[0].Streak)

	err = (&AdoptCmd{ID: "no-such-rec"}).Run(ctx)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestAssessFlags(t *testing.T) {
	a, err := (&AssessCmd{Profession: "Student", Stress: 3}).fromFlags(models.Assessment{})
	require.NoError(t, err)
	assert.Equal(t, "Student", a.Profession)
	require.NotNil(t, a.StressLevel)
	assert.Equal(t, 3, *a.StressLevel)

	merged, err := (&AssessCmd{Goal: []string{"Learn new skills"}, Merge: true}).fromFlags(a)
	require.NoError(t, err)
	assert.Equal(t, "Student", merged.Profession)
	assert.Equal(t, []string{"Learn new skills"}, merged.Goals)

	replaced, err := (&AssessCmd{Goal: []string{"Learn new skills"}}).fromFlags(a)
	require.NoError(t, err)
	assert.Empty(t, replaced.Profession)
	assert.Nil(t, replaced.StressLevel)

	_, err = (&AssessCmd{Stress: 11}).fromFlags(a)
	assert.Error(t, err)

	assert.False(t, (&AssessCmd{Merge: true}).flagged())
	assert.True(t, (&AssessCmd{Stress: 2}).flagged())
}
