package cardview_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardlink/internal/cardview"
	"cardlink/internal/models"
	"cardlink/internal/testutil"
)

func TestAssembler_Postgres(t *testing.T) {
	database := testutil.TestDB(t)
	ctx := context.Background()

	owner := testutil.CreateTestProfile(t, database, "assemble-sub", "janedoe")
	card := testutil.CreateTestCard(t, database, owner.ID, "jane", true)
	testutil.CreateTestSocialLink(t, database, card.ID, "github", "janedoe", "https://github.com/janedoe", 1)
	testutil.CreateTestSocialLink(t, database, card.ID, "x", "janedoe", "https://x.com/janedoe", 0)
	draft := testutil.CreateTestCard(t, database, owner.ID, "draft", false)

	a := cardview.NewAssembler(database)

	vm, err := a.Assemble(ctx, "jane", cardview.Visit{IP: "203.0.113.7", UserAgent: "Mozilla/5.0 (iPhone)"})
	require.NoError(t, err)
	assert.Equal(t, card.ID, vm.Card.ID)
	require.Len(t, vm.SocialLinks, 2)
	assert.Equal(t, "x", vm.SocialLinks[0].Platform)
	assert.Empty(t, vm.MediaItems)
	assert.Empty(t, vm.Reviews)
	assert.Equal(t, models.DefaultTheme, vm.Theme)

	a.Wait()
	got, err := database.GetCardByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ViewCount)

	_, err = a.Assemble(ctx, draft.Slug, cardview.Visit{})
	assert.True(t, errors.Is(err, cardview.ErrCardNotFound), "err = %v", err)
}
