package services_test

import (
	"errors"
	"testing"

	"storerating/internal/models"
	"storerating/internal/services"
	"storerating/internal/testutil"
	"storerating/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingService_SubmitTwiceKeepsOneRow(t *testing.T) {
	f := newStoreFixture(t)
	user := testutil.CreateUser(t, f.db, "Alice Wonderland Smith", "alice@example.com", "pw", models.RoleUser)
	store := testutil.CreateStore(t, f.db, "Bakery", "5 Bread Lane", nil)

	first, err := f.ratings.Submit(user.ID, store.ID, 4)
	require.NoError(t, err)
	second, err := f.ratings.Submit(user.ID, store.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Rating)
	assert.Equal(t, int64(1), testutil.CountRows(t, f.db, &models.Rating{}))
	assert.Equal(t, []string{services.EventRatingSubmitted, services.EventRatingSubmitted}, f.events.routingKeys())
}

func TestRatingService_SubmitRejects(t *testing.T) {
	f := newStoreFixture(t)
	user := testutil.CreateUser(t, f.db, "Alice Wonderland Smith", "alice@example.com", "pw", models.RoleUser)
	store := testutil.CreateStore(t, f.db, "Bakery", "5 Bread Lane", nil)

	for _, v := range []int{0, 6} {
		_, err := f.ratings.Submit(user.ID, store.ID, v)
		var verr *services.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "rating", verr.Field)
	}

	_, err := f.ratings.Submit(user.ID, 9999, 3)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = f.ratings.Submit(9999, store.ID, 3)
	assert.ErrorIs(t, err, services.ErrConstraintViolation)

	assert.Zero(t, testutil.CountRows(t, f.db, &models.Rating{}))
}

func TestRatingService_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := newStoreFixture(t)
	f.events.err = errors.New("channel closed")
	user := testutil.CreateUser(t, f.db, "Alice Wonderland Smith", "alice@example.com", "pw", models.RoleUser)
	store := testutil.CreateStore(t, f.db, "Bakery", "5 Bread Lane", nil)

	_, err := f.ratings.Submit(user.ID, store.ID, 5)
	require.NoError(t, err)

	f.events.err = rabbitmq.ErrUnavailable
	_, err = f.ratings.Submit(user.ID, store.ID, 4)
	require.NoError(t, err)
}
