package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/UFAZ-L2-CS1/DADLY/internal/testdb"
	"github.com/UFAZ-L2-CS1/DADLY/models"
)

func (f *authFixture) login(t *testing.T, email, password string) *Session {
	t.Helper()
	ctx := context.Background()
	f.register(t, email, password)
	pair, err := f.auth.Login(ctx, email, password)
	require.NoError(t, err)
	sess, err := f.auth.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	return sess
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.login(t, "cook@example.com", "password1")

	_, err := f.users.UpdateProfile(ctx, sess.User, ProfileUpdate{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	blank := "  "
	_, err = f.users.UpdateProfile(ctx, sess.User, ProfileUpdate{Name: &blank})
	assert.True(t, IsValidation(err))

	name, diet, allergies := "Chef", models.DietVegan, "peanuts"
	u, err := f.users.UpdateProfile(ctx, sess.User, ProfileUpdate{Name: &name, DietaryType: &diet, Allergies: &allergies})
	require.NoError(t, err)
	assert.Equal(t, "Chef", u.Name)
	assert.Equal(t, models.DietVegan, u.DietaryType)
	assert.Equal(t, "peanuts", u.Allergies)

	diet = models.DietKeto
	u, err = f.users.UpdateProfile(ctx, u, ProfileUpdate{DietaryType: &diet})
	require.NoError(t, err)
	assert.Equal(t, "Chef", u.Name, "untouched fields keep their value")
	assert.Equal(t, models.DietKeto, u.DietaryType)
}

func TestDeleteAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.login(t, "cook@example.com", "password1")
	fan := f.login(t, "fan@example.com", "password2")

	soup := testdb.Recipe(t, f.db, "soup", "water")
	stew := testdb.Recipe(t, f.db, "stew", "beef")
	likes := NewLikeService(f.store, nil)
	for _, id := range []uint{soup.ID, stew.ID} {
		_, err := likes.Like(ctx, sess.User.ID, id)
		require.NoError(t, err)
	}
	_, err := likes.Like(ctx, fan.User.ID, soup.ID)
	require.NoError(t, err)
	_, err = NewPantryService(f.store).Add(ctx, sess.User.ID, PantryInput{IngredientName: "salt"})
	require.NoError(t, err)

	_, err = f.users.DeleteAccount(ctx, sess, "wrong")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	res, err := f.users.DeleteAccount(ctx, sess, "password1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.RecipesUnliked)
	assert.Equal(t, "Account deleted successfully", res.Message)

	count, err := f.store.LikeCount(ctx, soup.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	count, err = f.store.LikeCount(ctx, stew.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	n, err := f.store.CountPantry(ctx, sess.User.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = f.auth.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestDeleteAccountSkipsLikeRemovedByConcurrentUnlike(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.login(t, "cook@example.com", "password1")
	fan := f.login(t, "fan@example.com", "password2")

	soup := testdb.Recipe(t, f.db, "soup", "water")
	likes := NewLikeService(f.store, nil)
	for _, id := range []uint{sess.User.ID, fan.User.ID} {
		_, err := likes.Like(ctx, id, soup.ID)
		require.NoError(t, err)
	}

	// An unlike from another device commits after the deletion started but
	// before its interactions are removed.
	fired := false
	err := f.db.Callback().Delete().Before("gorm:delete").Register("test:interleaved_unlike", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "user_recipe_interactions" {
			return
		}
		fired = true
		pool, c := tx.Statement.ConnPool, tx.Statement.Context
		_, err := pool.ExecContext(c, "DELETE FROM user_recipe_interactions WHERE user_id = ? AND recipe_id = ?", sess.User.ID, soup.ID)
		tx.AddError(err)
		_, err = pool.ExecContext(c, "UPDATE recipes SET like_count = like_count - 1 WHERE id = ?", soup.ID)
		tx.AddError(err)
	})
	require.NoError(t, err)

	res, err := f.users.DeleteAccount(ctx, sess, "password1")
	require.NoError(t, err)
	require.True(t, fired)
	assert.Zero(t, res.RecipesUnliked)

	count, err := f.store.LikeCount(ctx, soup.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStats(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.login(t, "cook@example.com", "password1")

	r := testdb.Recipe(t, f.db, "soup", "water")
	_, err := NewLikeService(f.store, nil).Like(ctx, sess.User.ID, r.ID)
	require.NoError(t, err)
	pantry := NewPantryService(f.store)
	for _, name := range []string{"salt", "pepper"} {
		_, err := pantry.Add(ctx, sess.User.ID, PantryInput{IngredientName: name})
		require.NoError(t, err)
	}

	f.users.now = func() time.Time { return sess.User.CreatedAt.Add(72*time.Hour + time.Minute) }
	stats, err := f.users.Stats(ctx, sess.User)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalRecipesLiked)
	assert.Equal(t, int64(2), stats.TotalPantryItems)
	assert.Equal(t, 3, stats.DaysActive)

	f.users.now = func() time.Time { return sess.User.CreatedAt.Add(-time.Hour) }
	stats, err = f.users.Stats(ctx, sess.User)
	require.NoError(t, err)
	assert.Zero(t, stats.DaysActive)
}
