package identity

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eco-fashion-api/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	return New(st), st
}

func registration() RegisterRequest {
	return RegisterRequest{
		Username:  "greta",
		Email:     "greta@example.com",
		Password:  "hunter2",
		FirstName: "Greta",
		LastName:  "Lind",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	engine, st := newTestEngine(t)

	user, err := engine.Register(registration())
	require.NoError(t, err)
	assert.Equal(t, "greta", user.Username)

	logged, err := engine.Login("greta", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user, logged)

	// The stored credential is a hash, never the password itself.
	st.View(func(d *store.Dataset) {
		require.Len(t, d.Users, 1)
		assert.NotEqual(t, "hunter2", d.Users[0].Password)
		assert.False(t, d.Users[0].IsAdmin)
	})
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	engine, _ := newTestEngine(t)
	_, err := engine.Register(registration())
	require.NoError(t, err)

	_, err = engine.Login("greta", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = engine.Login("nobody", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRequiredFields(t *testing.T) {
	engine, _ := newTestEngine(t)

	for _, req := range []RegisterRequest{
		{Email: "a@b.c", Password: "x"},
		{Username: "a", Password: "x"},
		{Username: "a", Email: "a@b.c"},
	} {
		_, err := engine.Register(req)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	engine, _ := newTestEngine(t)
	_, err := engine.Register(registration())
	require.NoError(t, err)

	dupName := registration()
	dupName.Email = "other@example.com"
	_, err = engine.Register(dupName)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	dupMail := registration()
	dupMail.Username = "other"
	_, err = engine.Register(dupMail)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestEnsureAdmin(t *testing.T) {
	engine, st := newTestEngine(t)

	require.NoError(t, engine.EnsureAdmin())
	st.View(func(d *store.Dataset) {
		require.Len(t, d.Users, 1)
		assert.Equal(t, "admin", d.Users[0].Username)
		assert.True(t, d.Users[0].IsAdmin)
	})

	// Second call must not add another account.
	require.NoError(t, engine.EnsureAdmin())
	st.View(func(d *store.Dataset) {
		assert.Len(t, d.Users, 1)
	})

	_, err := engine.Login("admin", "admin")
	assert.NoError(t, err)
}

func TestFirst(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, ok := engine.First()
	assert.False(t, ok)

	require.NoError(t, engine.EnsureAdmin())
	user, ok := engine.First()
	require.True(t, ok)
	assert.Equal(t, "admin", user.Username)
}
