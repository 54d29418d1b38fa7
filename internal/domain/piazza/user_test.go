package piazza

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modsoc/internal/shared/errors"
)

func strPtr(s string) *string { return &s }

func TestNewUser(t *testing.T) {
	t.Run("valid raw record", func(t *testing.T) {
		u, err := NewUser(UserParams{
			PiazzaID: strPtr("hx1"),
			Name:     "Ada Lovelace",
			Email:    "ada@example.edu",
			Answers:  3,
			Posts:    10,
		})
		require.NoError(t, err)

		assert.Zero(t, u.ID())
		assert.Equal(t, "hx1", *u.PiazzaID())
		assert.Equal(t, "ada@example.edu", *u.Email())
		assert.Equal(t, 3, u.Answers())
		assert.Equal(t, 10, u.Posts())
		assert.False(t, u.HasSplitName())
		assert.False(t, u.IsMigrated())
		assert.Nil(t, u.DatasetID())
	})

	t.Run("empty email becomes nil", func(t *testing.T) {
		u, err := NewUser(UserParams{Name: "Anon"})
		require.NoError(t, err)
		assert.Nil(t, u.Email())
	})

	tests := []struct {
		name   string
		params UserParams
	}{
		{name: "email without at sign", params: UserParams{Name: "x", Email: "not-an-email"}},
		{name: "negative answers", params: UserParams{Name: "x", Answers: -1}},
		{name: "negative days", params: UserParams{Name: "x", Days: -4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.params)
			assert.Nil(t, u)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestReconstructUser(t *testing.T) {
	_, err := ReconstructUser(0, UserParams{}, nil, nil, nil)
	assert.Error(t, err)

	dataset := uint(4)
	central := uint(9)
	u, err := ReconstructUser(12, UserParams{Name: "Grace Hopper", Email: "grace"},
		&SplitName{First: "Grace", Last: "Hopper"}, &dataset, &central)
	require.NoError(t, err)

	assert.Equal(t, uint(12), u.ID())
	assert.Equal(t, "Grace", u.FirstName())
	assert.Equal(t, "", u.MiddleName())
	assert.Equal(t, "Hopper", u.LastName())
	assert.Equal(t, uint(4), *u.DatasetID())
	assert.True(t, u.IsMigrated())
}

func TestUser_SetID(t *testing.T) {
	u, err := NewUser(UserParams{Name: "x"})
	require.NoError(t, err)

	assert.Error(t, u.SetID(0))
	require.NoError(t, u.SetID(5))
	assert.Error(t, u.SetID(6))
	assert.Equal(t, uint(5), u.ID())
}

func TestUser_NormalizeEmail(t *testing.T) {
	u, err := ReconstructUser(1, UserParams{Name: "x"}, nil, nil, nil)
	require.NoError(t, err)
	u.email = strPtr("  ")

	u.NormalizeEmail()
	assert.Nil(t, u.Email())
}

func TestUser_SetEmail(t *testing.T) {
	u, err := NewUser(UserParams{Name: "x", Email: "a@b.c"})
	require.NoError(t, err)

	require.NoError(t, u.SetEmail(strPtr("")))
	assert.Nil(t, u.Email())

	require.NoError(t, u.SetEmail(strPtr("c@d.e")))
	assert.Equal(t, "c@d.e", *u.Email())

	err = u.SetEmail(strPtr("nope"))
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, "c@d.e", *u.Email())
}

func TestUser_SplitEmail(t *testing.T) {
	u, err := NewUser(UserParams{Name: "x", Email: "jdoe@ncsu.edu"})
	require.NoError(t, err)

	local, domain, err := u.SplitEmail()
	require.NoError(t, err)
	assert.Equal(t, "jdoe", local)
	assert.Equal(t, "ncsu.edu", domain)

	noEmail, err := NewUser(UserParams{Name: "x"})
	require.NoError(t, err)
	local, domain, err = noEmail.SplitEmail()
	assert.NoError(t, err)
	assert.Empty(t, local)
	assert.Empty(t, domain)

	stored, err := ReconstructUser(3, UserParams{Name: "x", Email: "legacy-value"}, nil, nil, nil)
	require.NoError(t, err)
	_, _, err = stored.SplitEmail()
	assert.True(t, errors.IsValidationError(err))
}

func TestUser_MakeSplitNameFields(t *testing.T) {
	u, err := NewUser(UserParams{Name: "john q. public"})
	require.NoError(t, err)

	splitter := NameSplitterFunc(func(raw string) SplitName {
		assert.Equal(t, "john q. public", raw)
		return SplitName{First: "john", Middle: "q.", Last: "public"}
	})

	s := u.MakeSplitNameFields(splitter)
	assert.Equal(t, SplitName{First: "john", Middle: "q.", Last: "public"}, s)
	assert.True(t, u.HasSplitName())
	assert.Equal(t, "public", u.LastName())

	// the returned copy does not alias the record
	copied := u.SplitName()
	copied.First = "changed"
	assert.Equal(t, "john", u.FirstName())
}

func TestUser_LinkCentralUser(t *testing.T) {
	u, err := NewUser(UserParams{Name: "x"})
	require.NoError(t, err)

	assert.Error(t, u.LinkCentralUser(0))
	require.NoError(t, u.LinkCentralUser(77))
	assert.Equal(t, uint(77), *u.CentralUserID())

	u.AssignDataset(3)
	assert.Equal(t, uint(3), *u.DatasetID())
}

func TestUser_SyncProfileAndReset(t *testing.T) {
	u, err := NewUser(UserParams{PiazzaID: strPtr("hx9"), Name: "Real Name", Email: "real@x.org"})
	require.NoError(t, err)

	u.ResetPiazzaID()
	u.SyncProfile(Profile{Name: "User 41", FirstName: "User", LastName: "41", Email: strPtr("")})

	assert.Nil(t, u.PiazzaID())
	assert.Equal(t, "User 41", u.Name())
	assert.Equal(t, "User", u.FirstName())
	assert.Equal(t, "", u.MiddleName())
	assert.Equal(t, "41", u.LastName())
	assert.Nil(t, u.Email())

	u.SyncProfile(Profile{Name: "User 41", Email: strPtr("u41@anon.invalid")})
	assert.Equal(t, "u41@anon.invalid", *u.Email())
}
