package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/rpgkeeper/internal/client/client"
	"github.com/dmitrijs2005/rpgkeeper/internal/client/services"
	"github.com/dmitrijs2005/rpgkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	stubPasswords(t, "secret")
	f := &fakeAuth{}
	a, out := newTestApp(f, nil, readerFromLines("alice"))

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "alice", f.regUser)
	assert.Equal(t, "secret", f.regPass)
	assert.Contains(t, out.String(), "Success!")
	assert.False(t, a.isLoggedIn())
}

func TestRegister_Duplicate(t *testing.T) {
	stubPasswords(t, "secret")
	f := &fakeAuth{regErr: &services.RemoteError{Outcome: services.OutcomeDuplicate, Message: "User Already Exists!"}}
	a, out := newTestApp(f, nil, readerFromLines("alice"))

	err := a.Register(context.Background())
	require.Error(t, err)
	assert.Contains(t, out.String(), "User Already Exists!")
	assert.NotContains(t, out.String(), "Success!")
}

func TestLogin(t *testing.T) {
	stubPasswords(t, "pw")
	f := &fakeAuth{}
	a, out := newTestApp(f, nil, readerFromLines("alice"))

	require.NoError(t, a.Login(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "alice", a.userName)
	assert.Equal(t, "pw", f.loginPass)
	assert.Contains(t, out.String(), "Login successful")
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"wrong password", &services.RemoteError{Outcome: services.OutcomeInvalidPassword, Message: "Incorrect Password!"}, "Incorrect Password!"},
		{"no user", &services.RemoteError{Outcome: services.OutcomeNotFound, Message: "User not Found!"}, "User not Found!"},
		{"offline", client.ErrUnavailable, "Server unavailable"},
		{"other", errors.New("kaboom"), "Error: kaboom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubPasswords(t, "pw")
			a, out := newTestApp(&fakeAuth{loginErr: tt.err}, nil, readerFromLines("alice"))

			require.Error(t, a.Login(context.Background()))
			assert.False(t, a.isLoggedIn())
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestResetPassword(t *testing.T) {
	stubPasswords(t, "old", "new")
	f := &fakeAuth{}
	a, out := newTestApp(f, nil, readerFromLines("alice"))

	require.NoError(t, a.ResetPassword(context.Background()))
	assert.Equal(t, "old", f.resetOld)
	assert.Equal(t, "new", f.resetNew)
	assert.Contains(t, out.String(), "Password changed")
}

func TestResetPassword_EmptyNewPassword(t *testing.T) {
	stubPasswords(t, "old", "")
	f := &fakeAuth{}
	a, out := newTestApp(f, nil, readerFromLines("alice"))

	require.Error(t, a.ResetPassword(context.Background()))
	assert.Empty(t, f.resetOld)
	assert.Contains(t, out.String(), "must not be empty")
}

func TestLogout(t *testing.T) {
	f := &fakeAuth{}
	a, _ := newTestApp(f, nil, nil)
	a.loggedIn, a.userName = true, "alice"

	require.NoError(t, a.Logout(context.Background()))
	assert.Equal(t, 1, f.logoutCalls)
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.userName)

	f.logoutErr = errors.New("disk")
	assert.Error(t, a.Logout(context.Background()))
}

func TestReport_ExpiredTokenDropsSession(t *testing.T) {
	for _, err := range []error{common.ErrTokenExpired, client.ErrUnauthorized} {
		f := &fakeAuth{}
		a, out := newTestApp(f, nil, nil)
		a.loggedIn, a.userName = true, "alice"

		a.report(context.Background(), err)

		assert.False(t, a.isLoggedIn())
		assert.Equal(t, 1, f.logoutCalls)
		assert.Contains(t, out.String(), "please login again")
	}
}
