package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/dmitrijs2005/rpgkeeper/internal/client/config"
	"github.com/dmitrijs2005/rpgkeeper/internal/client/models"
	"github.com/dmitrijs2005/rpgkeeper/internal/client/services"
	"github.com/dmitrijs2005/rpgkeeper/internal/logging"
	"github.com/dmitrijs2005/rpgkeeper/internal/rpcapi"
)

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func newTestApp(auth services.AuthService, chars services.CharacterService, in *bufio.Reader) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	if in == nil {
		in = readerFromLines()
	}
	return &App{
		config:           &config.Config{},
		authService:      auth,
		characterService: chars,
		logger:           logging.Nop{},
		reader:           in,
		out:              out,
	}, out
}

// stubPasswords makes getPassword return the given answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(string, io.Writer) ([]byte, error) {
		pw := []byte(answers[i%len(answers)])
		i++
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

type fakeAuth struct {
	regUser string
	regPass string
	regErr  error

	loginUser string
	loginPass string
	loginErr  error

	resetOld, resetNew string
	resetErr           error

	restoreToken string
	restoreRes   *models.Session
	restoreErr   error

	logoutCalls int
	logoutErr   error

	pingErr error
	closed  bool
}

func (f *fakeAuth) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, string(pass)
	return f.regErr
}

func (f *fakeAuth) Login(_ context.Context, user string, pass []byte) (*models.Session, error) {
	f.loginUser, f.loginPass = user, string(pass)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.Session{UserName: user, Token: "tok"}, nil
}

func (f *fakeAuth) ResetPassword(_ context.Context, _ string, oldPassword, newPassword []byte) error {
	f.resetOld, f.resetNew = string(oldPassword), string(newPassword)
	return f.resetErr
}

func (f *fakeAuth) RestoreSession(_ context.Context, token string) (*models.Session, error) {
	f.restoreToken = token
	return f.restoreRes, f.restoreErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuth) Ping(context.Context) error  { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error { f.closed = true; return nil }

type fakeChars struct {
	list []rpcapi.Character
	err  error

	lastID    int64
	lastInput rpcapi.CharacterInput
	uploads   int
	downloads int
}

func (f *fakeChars) find(id int64) *rpcapi.Character {
	for i := range f.list {
		if f.list[i].ID == id {
			c := f.list[i]
			return &c
		}
	}
	return nil
}

func (f *fakeChars) List(context.Context) ([]rpcapi.Character, error) {
	return f.list, f.err
}

func (f *fakeChars) Get(_ context.Context, id int64) (*rpcapi.Character, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	if c := f.find(id); c != nil {
		return c, nil
	}
	return nil, &services.RemoteError{Outcome: services.OutcomeNotFound, Message: "Character with Id '" + strconv.FormatInt(id, 10) + "' not Found"}
}

func (f *fakeChars) Add(_ context.Context, in rpcapi.CharacterInput) ([]rpcapi.Character, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	f.list = append(f.list, rpcapi.Character{
		ID: int64(len(f.list) + 1), Name: in.Name, HitPoints: in.HitPoints, Strength: in.Strength,
		Defense: in.Defense, Intelligence: in.Intelligence, Class: in.Class,
	})
	return f.list, nil
}

func (f *fakeChars) Update(_ context.Context, id int64, in rpcapi.CharacterInput) (*rpcapi.Character, error) {
	f.lastID, f.lastInput = id, in
	if f.err != nil {
		return nil, f.err
	}
	return &rpcapi.Character{ID: id, Name: in.Name, HitPoints: in.HitPoints, Strength: in.Strength,
		Defense: in.Defense, Intelligence: in.Intelligence, Class: in.Class}, nil
}

func (f *fakeChars) Delete(_ context.Context, id int64) ([]rpcapi.Character, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	out := f.list[:0]
	for _, c := range f.list {
		if c.ID != id {
			out = append(out, c)
		}
	}
	f.list = out
	return f.list, nil
}

func (f *fakeChars) PortraitUploadURL(_ context.Context, id int64) (*rpcapi.PortraitURL, error) {
	f.lastID = id
	f.uploads++
	return &rpcapi.PortraitURL{Key: "characters/k", URL: "https://s3/put"}, f.err
}

func (f *fakeChars) PortraitDownloadURL(_ context.Context, id int64) (*rpcapi.PortraitURL, error) {
	f.lastID = id
	f.downloads++
	return &rpcapi.PortraitURL{Key: "characters/k", URL: "https://s3/get"}, f.err
}
