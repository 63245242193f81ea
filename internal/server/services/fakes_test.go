package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/rpgkeeper/internal/common"
	"github.com/dmitrijs2005/rpgkeeper/internal/dbx"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/models"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/repositories/characters"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

func expectCommit(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

func expectRollback(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}

// memUsers is an in-memory users.Repository with case-insensitive lookups.
type memUsers struct {
	mu     sync.Mutex
	byID   map[int64]*models.User
	nextID int64

	createErr error
	existsErr error
	getErr    error
	updateErr error

	getCalls int
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[int64]*models.User{}}
}

func (m *memUsers) find(login string) *models.User {
	for _, u := range m.byID {
		if strings.EqualFold(u.UserName, login) {
			return u
		}
	}
	return nil
}

func (m *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.find(u.UserName) != nil {
		return nil, common.ErrorAlreadyExists
	}
	m.nextID++
	cp := *u
	cp.ID = m.nextID
	cp.CreatedAt = time.Now()
	m.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memUsers) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	u := m.find(login)
	if u == nil {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (m *memUsers) Exists(_ context.Context, login string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.find(login) != nil, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id int64, hash, salt []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	u, ok := m.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	u.PasswordSalt = salt
	return nil
}

// memCharacters is an in-memory characters.Repository.
type memCharacters struct {
	mu     sync.Mutex
	byID   map[int64]*models.Character
	nextID int64

	createErr error
	listErr   error
	getErr    error
}

func newMemCharacters() *memCharacters {
	return &memCharacters{byID: map[int64]*models.Character{}}
}

func (m *memCharacters) Create(_ context.Context, c *models.Character) (*models.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	cp := *c
	cp.ID = m.nextID
	m.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memCharacters) List(context.Context) ([]*models.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*models.Character, 0, len(m.byID))
	for _, c := range m.byID {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memCharacters) GetByID(_ context.Context, id int64) (*models.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCharacters) Update(_ context.Context, c *models.Character) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.byID[c.ID]
	if !ok {
		return common.ErrorNotFound
	}
	cur.Name = c.Name
	cur.HitPoints = c.HitPoints
	cur.Strength = c.Strength
	cur.Defense = c.Defense
	cur.Intelligence = c.Intelligence
	cur.Class = c.Class
	return nil
}

func (m *memCharacters) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memCharacters) SetPortraitKey(_ context.Context, id int64, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	c.PortraitKey = key
	return nil
}

type fakeRepoManager struct {
	u *memUsers
	c *memCharacters
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *fakeRepoManager) Characters(dbx.DBTX) characters.Repository    { return m.c }

type countingIssuer struct {
	calls int
	token string
	err   error
}

func (c *countingIssuer) Issue(int64, string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.token, nil
}

type fakePortraits struct {
	putKeys []string
	getKeys []string
	err     error
}

func (f *fakePortraits) PresignPut(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.putKeys = append(f.putKeys, key)
	return "https://s3.test/put/" + key, nil
}

func (f *fakePortraits) PresignGet(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.getKeys = append(f.getKeys, key)
	return "https://s3.test/get/" + key, nil
}
