package users

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/autotransformers/site/internal/common"
	"github.com/autotransformers/site/internal/server/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeRepo struct {
	byEmail map[string]*User
	byID    map[string]*User

	inserted  []*User
	insertErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: map[string]*User{}, byID: map[string]*User{}}
}

func (f *fakeRepo) add(u *User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeRepo) Insert(ctx context.Context, user *User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return common.ErrEmailTaken
	}
	f.add(user)
	f.inserted = append(f.inserted, user)
	return nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	s, err := NewService(repo, sessions.NewRegistry(time.Hour))
	require.NoError(t, err)
	return s
}

func validInput() RegisterInput {
	return RegisterInput{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "A@x.com",
		Phone:     "555-0100",
		Password:  "longenough1",
	}
}

// --- register ---

func TestRegister_Success(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(t, repo)

	user, err := s.Register(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email, "email must be normalized")
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "longenough1", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
	require.Len(t, repo.inserted, 1)
}

func TestRegister_TrimsProfileFields(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(t, repo)

	in := validInput()
	in.FirstName = "  Alice "
	in.Email = "  A@x.com  "

	user, err := s.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.FirstName)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestRegister_MissingFields(t *testing.T) {
	s := newTestService(t, newFakeRepo())

	for _, mutate := range []func(*RegisterInput){
		func(in *RegisterInput) { in.FirstName = " " },
		func(in *RegisterInput) { in.LastName = "" },
		func(in *RegisterInput) { in.Email = "" },
		func(in *RegisterInput) { in.Phone = "" },
		func(in *RegisterInput) { in.Password = "" },
	} {
		in := validInput()
		mutate(&in)
		_, err := s.Register(context.Background(), in)
		assert.ErrorIs(t, err, common.ErrFieldsRequired)
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	s := newTestService(t, newFakeRepo())

	for _, email := range []string{"plain", "a@b", "a b@x.com", "@x.com", "a@.com "} {
		in := validInput()
		in.Email = email
		_, err := s.Register(context.Background(), in)
		assert.ErrorIs(t, err, common.ErrEmailInvalid, "email=%q", email)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	s := newTestService(t, newFakeRepo())

	in := validInput()
	in.Password = "short17"
	_, err := s.Register(context.Background(), in)
	assert.ErrorIs(t, err, common.ErrPasswordTooShort)
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "users.json"))
	s := newTestService(t, repo)
	ctx := context.Background()

	_, err := s.Register(ctx, validInput())
	require.NoError(t, err)

	second := validInput()
	second.Email = "a@X.COM"
	_, err = s.Register(ctx, second)
	assert.ErrorIs(t, err, common.ErrEmailTaken)
}

// --- login ---

func TestLogin_Success(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(t, repo)
	ctx := context.Background()

	registered, err := s.Register(ctx, validInput())
	require.NoError(t, err)

	user, err := s.Login(ctx, " A@x.com ", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(t, repo)
	ctx := context.Background()

	_, err := s.Register(ctx, validInput())
	require.NoError(t, err)

	_, unknownErr := s.Login(ctx, "nobody@x.com", "longenough1")
	_, wrongErr := s.Login(ctx, "a@x.com", "wrongpassword")

	assert.ErrorIs(t, unknownErr, common.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, common.ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
}

func TestLogin_MissingFields(t *testing.T) {
	s := newTestService(t, newFakeRepo())

	_, err := s.Login(context.Background(), "", "longenough1")
	assert.ErrorIs(t, err, common.ErrFieldsRequired)

	_, err = s.Login(context.Background(), "a@x.com", "")
	assert.ErrorIs(t, err, common.ErrFieldsRequired)
}

// --- sessions ---

func TestCurrentUser_Flow(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(t, repo)
	ctx := context.Background()

	user, err := s.Register(ctx, validInput())
	require.NoError(t, err)

	sid, err := s.StartSession(user.ID)
	require.NoError(t, err)

	current, err := s.CurrentUser(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)

	s.EndSession(sid)
	_, err = s.CurrentUser(ctx, sid)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestCurrentUser_UnknownSession(t *testing.T) {
	s := newTestService(t, newFakeRepo())

	_, err := s.CurrentUser(context.Background(), "bogus")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestCurrentUser_VanishedUser(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(t, repo)
	ctx := context.Background()

	// Session points at a user id the store no longer has.
	sid, err := s.StartSession("ghost")
	require.NoError(t, err)

	_, err = s.CurrentUser(ctx, sid)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}
