package auth

import (
	"context"
	"testing"

	"github.com/coauto/coauto-backend/pkg/db/models"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
	"github.com/coauto/coauto-backend/pkg/identity"
)

type stubDirectory struct {
	signUpResult *identity.SignUpResult
	signUpErr    error
	signUpCalls  int

	confirmErr   error
	groupsAdded  []string
	groupMembers []string

	tokens   *identity.Tokens
	loginErr error

	user      *identity.DirectoryUser
	userErr   error
	groups    []string
	groupsErr error
}

func (s *stubDirectory) SignUp(_ context.Context, _, _ string, _ []identity.AttributeValue) (*identity.SignUpResult, error) {
	s.signUpCalls++
	return s.signUpResult, s.signUpErr
}

func (s *stubDirectory) ConfirmSignUp(context.Context, string, string) error {
	return s.confirmErr
}

func (s *stubDirectory) ResendConfirmationCode(context.Context, string) error { return nil }

func (s *stubDirectory) InitiateAuth(context.Context, string, string) (*identity.Tokens, error) {
	return s.tokens, s.loginErr
}

func (s *stubDirectory) ChangePassword(context.Context, string, string, string) error { return nil }
func (s *stubDirectory) ForgotPassword(context.Context, string) error                 { return nil }
func (s *stubDirectory) ConfirmForgotPassword(context.Context, string, string, string) error {
	return nil
}

func (s *stubDirectory) GetUser(context.Context, string) (*identity.DirectoryUser, error) {
	return s.user, s.userErr
}

func (s *stubDirectory) AdminListGroupsForUser(context.Context, string) ([]string, error) {
	return s.groups, s.groupsErr
}

func (s *stubDirectory) AdminAddUserToGroup(_ context.Context, username, group string) error {
	s.groupsAdded = append(s.groupsAdded, group)
	s.groupMembers = append(s.groupMembers, username)
	return nil
}

type stubUserCreator struct {
	created []*models.User
	err     error
}

func (s *stubUserCreator) Create(_ context.Context, user *models.User) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user.ID = int64(len(s.created) + 1)
	s.created = append(s.created, user)
	return user, nil
}

type stubProbe struct {
	exists bool
}

func (s *stubProbe) RoleExists(context.Context, int64) (bool, error)   { return s.exists, nil }
func (s *stubProbe) StatusExists(context.Context, int64) (bool, error) { return s.exists, nil }

func newTestService(directory *stubDirectory, users *stubUserCreator) Service {
	svc, err := NewService(directory, users, &stubProbe{exists: true}, &stubProbe{exists: true}, "coauto-users")
	if err != nil {
		panic(err)
	}
	return svc
}

func TestSignUpCreatesLocalRowAfterDirectorySuccess(t *testing.T) {
	directory := &stubDirectory{signUpResult: &identity.SignUpResult{Sub: "sub-123", Confirmed: false}}
	users := &stubUserCreator{}
	svc := newTestService(directory, users)

	result, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "maria@example.com",
		Password: "s3cret!A",
		Name:     "Maria",
		Lastname: "Lopez",
		IDRole:   1,
		IDStatus: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sub != "sub-123" || result.ID != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(users.created) != 1 {
		t.Fatalf("expected one local row, got %d", len(users.created))
	}
	if users.created[0].Sub != "sub-123" {
		t.Fatalf("local row missing directory sub: %+v", users.created[0])
	}
}

func TestSignUpDuplicateEmailLeavesNoLocalRow(t *testing.T) {
	directory := &stubDirectory{
		signUpErr: pkgerrors.New(pkgerrors.CodeConflict, "an account with the given email already exists"),
	}
	users := &stubUserCreator{}
	svc := newTestService(directory, users)

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "maria@example.com",
		Password: "s3cret!A",
		IDRole:   1,
		IDStatus: 1,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(users.created) != 0 {
		t.Fatalf("local row must not be written on directory rejection")
	}
}

func TestSignUpRejectsMissingRoleBeforeDirectoryCall(t *testing.T) {
	directory := &stubDirectory{signUpResult: &identity.SignUpResult{Sub: "sub-123"}}
	users := &stubUserCreator{}
	svc, err := NewService(directory, users, &stubProbe{exists: false}, &stubProbe{exists: true}, "coauto-users")
	if err != nil {
		t.Fatalf("building service: %v", err)
	}

	_, err = svc.SignUp(context.Background(), SignUpInput{Email: "maria@example.com", IDRole: 42, IDStatus: 1})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "role does not exist" {
		t.Fatalf("expected role probe failure, got %v", err)
	}
	if directory.signUpCalls != 0 {
		t.Fatalf("directory must not be called after failed probe")
	}
}

func TestConfirmSignUpAddsAccountToGroup(t *testing.T) {
	directory := &stubDirectory{}
	svc := newTestService(directory, &stubUserCreator{})

	if err := svc.ConfirmSignUp(context.Background(), "maria@example.com", "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(directory.groupsAdded) != 1 || directory.groupsAdded[0] != "coauto-users" {
		t.Fatalf("expected group placement, got %+v", directory.groupsAdded)
	}
	if directory.groupMembers[0] != "maria@example.com" {
		t.Fatalf("unexpected group member %q", directory.groupMembers[0])
	}
}

func TestConfirmSignUpFailureSkipsGroupPlacement(t *testing.T) {
	directory := &stubDirectory{
		confirmErr: pkgerrors.New(pkgerrors.CodeValidation, "invalid verification code provided, please try again"),
	}
	svc := newTestService(directory, &stubUserCreator{})

	err := svc.ConfirmSignUp(context.Background(), "maria@example.com", "000000")
	if pkgerrors.As(err) == nil {
		t.Fatalf("expected confirm failure, got %v", err)
	}
	if len(directory.groupsAdded) != 0 {
		t.Fatalf("group must not be assigned when confirmation fails")
	}
}

func TestLoginReturnsTokenTriple(t *testing.T) {
	directory := &stubDirectory{tokens: &identity.Tokens{
		AccessToken:  "access",
		IDToken:      "id",
		RefreshToken: "refresh",
		ExpiresIn:    3600,
		TokenType:    "Bearer",
	}}
	svc := newTestService(directory, &stubUserCreator{})

	tokens, err := svc.Login(context.Background(), "maria@example.com", "s3cret!A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens.AccessToken != "access" || tokens.RefreshToken != "refresh" {
		t.Fatalf("unexpected tokens %+v", tokens)
	}
}

func TestMeResolvesAccountAndGroups(t *testing.T) {
	directory := &stubDirectory{
		user: &identity.DirectoryUser{
			Username:   "maria",
			Attributes: map[string]string{"sub": "sub-123", "email": "maria@example.com"},
		},
		groups: []string{"coauto-users"},
	}
	svc := newTestService(directory, &stubUserCreator{})

	me, err := svc.Me(context.Background(), "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if me.Username != "maria" || len(me.Groups) != 1 {
		t.Fatalf("unexpected result %+v", me)
	}
}

func TestMeEmptyGroupsSerializesAsList(t *testing.T) {
	directory := &stubDirectory{
		user: &identity.DirectoryUser{Username: "maria", Attributes: map[string]string{}},
	}
	svc := newTestService(directory, &stubUserCreator{})

	me, err := svc.Me(context.Background(), "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if me.Groups == nil {
		t.Fatalf("groups must be an empty list, not nil")
	}
}
