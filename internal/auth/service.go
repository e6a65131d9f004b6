// Package auth orchestrates account lifecycle against the external user
// directory. The directory owns credentials; this service only mirrors
// confirmed identity data into the local user table.
package auth

import (
	"context"
	"fmt"

	"github.com/coauto/coauto-backend/pkg/db/models"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
	"github.com/coauto/coauto-backend/pkg/identity"
)

// Service exposes the directory-backed account operations.
type Service interface {
	SignUp(ctx context.Context, input SignUpInput) (*SignUpResult, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	ResendConfirmationCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*TokensDTO, error)
	ChangePassword(ctx context.Context, accessToken, previous, proposed string) error
	ForgotPassword(ctx context.Context, email string) error
	ConfirmForgotPassword(ctx context.Context, email, code, password string) error
	Me(ctx context.Context, accessToken string) (*CurrentUserDTO, error)
}

type directoryClient interface {
	SignUp(ctx context.Context, username, password string, attributes []identity.AttributeValue) (*identity.SignUpResult, error)
	ConfirmSignUp(ctx context.Context, username, code string) error
	ResendConfirmationCode(ctx context.Context, username string) error
	InitiateAuth(ctx context.Context, username, password string) (*identity.Tokens, error)
	ChangePassword(ctx context.Context, accessToken, previous, proposed string) error
	ForgotPassword(ctx context.Context, username string) error
	ConfirmForgotPassword(ctx context.Context, username, code, password string) error
	GetUser(ctx context.Context, accessToken string) (*identity.DirectoryUser, error)
	AdminListGroupsForUser(ctx context.Context, username string) ([]string, error)
	AdminAddUserToGroup(ctx context.Context, username, group string) error
}

type userCreator interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

type roleProbe interface {
	RoleExists(ctx context.Context, id int64) (bool, error)
}

type statusProbe interface {
	StatusExists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	directory directoryClient
	users     userCreator
	roles     roleProbe
	statuses  statusProbe
	groupName string
}

// NewService constructs an auth service instance.
func NewService(directory directoryClient, users userCreator, roles roleProbe, statuses statusProbe, groupName string) (Service, error) {
	if directory == nil {
		return nil, fmt.Errorf("directory client required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if roles == nil {
		return nil, fmt.Errorf("role repository required")
	}
	if statuses == nil {
		return nil, fmt.Errorf("status repository required")
	}
	return &service{
		directory: directory,
		users:     users,
		roles:     roles,
		statuses:  statuses,
		groupName: groupName,
	}, nil
}

// SignUp registers the account with the directory first. The local mirror row
// is written only after the directory accepts the registration, so a
// duplicate email never leaves a stray local row behind.
func (s *service) SignUp(ctx context.Context, input SignUpInput) (*SignUpResult, error) {
	exists, err := s.roles.RoleExists(ctx, input.IDRole)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: check role")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role does not exist")
	}

	exists, err = s.statuses.StatusExists(ctx, input.IDStatus)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: check status")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status does not exist")
	}

	attributes := []identity.AttributeValue{
		{Name: "email", Value: input.Email},
		{Name: "name", Value: input.Name},
		{Name: "family_name", Value: input.Lastname},
	}

	registered, err := s.directory.SignUp(ctx, input.Email, input.Password, attributes)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Sub:      registered.Sub,
		Email:    input.Email,
		Name:     input.Name,
		Lastname: input.Lastname,
		IDRole:   input.IDRole,
		IDStatus: input.IDStatus,
		ImageURL: input.ImageURL,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: insert user after directory sign-up")
	}

	return &SignUpResult{
		ID:        created.ID,
		Sub:       registered.Sub,
		Email:     created.Email,
		Confirmed: registered.Confirmed,
	}, nil
}

// ConfirmSignUp confirms the pending account and places it in the service
// group.
func (s *service) ConfirmSignUp(ctx context.Context, email, code string) error {
	if err := s.directory.ConfirmSignUp(ctx, email, code); err != nil {
		return err
	}
	if s.groupName == "" {
		return nil
	}
	return s.directory.AdminAddUserToGroup(ctx, email, s.groupName)
}

// ResendConfirmationCode re-sends the confirmation code.
func (s *service) ResendConfirmationCode(ctx context.Context, email string) error {
	return s.directory.ResendConfirmationCode(ctx, email)
}

// Login trades credentials for the directory token triple.
func (s *service) Login(ctx context.Context, email, password string) (*TokensDTO, error) {
	return s.directory.InitiateAuth(ctx, email, password)
}

// ChangePassword rotates the password behind the access token.
func (s *service) ChangePassword(ctx context.Context, accessToken, previous, proposed string) error {
	return s.directory.ChangePassword(ctx, accessToken, previous, proposed)
}

// ForgotPassword starts the reset flow.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	return s.directory.ForgotPassword(ctx, email)
}

// ConfirmForgotPassword completes the reset flow.
func (s *service) ConfirmForgotPassword(ctx context.Context, email, code, password string) error {
	return s.directory.ConfirmForgotPassword(ctx, email, code, password)
}

// Me resolves the authenticated account and its groups.
func (s *service) Me(ctx context.Context, accessToken string) (*CurrentUserDTO, error) {
	account, err := s.directory.GetUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	groups, err := s.directory.AdminListGroupsForUser(ctx, account.Username)
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []string{}
	}

	return &CurrentUserDTO{
		Username:   account.Username,
		Attributes: account.Attributes,
		Groups:     groups,
	}, nil
}
