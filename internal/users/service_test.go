package users

import (
	"context"
	"testing"

	"github.com/coauto/coauto-backend/pkg/db/models"
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
	"github.com/coauto/coauto-backend/pkg/pagination"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	user        *models.User
	findErr     error
	listRows    []models.User
	listTotal   int64
	updateCalls int
	statusCalls int
}

func (s *stubUserRepo) FindByID(context.Context, int64) (*models.User, error) {
	return s.user, s.findErr
}

func (s *stubUserRepo) List(context.Context, pagination.Params) ([]models.User, int64, error) {
	return s.listRows, s.listTotal, nil
}

func (s *stubUserRepo) UpdateProfile(context.Context, int64, UpdateProfileInput) error {
	s.updateCalls++
	return nil
}

func (s *stubUserRepo) UpdateStatus(context.Context, int64, int64) error {
	s.statusCalls++
	return nil
}

type stubStatusReader struct {
	status *models.Status
	err    error
}

func (s *stubStatusReader) FindStatus(context.Context, int64) (*models.Status, error) {
	return s.status, s.err
}

type stubRoleProbe struct {
	exists bool
}

func (s *stubRoleProbe) RoleExists(context.Context, int64) (bool, error) {
	return s.exists, nil
}

type stubToggler struct {
	enabled  []string
	disabled []string
}

func (s *stubToggler) AdminEnableUser(_ context.Context, username string) error {
	s.enabled = append(s.enabled, username)
	return nil
}

func (s *stubToggler) AdminDisableUser(_ context.Context, username string) error {
	s.disabled = append(s.disabled, username)
	return nil
}

func newTestService(repo *stubUserRepo, statuses *stubStatusReader, roles *stubRoleProbe, directory *stubToggler) Service {
	svc, err := NewService(repo, statuses, roles, directory)
	if err != nil {
		panic(err)
	}
	return svc
}

func TestGetNotFound(t *testing.T) {
	repo := &stubUserRepo{findErr: gorm.ErrRecordNotFound}
	svc := newTestService(repo, &stubStatusReader{}, &stubRoleProbe{exists: true}, &stubToggler{})

	_, err := svc.Get(context.Background(), 5)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProfileRejectsMissingRole(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestService(repo, &stubStatusReader{}, &stubRoleProbe{exists: false}, &stubToggler{})

	err := svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{IDRole: 42})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "role does not exist" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
	if repo.updateCalls != 0 {
		t.Fatalf("update should not run after failed probe")
	}
}

func TestSoftDeleteActiveStatusEnablesDirectoryAccount(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{ID: 1, Sub: "sub-abc"}}
	toggler := &stubToggler{}
	svc := newTestService(repo, &stubStatusReader{status: &models.Status{ID: 1, Value: true}}, &stubRoleProbe{exists: true}, toggler)

	if err := svc.SoftDelete(context.Background(), 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.statusCalls != 1 {
		t.Fatalf("expected local status update")
	}
	if len(toggler.enabled) != 1 || toggler.enabled[0] != "sub-abc" {
		t.Fatalf("expected enable call for sub-abc, got %+v", toggler)
	}
	if len(toggler.disabled) != 0 {
		t.Fatalf("disable must not be called for an active status")
	}
}

func TestSoftDeleteInactiveStatusDisablesDirectoryAccount(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{ID: 1, Sub: "sub-abc"}}
	toggler := &stubToggler{}
	svc := newTestService(repo, &stubStatusReader{status: &models.Status{ID: 2, Value: false}}, &stubRoleProbe{exists: true}, toggler)

	if err := svc.SoftDelete(context.Background(), 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toggler.disabled) != 1 || toggler.disabled[0] != "sub-abc" {
		t.Fatalf("expected disable call for sub-abc, got %+v", toggler)
	}
	if len(toggler.enabled) != 0 {
		t.Fatalf("enable must not be called for an inactive status")
	}
}

func TestSoftDeleteMissingStatusRejected(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{ID: 1, Sub: "sub-abc"}}
	toggler := &stubToggler{}
	svc := newTestService(repo, &stubStatusReader{err: gorm.ErrRecordNotFound}, &stubRoleProbe{exists: true}, toggler)

	err := svc.SoftDelete(context.Background(), 1, 42)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.statusCalls != 0 {
		t.Fatalf("local update should not run after failed probe")
	}
	if len(toggler.enabled)+len(toggler.disabled) != 0 {
		t.Fatalf("directory must not be touched after failed probe")
	}
}

func TestSoftDeleteMissingUserIs404(t *testing.T) {
	repo := &stubUserRepo{findErr: gorm.ErrRecordNotFound}
	svc := newTestService(repo, &stubStatusReader{status: &models.Status{ID: 1, Value: false}}, &stubRoleProbe{exists: true}, &stubToggler{})

	err := svc.SoftDelete(context.Background(), 9, 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListMapsRows(t *testing.T) {
	repo := &stubUserRepo{
		listRows: []models.User{
			{ID: 1, Email: "a@example.com", Name: "A", Lastname: "One", IDRole: 1, IDStatus: 1},
			{ID: 2, Email: "b@example.com", Name: "B", Lastname: "Two", IDRole: 2, IDStatus: 1},
		},
		listTotal: 2,
	}
	svc := newTestService(repo, &stubStatusReader{}, &stubRoleProbe{exists: true}, &stubToggler{})

	page, err := svc.List(context.Background(), pagination.Params{Page: 1, PerPage: 10})
	if err != nil || len(page.Users) != 2 || page.Paging.TotalRows != 2 {
		t.Fatalf("unexpected page %+v err=%v", page, err)
	}
}
