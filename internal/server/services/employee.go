package services

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"strings"

	"github.com/staffdesk-io/staffdesk/internal/common"
	"github.com/staffdesk-io/staffdesk/internal/dbx"
	"github.com/staffdesk-io/staffdesk/internal/server/models"
	"github.com/staffdesk-io/staffdesk/internal/server/repositories/repomanager"
)

// Presigner hands out direct-access URLs for stored profile pictures.
// PictureService is the S3-backed implementation.
type Presigner interface {
	PresignUpload(ctx context.Context, key string) (string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

var validPictureExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// EmployeeService wraps the employee record store and resolves stored
// profile-picture keys into presigned download URLs.
type EmployeeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	pictures    Presigner
}

func NewEmployeeService(db *sql.DB, m repomanager.RepositoryManager, pictures Presigner) *EmployeeService {
	return &EmployeeService{db: db, repomanager: m, pictures: pictures}
}

// Get returns the employee record and, when a profile picture is stored, a
// presigned download URL for it.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*models.Employee, string, error) {
	repo := s.repomanager.Employees(s.db)
	emp, err := repo.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	var pictureURL string
	if emp.ProfilePicture != "" {
		pictureURL, err = s.pictures.PresignDownload(ctx, emp.ProfilePicture)
		if err != nil {
			return nil, "", fmt.Errorf("error presigning picture download: %w", err)
		}
	}

	return emp, pictureURL, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]*models.Employee, error) {
	repo := s.repomanager.Employees(s.db)
	return repo.List(ctx)
}

func (s *EmployeeService) Update(ctx context.Context, emp *models.Employee) error {
	repo := s.repomanager.Employees(s.db)
	return repo.Update(ctx, emp)
}

func (s *EmployeeService) PartialUpdate(ctx context.Context, id int64, fields map[string]any) error {
	repo := s.repomanager.Employees(s.db)
	return repo.PartialUpdate(ctx, id, fields)
}

// AdminUpdate replaces the profile of an arbitrary employee. When
// pictureFilename is set, its extension is validated, a fresh storage key is
// allocated, and the profile update and the picture-key write run in one
// transaction, so a failed update never leaves a dangling key. The storage
// key and a presigned PUT URL are returned when a picture was attached.
func (s *EmployeeService) AdminUpdate(ctx context.Context, emp *models.Employee, pictureFilename string) (string, string, error) {
	var key string
	if pictureFilename != "" {
		ext := strings.ToLower(path.Ext(pictureFilename))
		if _, ok := validPictureExtensions[ext]; !ok {
			return "", "", fmt.Errorf("%w: invalid file type %q", common.ErrorValidation, ext)
		}
		key = RandomStorageKey(ext)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Employees(tx)
		if err := repo.Update(ctx, emp); err != nil {
			return err
		}
		if key != "" {
			return repo.SetProfilePicture(ctx, emp.ID, key)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}

	if key == "" {
		return "", "", nil
	}

	uploadURL, err := s.pictures.PresignUpload(ctx, key)
	if err != nil {
		return "", "", fmt.Errorf("error presigning picture upload: %w", err)
	}
	return key, uploadURL, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	repo := s.repomanager.Employees(s.db)
	return repo.Delete(ctx, id)
}

// AttachProfilePicture allocates a storage key for a new picture with the
// given filename extension, persists the key on the employee row, and returns
// the key together with a presigned PUT URL the client uploads to.
// Extensions outside .jpg/.jpeg/.png/.gif yield common.ErrorValidation.
func (s *EmployeeService) AttachProfilePicture(ctx context.Context, id int64, filename string) (string, string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := validPictureExtensions[ext]; !ok {
		return "", "", fmt.Errorf("%w: invalid file type %q", common.ErrorValidation, ext)
	}

	key := RandomStorageKey(ext)

	repo := s.repomanager.Employees(s.db)
	if err := repo.SetProfilePicture(ctx, id, key); err != nil {
		return "", "", err
	}

	uploadURL, err := s.pictures.PresignUpload(ctx, key)
	if err != nil {
		return "", "", fmt.Errorf("error presigning picture upload: %w", err)
	}

	return key, uploadURL, nil
}
