package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
)

// ErrNotAdmin the caller has no live admin session
var ErrNotAdmin = errors.New("user is not admin")

// AdminUseCase catalog administration
type AdminUseCase interface {
	// Login false on a wrong password or when admin login is disabled
	Login(ctx context.Context, userID int64, password string) (bool, error)

	Logout(ctx context.Context, userID int64) error

	IsAdmin(ctx context.Context, userID int64) (bool, error)

	// UploadCatalog replace the symptom catalog from an xlsx upload
	UploadCatalog(ctx context.Context, userID int64, fileData []byte, filename string) (int, error)

	// GetCatalogInfo source, update time and per-category counts
	GetCatalogInfo(ctx context.Context) (string, error)

	// ExportCatalog current catalog as an xlsx that UploadCatalog accepts back
	ExportCatalog(ctx context.Context, userID int64) ([]byte, error)

	// CleanAll wipe transcripts and prediction history
	CleanAll(ctx context.Context, userID int64) error
}

type adminUseCase struct {
	password       string
	adminRepo      repository.AdminRepository
	symptomRepo    repository.SymptomRepository
	catalogParser  repository.CatalogParser
	reportWriter   repository.ReportWriter
	chatRepo       repository.ChatRepository
	predictionRepo repository.PredictionRepository
	now            Clock
}

// NewAdminUseCase an empty password disables Login
func NewAdminUseCase(
	password string,
	adminRepo repository.AdminRepository,
	symptomRepo repository.SymptomRepository,
	catalogParser repository.CatalogParser,
	reportWriter repository.ReportWriter,
	chatRepo repository.ChatRepository,
	predictionRepo repository.PredictionRepository,
	now Clock,
) AdminUseCase {
	return &adminUseCase{
		password:       password,
		adminRepo:      adminRepo,
		symptomRepo:    symptomRepo,
		catalogParser:  catalogParser,
		reportWriter:   reportWriter,
		chatRepo:       chatRepo,
		predictionRepo: predictionRepo,
		now:            clockOrDefault(now),
	}
}

// Login ...
func (u *adminUseCase) Login(ctx context.Context, userID int64, password string) (bool, error) {
	if u.password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(u.password)) != 1 {
		return false, nil
	}

	now := u.now()
	session := entity.AdminSession{
		UserID:       userID,
		IsAdmin:      true,
		LoginTime:    now,
		LastActivity: now,
	}
	if err := u.adminRepo.CreateSession(ctx, session); err != nil {
		return false, fmt.Errorf("failed to create session: %w", err)
	}

	u.logAction(ctx, userID, "login", "Admin logged in")
	return true, nil
}

// Logout ...
func (u *adminUseCase) Logout(ctx context.Context, userID int64) error {
	return u.adminRepo.DeleteSession(ctx, userID)
}

// IsAdmin ...
func (u *adminUseCase) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return u.adminRepo.IsAdmin(ctx, userID)
}

// UploadCatalog ...
func (u *adminUseCase) UploadCatalog(ctx context.Context, userID int64, fileData []byte, filename string) (int, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return 0, err
	}

	symptoms, err := u.catalogParser.ParseSymptomsFromBytes(ctx, fileData, filename)
	if err != nil {
		return 0, fmt.Errorf("failed to parse excel: %w", err)
	}

	catalog := entity.SymptomCatalog{
		Symptoms:  symptoms,
		UpdatedAt: u.now(),
		Source:    filename,
	}
	if err := u.symptomRepo.UpdateCatalog(ctx, catalog); err != nil {
		return 0, fmt.Errorf("failed to update catalog: %w", err)
	}

	u.logAction(ctx, userID, "upload_catalog", fmt.Sprintf("Uploaded %d symptoms from %s", len(symptoms), filename))
	return len(symptoms), nil
}

// GetCatalogInfo ...
func (u *adminUseCase) GetCatalogInfo(ctx context.Context) (string, error) {
	catalog, err := u.symptomRepo.GetCatalog(ctx)
	if err != nil {
		return "", err
	}

	counts := make(map[string]int)
	for _, s := range catalog.Symptoms {
		counts[s.Category]++
	}
	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📦 Catalog: %s\n", catalog.Source))
	sb.WriteString(fmt.Sprintf("📅 Updated: %s\n", catalog.UpdatedAt.Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("📊 Symptoms: %d\n\n", len(catalog.Symptoms)))
	sb.WriteString("📂 Categories:\n")
	for _, c := range categories {
		name := c
		if name == "" {
			name = "(none)"
		}
		sb.WriteString(fmt.Sprintf("  • %s: %d\n", name, counts[c]))
	}
	return sb.String(), nil
}

// ExportCatalog ...
func (u *adminUseCase) ExportCatalog(ctx context.Context, userID int64) ([]byte, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	catalog, err := u.symptomRepo.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return u.reportWriter.WriteCatalog(ctx, catalog.Symptoms)
}

// CleanAll ...
func (u *adminUseCase) CleanAll(ctx context.Context, userID int64) error {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return err
	}

	if err := u.chatRepo.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear chats: %w", err)
	}
	if err := u.predictionRepo.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear predictions: %w", err)
	}

	u.logAction(ctx, userID, "clean_all", "Cleared chat transcripts and prediction history")
	return nil
}

func (u *adminUseCase) requireAdmin(ctx context.Context, userID int64) error {
	ok, err := u.adminRepo.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAdmin
	}
	if err := u.adminRepo.Touch(ctx, userID); err != nil {
		log.WithField("user_id", userID).WithError(err).Warn("admin session touch failed")
	}
	return nil
}

func (u *adminUseCase) logAction(ctx context.Context, userID int64, action, details string) {
	err := u.adminRepo.LogAction(ctx, entity.AdminAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: u.now(),
	})
	if err != nil {
		log.WithFields(log.Fields{
			"user_id": userID,
			"action":  action,
		}).WithError(err).Warn("admin action not recorded")
	}
}
