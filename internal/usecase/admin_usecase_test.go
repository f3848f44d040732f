package usecase

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
	"github.com/yourusername/symptom-checker/internal/infrastructure/parser"
)

func TestAdminLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if ok, _ := f.adminUC.Login(ctx, 1, "wrong"); ok {
		t.Fatalf("wrong password accepted")
	}
	if ok, _ := f.adminUC.Login(ctx, 1, "secret"); !ok {
		t.Fatalf("correct password rejected")
	}
	if ok, _ := f.adminUC.IsAdmin(ctx, 1); !ok {
		t.Fatalf("session not created")
	}

	_ = f.adminUC.Logout(ctx, 1)
	if ok, _ := f.adminUC.IsAdmin(ctx, 1); ok {
		t.Fatalf("logout did not end the session")
	}

	actions, _ := f.admins.Actions(ctx, 0)
	if len(actions) != 1 || actions[0].Action != "login" {
		t.Fatalf("login not audited: %+v", actions)
	}
}

func TestAdminLoginDisabledWithoutPassword(t *testing.T) {
	f := newFixture(t)
	uc := NewAdminUseCase("", f.admins, f.symptoms, parser.NewExcelParser(), parser.NewExcelReportWriter(), f.chats, f.predictions, f.clock.Now)
	if ok, _ := uc.Login(context.Background(), 1, ""); ok {
		t.Fatalf("empty password must not log in")
	}
}

func TestAdminUploadCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	data, err := parser.NewExcelReportWriter().WriteCatalog(ctx, []entity.Symptom{
		{ID: "thirst", Name: "Thirst", Description: "Constant urge to drink", Category: "Early signs"},
		{ID: "cramps", Name: "Cramps", Description: "Painful contractions", Category: "Severe signs"},
	})
	if err != nil {
		t.Fatalf("WriteCatalog: %v", err)
	}

	if _, err := f.adminUC.UploadCatalog(ctx, 1, data, "dehydration.xlsx"); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}

	_, _ = f.adminUC.Login(ctx, 1, "secret")
	n, err := f.adminUC.UploadCatalog(ctx, 1, data, "dehydration.xlsx")
	if err != nil {
		t.Fatalf("UploadCatalog: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 symptoms, got %d", n)
	}

	cats, _ := f.symptomUC.Categories(ctx)
	if len(cats) != 2 || cats[0] != "Early signs" {
		t.Fatalf("catalog not replaced: %v", cats)
	}

	info, err := f.adminUC.GetCatalogInfo(ctx)
	if err != nil {
		t.Fatalf("GetCatalogInfo: %v", err)
	}
	if !strings.Contains(info, "dehydration.xlsx") || !strings.Contains(info, "Early signs: 1") {
		t.Fatalf("unexpected info %q", info)
	}

	if _, err := f.adminUC.UploadCatalog(ctx, 1, []byte("junk"), "junk.xlsx"); err == nil {
		t.Fatalf("junk upload should fail")
	}
	if _, err := f.symptomUC.GetByID(ctx, "thirst"); err != nil {
		t.Fatalf("failed upload must keep the previous catalog: %v", err)
	}
}

func TestAdminCleanAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.chatUC.Send(ctx, 5, "fever")
	_, _ = f.predictionUC.Predict(ctx, 5, []string{"fever"})

	if err := f.adminUC.CleanAll(ctx, 1); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}

	_, _ = f.adminUC.Login(ctx, 1, "secret")
	f.clock.Advance(time.Hour)
	if err := f.adminUC.CleanAll(ctx, 1); err != nil {
		t.Fatalf("CleanAll: %v", err)
	}

	if msgs, _ := f.chats.GetAllMessages(ctx, 0); len(msgs) != 0 {
		t.Fatalf("transcripts not cleared")
	}
	if h, _ := f.predictionUC.History(ctx, 5, entity.HistoryAll); len(h) != 0 {
		t.Fatalf("predictions not cleared")
	}
}

func TestAdminExportCatalogRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.adminUC.ExportCatalog(ctx, 1); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}

	_, _ = f.adminUC.Login(ctx, 1, "secret")
	data, err := f.adminUC.ExportCatalog(ctx, 1)
	if err != nil {
		t.Fatalf("ExportCatalog: %v", err)
	}
	n, err := f.adminUC.UploadCatalog(ctx, 1, data, "symptoms.xlsx")
	if err != nil {
		t.Fatalf("UploadCatalog: %v", err)
	}
	all, _ := f.symptomUC.Filter(ctx, "", "")
	if n != len(all) || n != 35 {
		t.Fatalf("round trip changed the catalog size: %d", n)
	}
}

// auditFailingRepo sessions work, bookkeeping writes fail
type auditFailingRepo struct {
	repository.AdminRepository
}

var errAuditDown = errors.New("audit store down")

func (auditFailingRepo) Touch(ctx context.Context, userID int64) error { return errAuditDown }

func (auditFailingRepo) LogAction(ctx context.Context, action entity.AdminAction) error {
	return errAuditDown
}

func TestAdminBookkeepingFailuresAreLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	f := newFixture(t)
	ctx := context.Background()
	admins := auditFailingRepo{AdminRepository: f.admins}
	adminUC := NewAdminUseCase("secret", admins, f.symptoms, parser.NewExcelParser(),
		parser.NewExcelReportWriter(), f.chats, f.predictions, f.clock.Now)

	if ok, err := adminUC.Login(ctx, 1, "secret"); err != nil || !ok {
		t.Fatalf("Login should survive an audit failure, got %v %v", ok, err)
	}
	if err := adminUC.CleanAll(ctx, 1); err != nil {
		t.Fatalf("CleanAll should survive an audit failure: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"admin action not recorded", "admin session touch failed", "audit store down"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}
