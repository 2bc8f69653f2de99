package system

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/utils"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	gokeyring.MockInit()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Timezone = "UTC"
	store := sqlite.NewStore(filepath.Join(dir, "habitual.db"))
	t.Cleanup(func() { store.Close() })
	return &cli.Context{
		Config:     cfg,
		ConfigPath: filepath.Join(dir, "config.yaml"),
		Store:      store,
		Clock:      utils.FixedClock{T: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)},
	}
}

func TestInitCmd(t *testing.T) {
	ctx := setupTestContext(t)
	t.Setenv("HABITUAL_WEBHOOK_URL", "https://hooks.example.com/T000/secret")
	ctx.Config.ApplyEnv()
	ctx.Config.Storage = ctx.Store.GetConfigPath()

	if err := (&InitCmd{Name: "Robin"}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	loaded, err := config.Load(ctx.ConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Profile.Name != "Robin" {
		t.Errorf("config profile name = %q, want Robin", loaded.Profile.Name)
	}
	if loaded.Reminders.WebhookURL != "" {
		t.Errorf("webhook from the environment was saved: %q", loaded.Reminders.WebhookURL)
	}
	if loaded.Storage == ctx.Store.GetConfigPath() {
		t.Errorf("storage override was saved: %q", loaded.Storage)
	}

	tr, _ := ctx.Tracker()
	if tr.Profile().Name != "Robin" || tr.Profile().JoinDate != "2026-10-17" {
		t.Errorf("unexpected profile: %+v", tr.Profile())
	}
}

func TestDoctorCmd_Healthy(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	tr, _ := ctx.Tracker()
	if _, err := tr.CreateHabit(models.HabitInput{Title: "Floss", Goal: 30}); err != nil {
		t.Fatal(err)
	}

	// missing backups and a stopped daemon are warnings only
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor failed on a healthy store: %v", err)
	}

	detail, err := checkSchemaVersion(ctx)
	if err != nil || !strings.HasPrefix(detail, "version ") {
		t.Errorf("checkSchemaVersion() = %q, %v", detail, err)
	}
}

func TestDoctorCmd_Uninitialized(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail when the store does not exist")
	}
}

func TestDoctorCmd_CorruptState(t *testing.T) {
	ctx := setupTestContext(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.Set(storage.KeyHabits, []byte(`[{"id":"","title":"x"}]`)); err != nil {
		t.Fatal(err)
	}
	if _, err := checkBlobs(ctx); err == nil {
		t.Error("checkBlobs() should reject a habit without id")
	}
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on corrupt state")
	}
}

func TestCheckBlobs_MemoryStore(t *testing.T) {
	ctx := &cli.Context{Config: config.Default(), Store: storage.NewMemoryStore()}
	detail, err := checkBlobs(ctx)
	if err != nil || detail != "nothing saved yet" {
		t.Errorf("checkBlobs() = %q, %v", detail, err)
	}
	if detail, _ := checkSchemaVersion(ctx); detail != "not versioned" {
		t.Errorf("checkSchemaVersion() = %q", detail)
	}
}

func TestRemindOnce(t *testing.T) {
	var got notifier.WebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ctx := setupTestContext(t)
	ctx.Notifier = notifier.New(srv.URL)
	if err := ctx.Store.Init(); err != nil {
		t.Fatal(err)
	}
	tr, _ := ctx.Tracker()
	if _, err := tr.CreateHabit(models.HabitInput{Title: "Floss", Goal: 30}); err != nil {
		t.Fatal(err)
	}

	if err := (&RemindCmd{Once: true}).Run(ctx); err != nil {
		t.Fatalf("remind --once failed: %v", err)
	}
	if got.Text != "1 habit left today: Floss" {
		t.Errorf("reminder text = %q", got.Text)
	}

	if err := (&RemindCmd{Once: true, At: "7pm"}).Run(ctx); err == nil {
		t.Error("expected error for invalid reminder time")
	}
}

func TestPrintNotifier(t *testing.T) {
	var buf bytes.Buffer
	if err := (printNotifier{w: &buf}).Notify(context.Background(), "2 habits left today: A, B"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "🔔 2 habits left today: A, B\n" {
		t.Errorf("output = %q", buf.String())
	}
	if _, ok := (&RemindCmd{}).notifier(&cli.Context{}).(printNotifier); !ok {
		t.Error("expected the terminal notifier without a webhook")
	}
}

func TestCheckDaemon(t *testing.T) {
	ctx := setupTestContext(t)
	if _, err := checkDaemon(ctx); err == nil {
		t.Error("checkDaemon() should warn when no lockfile exists")
	}
}
