package kavach

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trishulai/trishul-api/internal/archive"
	"github.com/trishulai/trishul-api/internal/latency"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/random"
	"github.com/trishulai/trishul-api/internal/store"
)

var fixedTime = time.Date(2025, 9, 7, 10, 11, 12, 345000000, time.UTC)

type testDeps struct {
	sleeper  *latency.Recorder
	store    *store.MemoryScanStore
	archiver *archive.Memory
}

func setupService(t *testing.T, src random.Source) (*Service, testDeps) {
	t.Helper()
	deps := testDeps{
		sleeper:  latency.NewRecorder(),
		store:    store.NewMemoryScanStore(store.SeedScans()),
		archiver: archive.NewMemory(),
	}
	logger, _ := test.NewNullLogger()
	svc, err := NewService(Config{
		Store:    deps.store,
		Sleeper:  deps.sleeper,
		Random:   src,
		Clock:    func() time.Time { return fixedTime },
		Archiver: deps.archiver,
		Logger:   logger,
	})
	require.NoError(t, err)
	return svc, deps
}

func TestNewServiceRequiresStore(t *testing.T) {
	_, err := NewService(Config{})
	assert.Error(t, err)
}

func TestTargetFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"hosts.csv", "hosts"},
		{"archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
		{"dir.v2/file", "dir.v2/file"},
		{".env", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TargetFromFilename(tt.name))
		})
	}
}

func TestNewScanID(t *testing.T) {
	assert.Equal(t, "SCN-000", NewScanID(random.NewSequence(0)))
	assert.Equal(t, "SCN-042", NewScanID(random.NewSequence(42.0/999+1e-9)))
	assert.Equal(t, "SCN-998", NewScanID(random.NewSequence(0.99999)))

	pattern := regexp.MustCompile(`^SCN-\d{3}$`)
	src := random.New(1)
	for i := 0; i < 200; i++ {
		assert.Regexp(t, pattern, NewScanID(src))
	}
}

func TestCreateScan(t *testing.T) {
	svc, deps := setupService(t, random.NewSequence(0.5))
	ctx := context.Background()

	env, err := svc.CreateScan(ctx, models.UploadedFile{Name: "hosts.csv"})
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, MsgScanInitiated, env.Message)
	assert.Equal(t, "SCN-499", env.Data.ScanID)
	assert.Equal(t, CreateDelay, deps.sleeper.Last())

	list, err := deps.store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, models.ScanRecord{
		ScanID:          "SCN-499",
		Target:          "hosts",
		Status:          models.ScanStatusRunning,
		FinishedAt:      "-",
		Vulnerabilities: 0,
	}, list[0])
}

func TestCreateThenListScenario(t *testing.T) {
	svc, deps := setupService(t, random.New(3))
	ctx := context.Background()

	created, err := svc.CreateScan(ctx, models.UploadedFile{Name: "hosts.csv"})
	require.NoError(t, err)

	listed, err := svc.ListScans(ctx)
	require.NoError(t, err)
	assert.True(t, listed.Success)
	require.Len(t, listed.Data, 4)
	assert.Equal(t, created.Data.ScanID, listed.Data[0].ScanID)
	assert.Equal(t, "hosts", listed.Data[0].Target)
	assert.Equal(t, models.ScanStatusRunning, listed.Data[0].Status)
	assert.Equal(t, ListDelay, deps.sleeper.Last())
}

func TestCreateScanAllowsDuplicateIDs(t *testing.T) {
	svc, _ := setupService(t, random.NewSequence(0))
	ctx := context.Background()

	a, err := svc.CreateScan(ctx, models.UploadedFile{Name: "a.txt"})
	require.NoError(t, err)
	b, err := svc.CreateScan(ctx, models.UploadedFile{Name: "b.txt"})
	require.NoError(t, err)
	assert.Equal(t, a.Data.ScanID, b.Data.ScanID)

	listed, err := svc.ListScans(ctx)
	require.NoError(t, err)
	assert.Len(t, listed.Data, 5)
}

func TestListScansIdempotent(t *testing.T) {
	svc, _ := setupService(t, random.New(1))
	ctx := context.Background()

	first, err := svc.ListScans(ctx)
	require.NoError(t, err)
	second, err := svc.ListScans(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, store.SeedScans(), first.Data)
}

func TestGetReport(t *testing.T) {
	svc, deps := setupService(t, random.New(1))

	env, err := svc.GetReport(context.Background(), "SCN-001")
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, MsgReportGenerated, env.Message)
	assert.Equal(t, ReportContentType, env.Data.ContentType)
	assert.Equal(t, "SCN-001-report.txt", env.Data.Filename)
	assert.Equal(t, "Vulnerability Report for SCN-001\n\nGenerated: 2025-09-07T10:11:12.345Z", string(env.Data.Content))
	assert.Greater(t, env.Data.Size(), 0)
	assert.Equal(t, ReportDelay, deps.sleeper.Last())

	objs := deps.archiver.Objects()
	require.Len(t, objs, 1)
	assert.Regexp(t, `^reports/SCN-001/\d+\.txt$`, objs[0].Key)
	assert.Equal(t, env.Data.Content, objs[0].Data)
}

func TestGetReportUnknownID(t *testing.T) {
	svc, _ := setupService(t, random.New(1))

	env, err := svc.GetReport(context.Background(), "SCN-999")
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data.Content), "Vulnerability Report for SCN-999")
}

type failingArchiver struct{}

func (failingArchiver) Store(ctx context.Context, key, contentType string, data []byte) error {
	return errors.New("bucket unreachable")
}

func TestGetReportArchiveFailureIsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	svc, err := NewService(Config{
		Store:    store.NewMemoryScanStore(nil),
		Sleeper:  latency.NewRecorder(),
		Archiver: failingArchiver{},
		Logger:   logger,
	})
	require.NoError(t, err)

	env, err := svc.GetReport(context.Background(), "SCN-002")
	require.NoError(t, err)
	assert.True(t, env.Success)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "Failed to archive report", hook.LastEntry().Message)
}

func TestOperationsStopOnCancelledContext(t *testing.T) {
	svc, deps := setupService(t, random.New(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.CreateScan(ctx, models.UploadedFile{Name: "hosts.csv"})
	assert.ErrorIs(t, err, context.Canceled)

	list, err := deps.store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)

	_, err = svc.ListScans(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.GetReport(ctx, "SCN-001")
	assert.ErrorIs(t, err, context.Canceled)
}
