package repos

import (
  "context"
  "path/filepath"
  "testing"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/lumenlearn/content-backend/internal/logger"
  "github.com/lumenlearn/content-backend/internal/types"
)

func repoTestDB(t *testing.T) (*gorm.DB, *logger.Logger) {
  t.Helper()

  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("logger: %v", err)
  }
  t.Cleanup(log.Sync)

  dbPath := filepath.Join(t.TempDir(), "repos_test.db")
  gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  if err := gdb.AutoMigrate(&types.CourseModule{}, &types.Lesson{}, &types.LessonLocalization{}); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  return gdb, log
}

func createTestModule(t *testing.T, gdb *gorm.DB, title string) uuid.UUID {
  t.Helper()
  m := &types.CourseModule{CourseID: uuid.New(), Title: title}
  if err := gdb.Create(m).Error; err != nil {
    t.Fatalf("create module: %v", err)
  }
  return m.ID
}

// All three models must migrate cleanly on the sqlite driver used for local
// dev, so the schema can carry no postgres-only column defaults.
func TestModelsMigrateOnSQLite(t *testing.T) {
  repoTestDB(t)
}

func TestGetByModuleIDsOrdersByModuleThenIndex(t *testing.T) {
  gdb, log := repoTestDB(t)
  repo := NewLessonRepo(gdb, log)
  ctx := context.Background()

  modA := createTestModule(t, gdb, "Module A")
  modB := createTestModule(t, gdb, "Module B")

  seed := []*types.Lesson{
    {ModuleID: modA, Index: 2, Kind: types.LessonKindText, Title: "a2", Slug: "a2"},
    {ModuleID: modB, Index: 1, Kind: types.LessonKindText, Title: "b1", Slug: "b1"},
    {ModuleID: modA, Index: 0, Kind: types.LessonKindText, Title: "a0", Slug: "a0"},
    {ModuleID: modB, Index: 0, Kind: types.LessonKindText, Title: "b0", Slug: "b0"},
    {ModuleID: modA, Index: 1, Kind: types.LessonKindText, Title: "a1", Slug: "a1"},
  }
  if _, err := repo.Create(ctx, nil, seed); err != nil {
    t.Fatalf("create lessons: %v", err)
  }

  got, err := repo.GetByModuleIDs(ctx, nil, []uuid.UUID{modA, modB})
  if err != nil {
    t.Fatalf("GetByModuleIDs: %v", err)
  }
  if len(got) != len(seed) {
    t.Fatalf("got %d lessons, want %d", len(got), len(seed))
  }

  // Lessons of one module must come out contiguous, each run in ascending
  // index order.
  seen := make(map[uuid.UUID]bool)
  for i, lesson := range got {
    if i == 0 || lesson.ModuleID != got[i-1].ModuleID {
      if seen[lesson.ModuleID] {
        t.Fatalf("module %v appears in two separate runs", lesson.ModuleID)
      }
      seen[lesson.ModuleID] = true
      continue
    }
    if lesson.Index < got[i-1].Index {
      t.Fatalf("index order broken within module %v: %d after %d", lesson.ModuleID, lesson.Index, got[i-1].Index)
    }
  }
}

func TestGetByModuleIDsEmptyInput(t *testing.T) {
  gdb, log := repoTestDB(t)
  repo := NewLessonRepo(gdb, log)

  got, err := repo.GetByModuleIDs(context.Background(), nil, nil)
  if err != nil {
    t.Fatalf("GetByModuleIDs: %v", err)
  }
  if len(got) != 0 {
    t.Fatalf("expected no lessons, got %d", len(got))
  }
}
