package prefs

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "preferences.db")
	s, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func storesUnderTest(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": openTestSQLite(t),
	}
}

func TestStoreDefaults(t *testing.T) {
	ctx := context.Background()
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			show, err := s.ShowEnabled(ctx)
			if err != nil {
				t.Fatalf("ShowEnabled() error: %v", err)
			}
			if !show {
				t.Error("ShowEnabled() should default to true")
			}
			n, err := s.SuccessfulChecks(ctx)
			if err != nil {
				t.Fatalf("SuccessfulChecks() error: %v", err)
			}
			if n != 0 {
				t.Errorf("SuccessfulChecks() = %d, want 0", n)
			}
		})
	}
}

func TestStoreIncrementAndFlag(t *testing.T) {
	ctx := context.Background()
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			for want := 1; want <= 3; want++ {
				got, err := s.IncrementSuccessfulChecks(ctx)
				if err != nil {
					t.Fatalf("IncrementSuccessfulChecks() error: %v", err)
				}
				if got != want {
					t.Errorf("IncrementSuccessfulChecks() = %d, want %d", got, want)
				}
			}
			if n, _ := s.SuccessfulChecks(ctx); n != 3 {
				t.Errorf("SuccessfulChecks() = %d, want 3", n)
			}

			if err := s.SetShowEnabled(ctx, false); err != nil {
				t.Fatalf("SetShowEnabled() error: %v", err)
			}
			if show, _ := s.ShowEnabled(ctx); show {
				t.Error("ShowEnabled() should be false after SetShowEnabled(false)")
			}

			if err := s.Reset(ctx); err != nil {
				t.Fatalf("Reset() error: %v", err)
			}
			if show, _ := s.ShowEnabled(ctx); !show {
				t.Error("ShowEnabled() should be true after Reset")
			}
			if n, _ := s.SuccessfulChecks(ctx); n != 0 {
				t.Errorf("SuccessfulChecks() after Reset = %d, want 0", n)
			}
		})
	}
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "preferences.db")

	first, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	if _, err := first.IncrementSuccessfulChecks(ctx); err != nil {
		t.Fatalf("IncrementSuccessfulChecks() error: %v", err)
	}
	if err := first.SetShowEnabled(ctx, false); err != nil {
		t.Fatalf("SetShowEnabled() error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	second, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer func() { _ = second.Close() }()

	if n, _ := second.SuccessfulChecks(ctx); n != 1 {
		t.Errorf("SuccessfulChecks() after reopen = %d, want 1", n)
	}
	if show, _ := second.ShowEnabled(ctx); show {
		t.Error("ShowEnabled() after reopen should stay false")
	}
	if second.Path() != path {
		t.Errorf("Path() = %q, want %q", second.Path(), path)
	}
}

func TestSQLiteStoreResetKeepsForeignKeys(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)
	if _, err := s.db.ExecContext(ctx, `INSERT INTO preferences (key, value) VALUES ('OtherLib.flag', 'x')`); err != nil {
		t.Fatalf("seed foreign key: %v", err)
	}
	if _, err := s.IncrementSuccessfulChecks(ctx); err != nil {
		t.Fatalf("IncrementSuccessfulChecks() error: %v", err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	var value string
	if err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = 'OtherLib.flag'`).Scan(&value); err != nil {
		t.Fatalf("foreign key should survive Reset: %v", err)
	}
}

func TestOpenSQLiteRejectsEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(context.Background(), "  "); err == nil {
		t.Fatal("OpenSQLite(\"\") should fail")
	}
}

func TestMemoryStoreConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.IncrementSuccessfulChecks(ctx)
		}()
	}
	wg.Wait()
	if n, _ := s.SuccessfulChecks(ctx); n != 50 {
		t.Errorf("SuccessfulChecks() = %d, want 50", n)
	}
}
