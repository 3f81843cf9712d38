package database

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"gorm.io/gorm"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open(Options{})
	if err == nil {
		t.Fatalf("expected error when no path supplied")
	}
}

func TestOpenAppliesPragmasWithDefaultTimeout(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cartas.db")

	database, err := Open(Options{Path: path})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := Close(database); closeErr != nil {
			t.Errorf("closing database failed: %v", closeErr)
		}
	})

	var foreignKeys int
	if queryErr := database.Raw("PRAGMA foreign_keys;").Scan(&foreignKeys).Error; queryErr != nil {
		t.Fatalf("querying foreign_keys pragma failed: %v", queryErr)
	}
	if foreignKeys != 1 {
		t.Fatalf("expected foreign keys pragma to be enabled, got %d", foreignKeys)
	}

	var journalMode string
	if queryErr := database.Raw("PRAGMA journal_mode;").Scan(&journalMode).Error; queryErr != nil {
		t.Fatalf("querying journal_mode pragma failed: %v", queryErr)
	}
	if !strings.EqualFold(strings.TrimSpace(journalMode), "wal") {
		t.Fatalf("expected journal mode WAL, got %q", journalMode)
	}

	var busyTimeout int
	if queryErr := database.Raw("PRAGMA busy_timeout;").Scan(&busyTimeout).Error; queryErr != nil {
		t.Fatalf("querying busy_timeout pragma failed: %v", queryErr)
	}

	expectedTimeout := int((5 * time.Second) / time.Millisecond)
	if busyTimeout != expectedTimeout {
		t.Fatalf("expected busy timeout %d, got %d", expectedTimeout, busyTimeout)
	}
}

func TestOpenHonoursBusyTimeoutAndConnectionLimits(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cartas_custom_test.db")
	opts := Options{
		Path:         path,
		BusyTimeout:  1500 * time.Millisecond,
		MaxOpenConns: 7,
		MaxIdleConns: 3,
		ConnMaxIdle:  2 * time.Second,
		ConnMaxLife:  5 * time.Second,
	}

	database, err := Open(opts)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := Close(database); closeErr != nil {
			t.Errorf("closing database failed: %v", closeErr)
		}
	})

	var busyTimeout int
	if queryErr := database.Raw("PRAGMA busy_timeout;").Scan(&busyTimeout).Error; queryErr != nil {
		t.Fatalf("querying busy_timeout pragma failed: %v", queryErr)
	}

	expectedTimeout := int(opts.BusyTimeout / time.Millisecond)
	if busyTimeout != expectedTimeout {
		t.Fatalf("expected busy timeout %d, got %d", expectedTimeout, busyTimeout)
	}

	sqlDB, err := SQLDB(database)
	if err != nil {
		t.Fatalf("SQLDB returned error: %v", err)
	}

	if stats := sqlDB.Stats(); stats.MaxOpenConnections != opts.MaxOpenConns {
		t.Fatalf("expected MaxOpenConns %d, got %d", opts.MaxOpenConns, stats.MaxOpenConnections)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	if _, err := Open(Options{Driver: "oracle", DSN: "x"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestOpenRequiresDSNForServerDrivers(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{DriverPostgres, DriverMySQL} {
		if _, err := Open(Options{Driver: driver}); err == nil {
			t.Fatalf("expected error when %s dsn is missing", driver)
		}
	}
}

func TestSQLDBWithNilDatabase(t *testing.T) {
	t.Parallel()

	_, err := SQLDB(nil)
	if err == nil {
		t.Fatalf("expected error when database is nil")
	}
}

func TestSQLiteDSNBeginsImmediateTransactions(t *testing.T) {
	t.Parallel()

	dsn := sqliteDSN("/tmp/cartas.db", 2*time.Second)
	for _, want := range []string{"file:/tmp/cartas.db?", "_busy_timeout=2000", "_txlock=immediate"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("expected dsn %q to contain %q", dsn, want)
		}
	}
}

func TestConcurrentReadThenWriteTransactionsSerialise(t *testing.T) {
	t.Parallel()

	database, err := Open(Options{Path: filepath.Join(t.TempDir(), "locks.db")})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := Close(database); closeErr != nil {
			t.Errorf("closing database failed: %v", closeErr)
		}
	})

	if err := database.Exec("CREATE TABLE counters (id INTEGER PRIMARY KEY, value INTEGER NOT NULL)").Error; err != nil {
		t.Fatalf("creating table failed: %v", err)
	}
	if err := database.Exec("INSERT INTO counters (id, value) VALUES (1, 0)").Error; err != nil {
		t.Fatalf("seeding counter failed: %v", err)
	}

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- database.Transaction(func(tx *gorm.DB) error {
				var value int
				if err := tx.Raw("SELECT value FROM counters WHERE id = 1").Scan(&value).Error; err != nil {
					return err
				}
				time.Sleep(5 * time.Millisecond)
				return tx.Exec("UPDATE counters SET value = ? WHERE id = 1", value+1).Error
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("transaction returned error: %v", err)
		}
	}

	var value int
	if err := database.Raw("SELECT value FROM counters WHERE id = 1").Scan(&value).Error; err != nil {
		t.Fatalf("reading counter failed: %v", err)
	}
	if value != writers {
		t.Fatalf("expected counter %d, got %d", writers, value)
	}
}

type recordingWriter struct {
	lines []string
}

func (w *recordingWriter) Printf(format string, args ...interface{}) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func TestNewLoggerIgnoresRecordNotFound(t *testing.T) {
	t.Parallel()

	writer := &recordingWriter{}
	database, err := Open(Options{
		Path:   filepath.Join(t.TempDir(), "quiet.db"),
		Logger: NewLogger(writer),
	})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := Close(database); closeErr != nil {
			t.Errorf("closing database failed: %v", closeErr)
		}
	})

	type note struct {
		ID   uint
		Body string
	}
	if err := database.AutoMigrate(&note{}); err != nil {
		t.Fatalf("AutoMigrate returned error: %v", err)
	}
	writer.lines = nil

	var missing note
	if err := database.First(&missing, 42).Error; !eris.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if len(writer.lines) != 0 {
		t.Fatalf("expected no log output for a missing row, got %v", writer.lines)
	}

	if err := database.Exec("SELECT * FROM no_such_table").Error; err == nil {
		t.Fatalf("expected error for missing table")
	}
	if len(writer.lines) == 0 {
		t.Fatalf("expected query errors to be logged")
	}
}
