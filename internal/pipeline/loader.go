package pipeline

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"fomezero/internal"
	"fomezero/internal/config"
	"fomezero/internal/storage"
)

const (
	metaLastChecksum = "last_checksum"
	keepDatasets     = 5
)

// Loader memoizes the cleaned dataset by the SHA-256 of the raw file. The
// returned dataset is shared and must not be modified.
type Loader struct {
	db  *storage.DB
	cfg config.Config

	mu       sync.Mutex
	current  *internal.Dataset
	loadedAt time.Time
}

// NewLoader returns a Loader. db may be nil, in which case only the
// in-process memo is used.
func NewLoader(db *storage.DB, cfg config.Config) *Loader {
	return &Loader{db: db, cfg: cfg}
}

func (l *Loader) Load() (*internal.Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	data, err := os.ReadFile(l.cfg.RawDataPath)
	if err != nil {
		return nil, err
	}
	sum := checksum(data)

	if l.cfg.CacheEnabled {
		if l.current != nil && l.current.Checksum == sum && fileExists(l.cfg.ProcessedDataPath) {
			return l.current, nil
		}
		if l.db != nil {
			stored, err := l.db.GetDataset(sum)
			if err != nil {
				return nil, err
			}
			if stored != nil {
				if err := WriteCSVFile(l.cfg.ProcessedDataPath, stored.Records, ','); err != nil {
					return nil, err
				}
				l.setCurrent(stored)
				return stored, nil
			}
		}
	}

	res, err := CleanReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", l.cfg.RawDataPath, err)
	}
	cleanMs := float64(time.Since(start).Milliseconds())

	if err := WriteCSVFile(l.cfg.ProcessedDataPath, res.Records, ','); err != nil {
		return nil, err
	}

	ds := &internal.Dataset{
		Checksum: sum,
		Source:   l.cfg.RawDataPath,
		Stats:    res.Stats,
		Records:  res.Records,
	}

	if l.db != nil {
		if err := l.persist(ds, cleanMs, start); err != nil {
			log.Printf("loader: persist dataset %s: %v", shortSum(sum), err)
		}
	}

	log.Printf("loader: cleaned %s checksum=%s kept=%d dropped_missing=%d dropped_duplicates=%d",
		l.cfg.RawDataPath, shortSum(sum), res.Stats.Kept, res.Stats.DroppedMissing, res.Stats.DroppedDuplicates)
	l.setCurrent(ds)
	return ds, nil
}

// Invalidate forgets the in-process memo; the next Load re-checks storage
// and the raw file.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = nil
}

// Current returns the last loaded dataset without touching the raw file.
func (l *Loader) Current() (*internal.Dataset, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, l.loadedAt
}

func (l *Loader) setCurrent(ds *internal.Dataset) {
	l.current = ds
	l.loadedAt = time.Now()
}

func (l *Loader) persist(ds *internal.Dataset, cleanMs float64, start time.Time) error {
	if err := l.db.SaveDataset(*ds); err != nil {
		return err
	}
	if err := l.db.PruneDatasets(keepDatasets); err != nil {
		return err
	}
	if err := l.db.SetMetadata(metaLastChecksum, ds.Checksum); err != nil {
		return err
	}
	timings := map[string]float64{"cleanMs": cleanMs, "totalMs": float64(time.Since(start).Milliseconds())}
	counts := map[string]int{
		"read":              ds.Stats.Read,
		"droppedMissing":    ds.Stats.DroppedMissing,
		"droppedDuplicates": ds.Stats.DroppedDuplicates,
		"kept":              ds.Stats.Kept,
	}
	return l.db.InsertRun(uuid.NewString(), ds.Checksum, timings, counts)
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func shortSum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
