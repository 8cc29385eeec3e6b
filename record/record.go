package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/fourd/layout"
)

var (
	// ErrNotFound indicates a (run, tick) pair with no snapshot.
	ErrNotFound = errors.New("record: snapshot not found")
	// ErrBadTick indicates a negative tick number.
	ErrBadTick = errors.New("record: tick must be >= 0")
	// ErrClosed indicates use of a closed Recorder.
	ErrClosed = errors.New("record: recorder closed")
)

const (
	runPrefix = "run/"
	tickInfix = "/tick/"
	tickWidth = 10
)

// Recorder is a handle on a snapshot store.
type Recorder struct {
	db *badger.DB
}

// Open opens (creating if needed) an on-disk store in dir.
func Open(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, errors.New("record: Open requires a directory; use OpenInMemory")
	}
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a store that lives only as long as the Recorder.
func OpenInMemory() (*Recorder, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Recorder, error) {
	opts.Logger = badgerLogger{}
	opts.MetricsEnabled = false
	opts.DetectConflicts = false // keys are never contended

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "record: open %q", opts.Dir)
	}
	return &Recorder{db: db}, nil
}

// Close flushes and releases the store. Closing twice is a no-op.
func (r *Recorder) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return errors.Wrap(err, "record: close")
}

// NewRun starts a run with a fresh id.
func (r *Recorder) NewRun() *Run {
	return &Run{ID: uuid.New(), rec: r}
}

// Run groups the snapshots of one layout session.
type Run struct {
	ID  uuid.UUID
	rec *Recorder
}

// Put stores snap as the state after tick. An existing entry is replaced.
func (run *Run) Put(tick int, snap layout.Snapshot) error {
	if run.rec.db == nil {
		return ErrClosed
	}
	if tick < 0 {
		return errors.Wrapf(ErrBadTick, "got %d", tick)
	}
	val, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrapf(err, "record: encode run %s tick %d", run.ID, tick)
	}
	err = run.rec.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tickKey(run.ID, tick), val)
	})
	return errors.Wrapf(err, "record: put run %s tick %d", run.ID, tick)
}

// Get loads the snapshot of runID after tick.
func (r *Recorder) Get(runID uuid.UUID, tick int) (layout.Snapshot, error) {
	var snap layout.Snapshot
	if r.db == nil {
		return snap, ErrClosed
	}
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tickKey(runID, tick))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err == badger.ErrKeyNotFound {
		return snap, errors.Wrapf(ErrNotFound, "run %s tick %d", runID, tick)
	}
	return snap, errors.Wrapf(err, "record: get run %s tick %d", runID, tick)
}

// Ticks lists the recorded ticks of runID in ascending order.
func (r *Recorder) Ticks(runID uuid.UUID) ([]int, error) {
	if r.db == nil {
		return nil, ErrClosed
	}
	prefix := ticksPrefix(runID)
	var ticks []int
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false, Prefix: prefix})
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n, err := strconv.Atoi(string(it.Item().Key()[len(prefix):]))
			if err != nil {
				return errors.Wrapf(err, "record: malformed key %q", it.Item().Key())
			}
			ticks = append(ticks, n)
		}
		return nil
	})
	return ticks, err
}

// Runs lists every run id present in the store, in key order.
func (r *Recorder) Runs() ([]uuid.UUID, error) {
	if r.db == nil {
		return nil, ErrClosed
	}
	prefix := []byte(runPrefix)
	var runs []uuid.UUID
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false, Prefix: prefix})
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); {
			key := it.Item().Key()
			rest := key[len(prefix):]
			end := bytes.IndexByte(rest, '/')
			if end < 0 {
				return errors.Errorf("record: malformed key %q", key)
			}
			id, err := uuid.ParseBytes(rest[:end])
			if err != nil {
				return errors.Wrapf(err, "record: malformed key %q", key)
			}
			runs = append(runs, id)
			// skip the remaining ticks of this run
			it.Seek(append(ticksPrefix(id), 0xFF))
		}
		return nil
	})
	return runs, err
}

func ticksPrefix(runID uuid.UUID) []byte {
	return []byte(runPrefix + runID.String() + tickInfix)
}

func tickKey(runID uuid.UUID, tick int) []byte {
	return []byte(fmt.Sprintf("%s%s%s%0*d", runPrefix, runID, tickInfix, tickWidth, tick))
}

// badgerLogger routes Badger's own logging through klog.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{})   { klog.Errorf("badger: "+format, args...) }
func (badgerLogger) Warningf(format string, args ...interface{}) { klog.Warningf("badger: "+format, args...) }
func (badgerLogger) Infof(format string, args ...interface{})    { klog.V(2).Infof("badger: "+format, args...) }
func (badgerLogger) Debugf(format string, args ...interface{})   { klog.V(4).Infof("badger: "+format, args...) }
