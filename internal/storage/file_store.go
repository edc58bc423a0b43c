package storage

import (
	"context"
	json "github.com/goccy/go-json"
	"hourbot/internal/models"
	"hourbot/internal/storage/interfaces"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// fileDocument is the on-disk layout: one object keyed by identity.
type fileDocument map[string]*fileUser

type fileUser struct {
	// Total mirrors the sessions since the last reset; it is rewritten on every
	// save and never read back for figures.
	Total    float64       `json:"total"`
	Sessions []fileSession `json:"sessions"`
}

type fileSession struct {
	Hours float64 `json:"hours"`
	Date  string  `json:"date"`
	Reset bool    `json:"reset,omitempty"`
}

// FileStore keeps every identity in a single JSON document on local disk.
// Each write re-reads and rewrites the whole file.
type FileStore struct {
	mu         sync.Mutex
	path       string
	compressor interfaces.CompressorInterface
	loc        *time.Location
}

func NewFileStore(path string, compressor interfaces.CompressorInterface, loc *time.Location) *FileStore {
	return &FileStore{
		path:       path,
		compressor: compressor,
		loc:        loc,
	}
}

func (f *FileStore) Name() string {
	return "file"
}

func (f *FileStore) Append(_ context.Context, identity string, hours float64, at time.Time) error {
	return f.update("append", identity, fileSession{
		Hours: hours,
		Date:  models.FormatTimestamp(at),
	})
}

func (f *FileStore) Reset(_ context.Context, identity string, at time.Time) error {
	return f.update("reset", identity, fileSession{
		Date:  models.FormatResetStamp(at),
		Reset: true,
	})
}

func (f *FileStore) AllEntries(_ context.Context, identity string) ([]models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return nil, unavailable("read entries", err)
	}

	user, ok := doc[identity]
	if !ok {
		return []models.Entry{}, nil
	}

	entries := make([]models.Entry, 0, len(user.Sessions))
	for _, s := range user.Sessions {
		ts, _ := models.ParseTimestamp(s.Date, f.loc)
		entries = append(entries, models.Entry{
			Identity:  identity,
			Hours:     s.Hours,
			Timestamp: ts,
			Reset:     s.Reset || models.IsResetStamp(s.Date),
		})
	}
	return entries, nil
}

func (f *FileStore) Close() error {
	f.compressor.Close()
	return nil
}

func (f *FileStore) update(op, identity string, session fileSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return unavailable(op, err)
	}

	user, ok := doc[identity]
	if !ok {
		user = &fileUser{Sessions: []fileSession{}}
		doc[identity] = user
	}
	user.Sessions = append(user.Sessions, session)
	user.Total = sessionTotal(user.Sessions)

	if err = f.save(doc); err != nil {
		return unavailable(op, err)
	}
	return nil
}

func sessionTotal(sessions []fileSession) float64 {
	var total float64
	for _, s := range sessions {
		if s.Reset {
			total = 0
			continue
		}
		total += s.Hours
	}
	return total
}

func (f *FileStore) load() (fileDocument, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileDocument{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return fileDocument{}, nil
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	doc := fileDocument{}
	if err = json.Unmarshal(decompressed, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (f *FileStore) save(doc fileDocument) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}
