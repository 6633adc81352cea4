package photoframe

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Record is one upload.
type Record struct {
	ID        int64
	SHA1      string
	Device    string
	URL       string
	Width     int
	Height    int
	Created   time.Time
	Thumbnail []byte
}

// History is the record of bitmaps uploaded to devices, kept in an SQLite
// database.
type History struct {
	db *sql.DB
}

// NewHistory opens, creating if necessary, the history database in file.
func NewHistory(file string) (*History, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS upload (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, device TEXT NOT NULL, url TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, created INTEGER NOT NULL, thumbnail BLOB)"); err != nil {
		db.Close()
		return nil, err
	}

	return &History{
		db: db,
	}, nil
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}

func checksum(b []byte) string {
	return fmt.Sprintf("%X", sha1.Sum(b))
}

// Add records an upload, returning its ID. Uploading an identical bitmap
// again updates the existing record rather than adding another.
func (h *History) Add(r Record) (int64, error) {
	if r.Created.IsZero() {
		r.Created = time.Now()
	}

	var id int64
	switch err := h.db.QueryRow("SELECT id FROM upload WHERE sha1 = ?", r.SHA1).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := h.db.Exec("INSERT INTO upload (sha1, device, url, width, height, created, thumbnail) VALUES (?, ?, ?, ?, ?, ?, ?)", r.SHA1, r.Device, r.URL, r.Width, r.Height, r.Created.Unix(), r.Thumbnail)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		if _, err := h.db.Exec("UPDATE upload SET device = ?, url = ?, created = ? WHERE id = ?", r.Device, r.URL, r.Created.Unix(), id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

// List returns every upload, most recent first. Thumbnails are not loaded.
func (h *History) List() ([]Record, error) {
	rows, err := h.db.Query("SELECT id, sha1, device, url, width, height, created FROM upload ORDER BY created DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var created int64
		if err := rows.Scan(&r.ID, &r.SHA1, &r.Device, &r.URL, &r.Width, &r.Height, &created); err != nil {
			return nil, err
		}
		r.Created = time.Unix(created, 0)
		records = append(records, r)
	}

	return records, rows.Err()
}

// Thumbnail returns the PNG thumbnail for the upload with the given ID, or
// nil if there is no such upload or it has no thumbnail.
func (h *History) Thumbnail(id int64) ([]byte, error) {
	var thumbnail []byte
	switch err := h.db.QueryRow("SELECT thumbnail FROM upload WHERE id = ?", id).Scan(&thumbnail); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return thumbnail, nil
	default:
		return nil, err
	}
}
