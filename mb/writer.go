// Package mb provides import and export of tile trees in MBTiles format.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package mb

import (
	"database/sql"
	"log/slog"

	"github.com/ArthurLER/mod-tile/tile"
)

// Writer bulk-exports tiles into a new MBTiles file. All inserts run in a
// single transaction committed by Finalize.
type Writer struct {
	db     *sql.DB
	tx     *sql.Tx
	stmt   *sql.Stmt
	logger *slog.Logger
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new Writer targeting filePath, which must not be an
// existing MBTiles file: the schema is created from scratch.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}

	cleanup := func(err error) (*Writer, error) {
		db.Close()
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE tiles (
			zoom_level INTEGER,
			tile_column INTEGER,
			tile_row INTEGER,
			tile_data BLOB
		);
	`)
	if err != nil {
		return cleanup(err)
	}

	for k, v := range config.Metadata {
		if _, err := db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v); err != nil {
			return cleanup(err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return cleanup(err)
	}

	stmt, err := tx.Prepare("INSERT INTO tiles (zoom_level, tile_column, tile_row, tile_data) VALUES (?, ?, ?, ?)")
	if err != nil {
		return cleanup(err)
	}

	return &Writer{db: db, tx: tx, stmt: stmt, logger: config.Logger}, nil
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	x, y, z := tileID.X, tileID.Y, tileID.Z
	y = (1 << z) - 1 - y // XYZ -> TMS

	_, err := w.stmt.Exec(z, x, y, tileData)
	return err
}

// Finalize commits the pending inserts and builds the tile index.
// It must be called before Close for the file to be usable.
func (w *Writer) Finalize() error {
	w.logger.Debug("mbtiles: commit")
	if err := w.stmt.Close(); err != nil {
		return err
	}
	w.stmt = nil
	if err := w.tx.Commit(); err != nil {
		return err
	}
	w.tx = nil

	w.logger.Debug("mbtiles: creating index")
	_, err := w.db.Exec("CREATE UNIQUE INDEX tile_index ON tiles (zoom_level, tile_column, tile_row)")
	return err
}

func (w *Writer) Close() error {
	if w.tx != nil {
		w.tx.Rollback()
	}
	return w.db.Close()
}
