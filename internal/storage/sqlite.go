// Package storage provides SQLite implementation of the ProductStore interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/glancehq/glance/internal/models"
)

// SQLiteStore implements ProductStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		image_path TEXT NOT NULL,
		category TEXT,
		price REAL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
	`
	_, err := db.Exec(schema)
	return err
}

// Upsert inserts the product or updates the existing row with the same id.
func (s *SQLiteStore) Upsert(ctx context.Context, p *models.Product) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, name, image_path, category, price, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   image_path = excluded.image_path,
		   category = excluded.category,
		   price = excluded.price`,
		p.ID, p.Name, p.ImagePath, p.Category, p.Price, p.CreatedAt,
	)
	return err
}

// Get returns a product by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	var category sql.NullString
	var price sql.NullFloat64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, image_path, category, price, created_at
		 FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.ImagePath, &category, &price, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	p.Category = category.String
	p.Price = price.Float64
	return &p, nil
}

// Delete removes a product by id.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return err
}

// List returns products with offset and limit, newest first.
func (s *SQLiteStore) List(ctx context.Context, offset, limit int) ([]*models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, image_path, category, price, created_at
		 FROM products ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		var category sql.NullString
		var price sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.Name, &p.ImagePath, &category, &price, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Category = category.String
		p.Price = price.Float64
		products = append(products, &p)
	}
	return products, rows.Err()
}

// Count returns the total number of stored products.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
