package database

import (
	"database/sql"
	"fmt"
)

// migrateOCRCache создает схему кэша распознанных текстов
func migrateOCRCache(conn *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS ocr_texts (
			image_link      TEXT PRIMARY KEY,
			recognized_text TEXT NOT NULL,
			created_at      TIMESTAMP NOT NULL
		)
	`
	if _, err := conn.Exec(query); err != nil {
		return fmt.Errorf("create ocr_texts table: %w", err)
	}
	return nil
}
