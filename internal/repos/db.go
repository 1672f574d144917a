package repos

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// every :memory: connection is its own database
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Ensure the demo seller exists (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Documents (users/{uid}, listings/{id}); body is a JSON object
CREATE TABLE IF NOT EXISTS documents(
  collection TEXT NOT NULL,
  id TEXT NOT NULL,
  fields TEXT NOT NULL DEFAULT '{}' CHECK (json_valid(fields)),
  created_at TEXT NOT NULL,
  updated_at TEXT,
  PRIMARY KEY(collection, id)
);
CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(collection, created_at);
CREATE INDEX IF NOT EXISTS idx_documents_user ON documents(collection, json_extract(fields, '$.userId'));
CREATE INDEX IF NOT EXISTS idx_documents_category ON documents(collection, json_extract(fields, '$.category'));

-- Sign-in credentials
CREATE TABLE IF NOT EXISTS credentials(
  uid TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_credentials_email ON credentials(LOWER(email));

-- Per-device settings
CREATE TABLE IF NOT EXISTS settings(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures the demo seller can sign in (idempotent).
func seedUsers(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM credentials WHERE uid = 'u-demo'`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	log.Println("[seed] inserting demo seller")

	h, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO credentials(uid,email,password_hash)
		VALUES('u-demo','seller@localcart.test',?)
		ON CONFLICT(uid) DO NOTHING
	`, string(h)); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		INSERT INTO documents(collection,id,fields,created_at)
		VALUES('users','u-demo',json_object('firstName','Demo','lastName','Seller','email','seller@localcart.test'),?)
		ON CONFLICT(collection,id) DO NOTHING
	`, stamp(now())); err != nil {
		return err
	}

	return tx.Commit()
}
