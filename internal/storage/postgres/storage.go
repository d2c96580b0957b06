package postgres

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	DB *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	email         text NOT NULL UNIQUE,
	password      text NOT NULL DEFAULT '',
	refresh_token text NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS markers (
	id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	lat         double precision NOT NULL,
	lng         double precision NOT NULL,
	image_url   text NOT NULL DEFAULT '',
	date        text NOT NULL DEFAULT '',
	time        text NOT NULL DEFAULT '',
	description text NOT NULL DEFAULT '',
	created_at  timestamptz NOT NULL DEFAULT now()
);
`

func InitDB() *Storage {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"))

	dbpool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		panic(err)
	}

	// Применяем схему при старте
	if _, err := dbpool.Exec(context.Background(), schema); err != nil {
		panic(err)
	}

	return &Storage{DB: dbpool}
}
