package store

const schema = `
CREATE TABLE IF NOT EXISTS packages (
    rank INTEGER PRIMARY KEY,
    project TEXT NOT NULL UNIQUE,
    download_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
