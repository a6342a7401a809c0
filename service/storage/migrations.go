package storage

const schemaV1 = `
CREATE TABLE IF NOT EXISTS imports (
    import_id       INTEGER PRIMARY KEY AUTOINCREMENT,
    import_uuid     TEXT UNIQUE NOT NULL,
    corpus_dir      TEXT NOT NULL,
    imported_at     DATETIME DEFAULT CURRENT_TIMESTAMP,
    release_count   INTEGER DEFAULT 0,
    commit_count    INTEGER DEFAULT 0,
    error_count     INTEGER DEFAULT 0,
    warning_count   INTEGER DEFAULT 0,
    cli_version     TEXT,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_imports_timestamp
    ON imports(imported_at DESC);

CREATE TABLE IF NOT EXISTS releases (
    version          TEXT PRIMARY KEY,
    release_date     TEXT NOT NULL,
    codename         TEXT,
    description      TEXT,
    commit_count     INTEGER DEFAULT 0,
    files_count      INTEGER DEFAULT 0,
    insertions_count INTEGER DEFAULT 0,
    deletions_count  INTEGER DEFAULT 0,
    breaking_count   INTEGER DEFAULT 0,
    author_count     INTEGER DEFAULT 0,
    first_imported   DATETIME NOT NULL,
    last_imported    DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_releases_date ON releases(release_date DESC);

CREATE TABLE IF NOT EXISTS commits (
    sha              TEXT PRIMARY KEY,
    version          TEXT NOT NULL,
    commit_date      TEXT NOT NULL,
    description      TEXT NOT NULL,
    pr_number        INTEGER,
    scopes           TEXT,
    commit_type      TEXT NOT NULL,
    breaking_change  INTEGER DEFAULT 0,
    author           TEXT,
    files_count      INTEGER DEFAULT 0,
    insertions_count INTEGER DEFAULT 0,
    deletions_count  INTEGER DEFAULT 0,
    FOREIGN KEY (version) REFERENCES releases(version) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_commits_version ON commits(version);
CREATE INDEX IF NOT EXISTS idx_commits_author ON commits(author);
CREATE INDEX IF NOT EXISTS idx_commits_pr ON commits(pr_number);

CREATE TABLE IF NOT EXISTS issues (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    import_id   INTEGER NOT NULL,
    severity    TEXT NOT NULL,
    rule        TEXT NOT NULL,
    version     TEXT,
    ref         TEXT,
    message     TEXT NOT NULL,
    created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (import_id) REFERENCES imports(import_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_issues_import ON issues(import_id);
CREATE INDEX IF NOT EXISTS idx_issues_rule ON issues(rule);
`
