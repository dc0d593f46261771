package sqlite

// Schema DDL. Every record lives in one objects table: the handle is the
// row id, owner links a member to its container, entry_key holds the
// symbol name or dictionary key, and named marks rows whose entry_key
// follows the record's own name.
const (
	createObjects = `CREATE TABLE IF NOT EXISTS objects (
    handle INTEGER PRIMARY KEY AUTOINCREMENT,
    class TEXT NOT NULL,
    owner INTEGER NOT NULL DEFAULT 0,
    entry_key TEXT,
    named INTEGER NOT NULL DEFAULT 0,
    erased INTEGER NOT NULL DEFAULT 0,
    data TEXT NOT NULL
);`

	createOwnerIndex = `CREATE INDEX IF NOT EXISTS idx_objects_owner ON objects(owner, erased, handle);`

	createEntryKeyIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_objects_entry_key
    ON objects(owner, entry_key) WHERE entry_key IS NOT NULL AND erased = 0;`
)

// schemaStatements lists DDL in execution order.
var schemaStatements = []string{
	createObjects,
	createOwnerIndex,
	createEntryKeyIndex,
}
