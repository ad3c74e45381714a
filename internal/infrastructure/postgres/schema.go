package postgres

import _ "embed"

// schemaSQL crea la tabla única de documentos. Es idempotente.
//
//go:embed migrations/001_documentos.sql
var schemaSQL string
