package repositories

import sq "github.com/Masterminds/squirrel"

// psql builds Postgres statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
