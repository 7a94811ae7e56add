package postgres

import "github.com/lib/pq"

// pqUniqueViolation mimics the driver error for a unique constraint hit.
var pqUniqueViolation = pq.Error{Code: "23505"}
