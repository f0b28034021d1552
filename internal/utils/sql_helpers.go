package utils

import (
	"database/sql"
)

// NullStringToString convertit sql.NullString en string
func NullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// StringToNullString convertit une chaîne vide en NULL
func StringToNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
