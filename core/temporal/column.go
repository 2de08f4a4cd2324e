package temporal

import (
	"strings"

	"consolidator/core/keys"
)

// Role is the temporal role of a column.
type Role int

const (
	RolePlain Role = iota
	RoleDate
	RoleTime
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleDate:
		return "date"
	case RoleTime:
		return "time"
	default:
		return "plain"
	}
}

// Display format codes written for temporal columns.
const (
	DateFormat = "dd/mm/yyyy"
	TimeFormat = "hh:mm:ss"
)

// Classify returns the role of a column from its header text.
func Classify(header string) Role {
	h := keys.FoldHeader(header)
	if strings.Contains(h, "fecha") && !strings.Contains(h, "hora") {
		return RoleDate
	}
	if len(h) >= 2 && h[0] == 't' && strings.ContainsRune("cat", rune(h[1])) {
		return RoleTime
	}
	return RolePlain
}

// Column converts the cells of one classified column.
type Column interface {
	Role() Role
	// FormatCode is the display format written for the column, "" for General.
	FormatCode() string
	// Normalize converts v. It returns v unchanged and false when v cannot be
	// converted without guessing.
	Normalize(v any) (any, bool)
}

// ColumnFor returns the column implementation for header.
func ColumnFor(header string) Column {
	switch Classify(header) {
	case RoleDate:
		return dateColumn{}
	case RoleTime:
		return timeColumn{}
	default:
		return plainColumn{}
	}
}

type dateColumn struct{}

func (dateColumn) Role() Role         { return RoleDate }
func (dateColumn) FormatCode() string { return DateFormat }

func (dateColumn) Normalize(v any) (any, bool) {
	if t, ok := ParseDate(v); ok {
		return t, true
	}
	return v, false
}

type timeColumn struct{}

func (timeColumn) Role() Role         { return RoleTime }
func (timeColumn) FormatCode() string { return TimeFormat }

func (timeColumn) Normalize(v any) (any, bool) {
	if t, ok := ParseTime(v); ok {
		return t, true
	}
	return v, false
}

type plainColumn struct{}

func (plainColumn) Role() Role                  { return RolePlain }
func (plainColumn) FormatCode() string          { return "" }
func (plainColumn) Normalize(v any) (any, bool) { return v, true }
