package db

import (
	"fmt"
	"strings"
)

// Partial updates are expressed as a closed set of optional slots per
// entity. A nil slot is left untouched; each non-nil slot maps to
// exactly one storage column. There is no dynamic name translation:
// the set of updatable columns is fixed here.

type UserUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
}

func (u UserUpdate) fields() []fieldUpdate {
	var fields []fieldUpdate
	if u.Username != nil {
		fields = append(fields, fieldUpdate{"username", *u.Username})
	}
	if u.Email != nil {
		fields = append(fields, fieldUpdate{"email", *u.Email})
	}
	if u.FirstName != nil {
		fields = append(fields, fieldUpdate{"first_name", *u.FirstName})
	}
	if u.LastName != nil {
		fields = append(fields, fieldUpdate{"last_name", *u.LastName})
	}
	return fields
}

type PostUpdate struct {
	Title     *string
	Content   *string
	Published *bool
}

func (u PostUpdate) fields() []fieldUpdate {
	var fields []fieldUpdate
	if u.Title != nil {
		fields = append(fields, fieldUpdate{"title", *u.Title})
	}
	if u.Content != nil {
		fields = append(fields, fieldUpdate{"content", *u.Content})
	}
	if u.Published != nil {
		fields = append(fields, fieldUpdate{"published", *u.Published})
	}
	return fields
}

type fieldUpdate struct {
	column string
	value  any
}

// buildUpdate assembles an UPDATE ... RETURNING statement from the
// supplied slots. Zero slots is a validation error, not an empty
// write.
func buildUpdate(table string, id int64, fields []fieldUpdate, returning string) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, ErrNoUpdateFields
	}
	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	args = append(args, id)
	for _, f := range fields {
		args = append(args, f.value)
		sets = append(sets, fmt.Sprintf("%s = $%d", f.column, len(args)))
	}
	sets = append(sets, "updated_at = now()")
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $1 RETURNING %s",
		table, strings.Join(sets, ", "), returning,
	)
	return query, args, nil
}

// prefixColumns qualifies a comma-separated column list with a table
// alias for use in join queries.
func prefixColumns(columns, alias string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
