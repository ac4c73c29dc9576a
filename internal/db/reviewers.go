package db

import (
	"context"
	"strconv"
	"strings"

	"critvue/internal/models"
)

// ReviewerSearchOpts are the filters for the reviewer directory.
type ReviewerSearchOpts struct {
	Search    string // matches name or email, case-insensitive
	Tier      string
	Specialty string
	SortBy    string // "name", "tier", "created_at"
	SortOrder string // "asc" or "desc"
	Limit     int
	Offset    int
}

// sortColumns whitelists directory sort keys. Tier sorts by rank, not
// alphabetically.
var sortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"tier": `array_position(ARRAY['novice','intermediate','advanced','expert','master'], tier)`,
}

// SearchReviewers returns a page of the reviewer directory plus the total
// match count for pagination.
func (d *DB) SearchReviewers(ctx context.Context, opts ReviewerSearchOpts) ([]models.User, int, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if opts.Search != "" {
		p := arg("%" + opts.Search + "%")
		conditions = append(conditions, "(name ILIKE "+p+" OR email ILIKE "+p+")")
	}
	if opts.Tier != "" {
		conditions = append(conditions, "tier = "+arg(opts.Tier))
	}
	if opts.Specialty != "" {
		conditions = append(conditions, arg(opts.Specialty)+" = ANY(specialties)")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := d.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy, ok := sortColumns[opts.SortBy]
	if !ok {
		orderBy = "name"
	}
	direction := "ASC"
	if strings.EqualFold(opts.SortOrder, "desc") {
		direction = "DESC"
	}

	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	query := "SELECT " + userColumns + " FROM users" + where +
		" ORDER BY " + orderBy + " " + direction +
		" LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviewers []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Sub,
			&user.Email,
			&user.Name,
			&user.Picture,
			&user.Tier,
			&user.Specialties,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		reviewers = append(reviewers, user)
	}
	return reviewers, total, rows.Err()
}
