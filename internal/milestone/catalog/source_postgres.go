package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Schema is the DDL for the milestones table read by PostgresSource. Nullable
// columns map to absent fields so validation reports them.
const Schema = `
CREATE TABLE IF NOT EXISTS milestones (
	position               SERIAL PRIMARY KEY,
	milestone_id           TEXT,
	age_min                INTEGER,
	age_typical            INTEGER,
	age_max                INTEGER,
	domain                 TEXT,
	subdomain              TEXT,
	description            TEXT,
	red_flag               BOOLEAN,
	options                JSONB,
	expected_response_type TEXT,
	assessment_method      TEXT,
	who_criteria           BOOLEAN
)`

const selectMilestones = `
SELECT milestone_id, age_min, age_typical, age_max, domain, subdomain,
       description, red_flag, options, expected_response_type,
       assessment_method, who_criteria
FROM milestones
ORDER BY position`

// PostgresSource reads milestone records from the milestones table in
// insertion (position) order.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource returns a source backed by db.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Name() string {
	return "postgres:milestones"
}

func (s *PostgresSource) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectMilestones)
	if err != nil {
		return nil, fmt.Errorf("query milestones: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			id, domain, subdomain, desc, respType, method sql.NullString
			lo, typ, hi                                   sql.NullInt64
			redFlag, who                                  sql.NullBool
			options                                       []byte
		)
		if err := rows.Scan(&id, &lo, &typ, &hi, &domain, &subdomain, &desc, &redFlag, &options, &respType, &method, &who); err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}

		r := Record{
			ID:                   nullString(id),
			Domain:               nullString(domain),
			Subdomain:            subdomain.String,
			Description:          nullString(desc),
			ExpectedResponseType: respType.String,
			AssessmentMethod:     method.String,
			WHOCriteria:          who.Bool,
		}
		r.AgeRange = &RecordAgeRange{Min: nullInt(lo), Typical: nullInt(typ), Max: nullInt(hi)}
		if redFlag.Valid {
			v := redFlag.Bool
			r.RedFlag = &v
		}
		if len(options) > 0 {
			if err := json.Unmarshal(options, &r.Options); err != nil {
				return nil, decodeViolation(s.Name(), fmt.Errorf("options of %s: %w", id.String, err))
			}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate milestones: %w", err)
	}
	return records, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
