package contacts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxDB is the subset of pgxpool.Pool used by the repository.
type pgxDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores contacts in the relational database.
type PostgresRepository struct {
	db pgxDB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(db pgxDB) *PostgresRepository {
	if db == nil {
		panic("contacts: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

const contactColumns = `id, personal_name, company_name, phone_number, email, services, more_details, created_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, draft Draft) (*Contact, error) {
	id := uuid.New()
	services := draft.Services
	if services == nil {
		services = []string{}
	}

	query := `
		INSERT INTO contacts (id, personal_name, company_name, phone_number, email, services, more_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	contact := newContact(id.String(), draft, time.Time{})
	if err := r.db.QueryRow(ctx, query,
		id,
		draft.PersonalName,
		draft.CompanyName,
		draft.PhoneNumber,
		draft.Email,
		services,
		draft.MoreDetails,
	).Scan(&contact.CreatedAt); err != nil {
		return nil, fmt.Errorf("contacts: insert failed: %w", err)
	}
	return contact, nil
}

// Get fetches a single contact.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Contact, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrContactNotFound
	}
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	contact, err := scanContact(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("contacts: select failed: %w", err)
	}
	return contact, nil
}

// List returns every contact, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("contacts: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("contacts: scan failed: %w", err)
		}
		out = append(out, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contacts: list failed: %w", err)
	}
	if out == nil {
		out = []*Contact{}
	}
	return out, nil
}

// Delete removes a contact permanently.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrContactNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("contacts: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func scanContact(row pgx.Row) (*Contact, error) {
	var c Contact
	if err := row.Scan(
		&c.ID,
		&c.PersonalName,
		&c.CompanyName,
		&c.PhoneNumber,
		&c.Email,
		&c.Services,
		&c.MoreDetails,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	if c.Services == nil {
		c.Services = []string{}
	}
	return &c, nil
}
