package sendrecommendation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrRecipientNotFound = errors.New("recipient not found")

// PostgresRecipients reads the match_recipients table.
type PostgresRecipients struct {
	db *sql.DB
}

func NewPostgresRecipients(db *sql.DB) *PostgresRecipients {
	return &PostgresRecipients{db: db}
}

func (p *PostgresRecipients) Recipient(ctx context.Context, id string) (*Recipient, error) {
	var (
		r            = Recipient{ID: id}
		email, phone sql.NullString
	)
	err := p.db.QueryRowContext(ctx,
		`SELECT name, email, phone FROM match_recipients WHERE id = $1`, id).
		Scan(&r.Name, &email, &phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRecipientNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	r.Email = email.String
	r.Phone = phone.String
	return &r, nil
}
