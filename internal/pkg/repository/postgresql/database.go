package postgresql

import (
	"context"
	"database/sql"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
)

// Config holds what is needed to reach the database.
type Config struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	DisableTLS bool
}

// Database wraps bun so repositories get the query builder plus the shared
// claim and validation helpers in one embed.
type Database struct {
	*bun.DB
}

// New opens a postgres connection through bun's pgdriver.
func New(cfg Config) *Database {
	opts := []pgdriver.Option{
		pgdriver.WithAddr(cfg.Host + ":" + cfg.Port),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.Name),
		pgdriver.WithInsecure(cfg.DisableTLS),
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.FromEnv("BUNDEBUG")))

	return &Database{DB: db}
}

// CheckClaims retrieves the authenticated principal from the context. When
// roles are given, the principal must hold one of them.
func (d Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, ok := ctx.Value(auth.Key).(auth.Claims)
	if !ok {
		return auth.Claims{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}

	if len(roles) > 0 && !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusUnauthorized)
	}

	return claims, nil
}

// ValidateStruct checks that the named fields of the given struct pointer
// were provided. Field names may be joined with commas.
func (d Database) ValidateStruct(s interface{}, requiredFields ...string) error {
	var fields []web.FieldError

	v := reflect.ValueOf(s).Elem()
	for _, joined := range requiredFields {
		for _, name := range strings.Split(joined, ",") {
			name = strings.TrimSpace(name)
			field := v.FieldByName(name)
			if !field.IsValid() {
				continue
			}
			if field.Kind() == reflect.Ptr && field.IsNil() {
				fields = append(fields, web.FieldError{Field: name, Error: "required"})
				continue
			}
			if field.Kind() != reflect.Ptr && field.IsZero() {
				fields = append(fields, web.FieldError{Field: name, Error: "required"})
			}
		}
	}

	if len(fields) > 0 {
		return &web.Error{
			Err:    errors.New("required fields are missing"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// DeleteRow soft deletes a single row, stamping who removed it.
func (d Database) DeleteRow(ctx context.Context, table string, id int) error {
	claims, err := d.CheckClaims(ctx)
	if err != nil {
		return err
	}

	result, err := d.NewUpdate().
		Table(table).
		Where("deleted_at IS NULL AND id = ?", id).
		Set("deleted_at = ?", time.Now()).
		Set("deleted_by = ?", claims.UserId).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrapf(err, "deleting %s", table), http.StatusBadRequest)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking deleted rows"), http.StatusInternalServerError)
	}
	if rows == 0 {
		return web.NewRequestError(errors.Errorf("%s not found", table), http.StatusNotFound)
	}

	return nil
}

// IsUniqueViolation reports whether err is the unique constraint SQLSTATE.
// Used where a uniqueness invariant must hold under concurrent writers and a
// read-then-write check would race.
func IsUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}
