package commands

import (
	"fmt"
	"log"

	"github.com/pkg/errors"

	"hrms/backend/internal/pkg/repository/postgresql"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{

	{
		Index:       1,
		Description: "CREATE TYPE \"user_role\" AS ENUM",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('EMPLOYEE', 'ADMIN');`,
	},
	{
		Index:       2,
		Description: "Create table: department.",
		Query: `
        CREATE TABLE IF NOT EXISTS department (
            id serial primary key,
            name text not null,
            description text,
            manager_id int,
            active boolean default true,
            created_at timestamp default now(),
            created_by int,
            updated_at timestamp,
            updated_by int,
            deleted_at timestamp,
            deleted_by int
        );`,
	},
	{
		Index:       3,
		Description: "Create table: employees.",
		Query: `
        CREATE TABLE IF NOT EXISTS employees (
            id serial primary key,
            full_name text not null,
            birth_date date,
            department_id int references department(id),
            position text,
            base_salary numeric(14,2),
            start_date date,
            active boolean default true,
            created_at timestamp default now(),
            created_by int,
            updated_at timestamp,
            updated_by int,
            deleted_at timestamp,
            deleted_by int
        );`,
	},
	{
		Index:       4,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            employee_id int references employees(id),
            login text not null,
            password text not null,
            role user_role not null default 'EMPLOYEE',
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       5,
		Description: "Unique login and account per employee among live rows.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS users_login_live
            ON users (login) WHERE deleted_at IS NULL;
        CREATE UNIQUE INDEX IF NOT EXISTS users_employee_live
            ON users (employee_id) WHERE deleted_at IS NULL AND employee_id IS NOT NULL;`,
	},
	{
		Index:       6,
		Description: "Create admin account with login: admin, password: 1",
		Query: `
        INSERT INTO users(login, role, password)
        SELECT 'admin', 'ADMIN', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT login FROM users WHERE login = 'admin');
        `,
	},
	{
		Index:       7,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id serial primary key,
            employee_id int not null references employees(id),
            work_day date not null,
            come_time timestamp not null,
            standard_come_time timestamp,
            leave_time timestamp,
            late_minutes int default 0,
            working_hours numeric(6,2),
            overtime_hours numeric(6,2),
            status varchar(20) not null default 'PRESENT',
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       8,
		Description: "One live attendance row per employee and day.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS attendance_employee_day_live
            ON attendance (employee_id, work_day) WHERE deleted_at IS NULL;`,
	},
	{
		Index:       9,
		Description: "Create table: overtime_request.",
		Query: `
        CREATE TABLE IF NOT EXISTS overtime_request (
            id serial primary key,
            employee_id int not null references employees(id),
            work_day date not null,
            requested_hours numeric(6,2) not null,
            reason text,
            status varchar(20) not null default 'PENDING',
            approver_id int references users(id),
            approved_at timestamp,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       10,
		Description: "Create table: leave_request.",
		Query: `
        CREATE TABLE IF NOT EXISTS leave_request (
            id serial primary key,
            employee_id int not null references employees(id),
            start_date date not null,
            end_date date not null,
            type varchar(20) not null,
            status varchar(20) not null default 'PENDING',
            reason text,
            approver_id int references users(id),
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       11,
		Description: "Lookup indexes for period scans.",
		Query: `
        CREATE INDEX IF NOT EXISTS attendance_work_day_idx ON attendance (work_day);
        CREATE INDEX IF NOT EXISTS overtime_request_day_idx ON overtime_request (employee_id, work_day);
        CREATE INDEX IF NOT EXISTS leave_request_range_idx ON leave_request (employee_id, start_date, end_date);`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
