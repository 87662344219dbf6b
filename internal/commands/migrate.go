package commands

import (
	"fmt"
	"log"

	"college/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
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
        CREATE TYPE "user_role" AS ENUM ('ADMIN', 'TEACHER', 'STUDENT', 'PARENT', 'ALUMNI');`,
	},
	{
		Index:       2,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            login text not null,
            password text not null,
            role user_role not null,
            full_name text,
            phone varchar(255),
            email varchar(255),
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       3,
		Description: "Create user with login: admin, password: 1",
		Query: `
        INSERT INTO users(login, role, password, full_name)
        SELECT 'admin', 'ADMIN', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2', 'Administrator'
        WHERE NOT EXISTS (SELECT login FROM users WHERE login = 'admin');
        `,
	},
	{
		Index:       4,
		Description: "Create table: department",
		Query: `
        CREATE TABLE IF NOT EXISTS department (
            id serial primary key,
            name text not null,
            code varchar(50),
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
		Description: "Create table: subject.",
		Query: `
        CREATE TABLE IF NOT EXISTS subject (
            id serial primary key,
            name text not null,
            code varchar(50),
            department_id int references department(id),
            teacher_id int references users(id),
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       6,
		Description: "Alter table users: student fields",
		Query: `
        ALTER TABLE users
        ADD COLUMN IF NOT EXISTS department_id int references department(id),
        ADD COLUMN IF NOT EXISTS group_name varchar(100),
        ADD COLUMN IF NOT EXISTS parent_id int references users(id),
        ADD COLUMN IF NOT EXISTS graduation_year int;`,
	},
	{
		Index:       7,
		Description: "Create table: qr_session.",
		Query: `
        CREATE TABLE IF NOT EXISTS qr_session (
            id SERIAL PRIMARY KEY,
            teacher_id INT NOT NULL REFERENCES users(id),
            subject_id INT NOT NULL REFERENCES subject(id),
            token VARCHAR(64) NOT NULL UNIQUE,
            starts_at TIMESTAMP NOT NULL,
            expires_at TIMESTAMP NOT NULL,
            active BOOLEAN DEFAULT true,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       8,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id SERIAL PRIMARY KEY,
            student_id INT NOT NULL REFERENCES users(id),
            subject_id INT NOT NULL REFERENCES subject(id),
            teacher_id INT REFERENCES users(id),
            qr_session_id INT REFERENCES qr_session(id),
            attend_day DATE NOT NULL,
            status VARCHAR(10) NOT NULL DEFAULT 'PRESENT',
            marked_at TIMESTAMP,
            latitude FLOAT,
            longitude FLOAT,
            device_info VARCHAR(255),
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       9,
		Description: "Unique attendance per student, subject and day.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS attendance_student_subject_day_key
        ON attendance (student_id, subject_id, attend_day)
        WHERE deleted_at IS NULL;`,
	},
	{
		Index:       10,
		Description: "Create table: timetable.",
		Query: `
        CREATE TABLE IF NOT EXISTS timetable (
            id SERIAL PRIMARY KEY,
            subject_id INT NOT NULL REFERENCES subject(id),
            group_name VARCHAR(100),
            weekday INT NOT NULL,
            start_time TIME NOT NULL,
            end_time TIME NOT NULL,
            room VARCHAR(100),
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       11,
		Description: "Create table: notification.",
		Query: `
        CREATE TABLE IF NOT EXISTS notification (
            id SERIAL PRIMARY KEY,
            recipient_id INT NOT NULL REFERENCES users(id),
            title VARCHAR(255) NOT NULL,
            body TEXT,
            read BOOLEAN DEFAULT false,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       12,
		Description: "Create table: chat_message.",
		Query: `
        CREATE TABLE IF NOT EXISTS chat_message (
            id SERIAL PRIMARY KEY,
            sender_id INT NOT NULL REFERENCES users(id),
            recipient_id INT NOT NULL REFERENCES users(id),
            body TEXT NOT NULL,
            created_at TIMESTAMP DEFAULT NOW()
        );`,
	},
	{
		Index:       13,
		Description: "Create table: college_info.",
		Query: `
        CREATE TABLE IF NOT EXISTS college_info (
            id SERIAL PRIMARY KEY,
            college_name VARCHAR(250) NOT NULL,
            url VARCHAR(100),
            academic_year VARCHAR(20),
            contact_email VARCHAR(255),
            contact_phone VARCHAR(50),
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       14,
		Description: "Insert data for table: college_info.",
		Query: `
        INSERT INTO college_info (id, college_name, academic_year, created_by, updated_by)
        SELECT 1, 'EduFlow College', '2024-2025', 1, 1
        WHERE NOT EXISTS (SELECT id FROM college_info WHERE id = 1);`,
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
