package postgres

const requesterColumnsDDL = `
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            phone TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            company_name TEXT NOT NULL DEFAULT '',
            date_of_company TIMESTAMPTZ,`

const orderMetaColumnsDDL = `
            attached_file JSONB NOT NULL DEFAULT '{"url":"","publicId":null}',
            status_order TEXT NOT NULL DEFAULT 'pending',
            status_user TEXT NOT NULL,
            user_id TEXT CONSTRAINT fk_orders_user REFERENCES users(id) ON DELETE SET NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()`

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            phone TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            company_name TEXT NOT NULL DEFAULT '',
            date_of_company TIMESTAMPTZ,
            role TEXT NOT NULL,
            profile JSONB NOT NULL DEFAULT '{}',
            otp_hash TEXT,
            otp_reference TEXT,
            otp_expires_at TIMESTAMPTZ,
            otp_attempts INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CONSTRAINT uq_users_phone UNIQUE (phone),
            CONSTRAINT uq_users_otp_reference UNIQUE (otp_reference)
        )`,
	`CREATE TABLE IF NOT EXISTS material_orders (
            id TEXT PRIMARY KEY,` + requesterColumnsDDL + `
            materials TEXT[] NOT NULL DEFAULT '{}',
            project_name TEXT NOT NULL DEFAULT '',
            note_for_quantity TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL DEFAULT '',` + orderMetaColumnsDDL + `
        )`,
	`CREATE TABLE IF NOT EXISTS finance_orders (
            id TEXT PRIMARY KEY,` + requesterColumnsDDL + `
            project_name TEXT NOT NULL,
            last_year_revenue TEXT NOT NULL,
            required_amount TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',` + orderMetaColumnsDDL + `
        )`,
	`CREATE TABLE IF NOT EXISTS qualification_orders (
            id TEXT PRIMARY KEY,` + requesterColumnsDDL + `
            last_year_revenue TEXT NOT NULL,
            required_amount TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',` + orderMetaColumnsDDL + `
        )`,
	`CREATE TABLE IF NOT EXISTS recourse_orders (
            id TEXT PRIMARY KEY,
            recourse_name TEXT NOT NULL,
            recourse_phone TEXT NOT NULL,
            client_name TEXT NOT NULL,
            client_phone TEXT NOT NULL,
            serial_number BIGINT NOT NULL,
            project_name TEXT NOT NULL,
            date_of_project TIMESTAMPTZ NOT NULL,
            bill_file JSONB NOT NULL DEFAULT '{"url":"","publicId":null}',
            materials TEXT[] NOT NULL DEFAULT '{}',
            payment_check TEXT NOT NULL DEFAULT '',
            advance TEXT NOT NULL DEFAULT '',
            upon_delivery TEXT NOT NULL DEFAULT '',
            after_delivery TEXT NOT NULL DEFAULT '',
            country_name TEXT NOT NULL DEFAULT '',
            longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
            latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
            street TEXT NOT NULL DEFAULT '',
            country TEXT NOT NULL DEFAULT '',
            post_address TEXT NOT NULL DEFAULT '',` + orderMetaColumnsDDL + `,
            CONSTRAINT uq_recourse_serial_number UNIQUE (serial_number)
        )`,
	`CREATE TABLE IF NOT EXISTS class_fathers (
            id TEXT PRIMARY KEY,
            father_name TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CONSTRAINT uq_class_fathers_name UNIQUE (father_name)
        )`,
	`CREATE TABLE IF NOT EXISTS class_sons (
            id TEXT PRIMARY KEY,
            father_id TEXT NOT NULL,
            son_name TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CONSTRAINT fk_class_sons_father FOREIGN KEY (father_id) REFERENCES class_fathers(id) ON DELETE RESTRICT,
            CONSTRAINT uq_class_sons_name UNIQUE (father_id, son_name)
        )`,
	`CREATE TABLE IF NOT EXISTS materials (
            id TEXT PRIMARY KEY,
            material_name TEXT NOT NULL,
            serial_number TEXT NOT NULL,
            classification_id TEXT NOT NULL,
            classification_son_id TEXT,
            attached_file JSONB NOT NULL DEFAULT '{"url":"","publicId":null}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CONSTRAINT uq_materials_name UNIQUE (material_name),
            CONSTRAINT uq_materials_serial UNIQUE (serial_number),
            CONSTRAINT fk_materials_father FOREIGN KEY (classification_id) REFERENCES class_fathers(id) ON DELETE RESTRICT,
            CONSTRAINT fk_materials_son FOREIGN KEY (classification_son_id) REFERENCES class_sons(id) ON DELETE RESTRICT
        )`,
	`CREATE TABLE IF NOT EXISTS notifications (
            id TEXT PRIMARY KEY,
            text TEXT NOT NULL,
            shown BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	`CREATE TABLE IF NOT EXISTS visits (
            id TEXT PRIMARY KEY,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	`CREATE TABLE IF NOT EXISTS outbox_messages (
            id BIGINT PRIMARY KEY,
            kind TEXT NOT NULL,
            payload JSONB NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            attempts INTEGER NOT NULL DEFAULT 0,
            last_error TEXT NOT NULL DEFAULT '',
            available_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS otp_attempts INTEGER NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_users_created ON users(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_material_orders_created ON material_orders(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_finance_orders_created ON finance_orders(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_qualification_orders_created ON qualification_orders(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_recourse_orders_created ON recourse_orders(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_recourse_orders_location ON recourse_orders USING GIST (point(longitude, latitude))`,
	`CREATE INDEX IF NOT EXISTS idx_class_fathers_created ON class_fathers(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_class_sons_created ON class_sons(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_materials_created ON materials(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_created ON visits(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_due ON outbox_messages(status, available_at)`,
}
