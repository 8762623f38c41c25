package repositories

const identitySelect = `SELECT u.id, u.name, u.role_id, COALESCE(r.name, '') AS role_name,
	COALESCE(u.token, '') AS token, u.stamp, u.app_id, COALESCE(a.name, '') AS app_name
	FROM users u
	LEFT JOIN roles r ON r.id = u.role_id
	LEFT JOIN apps a ON a.id = u.app_id`

const mockColumns = `id, pid, name, path, method, status, content_type, data, remark, created_at, updated_at`

// Statements maps a statement name to its SQL with :named parameters.
var Statements = map[string]string{
	"mock.findPage": `SELECT ` + mockColumns + ` FROM mocks WHERE pid = :pid ORDER BY id DESC LIMIT :limit OFFSET :offset`,
	"mock.count":    `SELECT COUNT(*) FROM mocks WHERE pid = :pid`,
	"mock.find":     `SELECT ` + mockColumns + ` FROM mocks WHERE id = :id`,
	"mock.insert": `INSERT INTO mocks (pid, name, path, method, status, content_type, data, remark, created_at, updated_at)
		VALUES (:pid, :name, :path, :method, :status, :content_type, :data, :remark, :created_at, :updated_at)`,
	"mock.update": `UPDATE mocks SET pid = :pid, name = :name, path = :path, method = :method, status = :status,
		content_type = :content_type, data = :data, remark = :remark, updated_at = :updated_at WHERE id = :id`,
	"mock.delete": `DELETE FROM mocks WHERE id = :id`,

	"user.login":       `UPDATE users SET token = :token, stamp = :stamp WHERE name = :name AND password = :password`,
	"user.findByLogin": identitySelect + ` WHERE u.name = :name AND u.password = :password`,
	"user.findByToken": identitySelect + ` WHERE u.token = :token AND u.stamp > :now`,
	"user.changeApp":   `UPDATE users SET app_id = :app_id WHERE id = :id`,
	"user.logout":      `UPDATE users SET token = NULL, stamp = 0 WHERE id = :id AND token = :token`,
	"user.list": `SELECT u.id, u.name, u.role_id, COALESCE(r.name, '') AS role_name, u.app_id, u.created_at
		FROM users u LEFT JOIN roles r ON r.id = u.role_id ORDER BY u.id`,
	"user.insert":             `INSERT INTO users (name, password, role_id, created_at) VALUES (:name, :password, :role_id, :created_at)`,
	"user.update":             `UPDATE users SET name = :name, role_id = :role_id WHERE id = :id`,
	"user.updateWithPassword": `UPDATE users SET name = :name, role_id = :role_id, password = :password WHERE id = :id`,
	"user.delete":             `DELETE FROM users WHERE id = :id`,

	"role.list": `SELECT id, name FROM roles ORDER BY id`,

	"app.list":   `SELECT id, name, remark, created_at FROM apps ORDER BY id`,
	"app.find":   `SELECT id, name, remark, created_at FROM apps WHERE id = :id`,
	"app.insert": `INSERT INTO apps (name, remark, created_at) VALUES (:name, :remark, :created_at)`,
}
