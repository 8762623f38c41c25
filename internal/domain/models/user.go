package models

// User is a managed account. Password is accepted on input and never listed.
type User struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name" binding:"required"`
	Password  string `json:"password,omitempty" db:"password"`
	RoleID    int64  `json:"roleId" db:"role_id"`
	RoleName  string `json:"roleName,omitempty" db:"role_name"`
	AppID     *int64 `json:"appId,omitempty" db:"app_id"`
	CreatedAt int64  `json:"createdAt" db:"created_at"`
}

// Public strips write-only fields before the user is echoed back.
func (u User) Public() User {
	u.Password = ""
	return u
}

// Credentials is the login payload.
type Credentials struct {
	Name     string `json:"name" db:"name"`
	Password string `json:"password" db:"password"`
}

// Identity is the resolved caller: the user row joined with its role and
// active app, plus the session token issued at login.
type Identity struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	RoleID   int64  `json:"roleId" db:"role_id"`
	RoleName string `json:"roleName,omitempty" db:"role_name"`
	Token    string `json:"token" db:"token"`
	Stamp    int64  `json:"stamp" db:"stamp"`
	AppID    *int64 `json:"appId,omitempty" db:"app_id"`
	AppName  string `json:"appName,omitempty" db:"app_name"`
}

// CurrentApp returns the active app id, 0 when none is selected.
func (i Identity) CurrentApp() int64 {
	if i.AppID == nil {
		return 0
	}
	return *i.AppID
}

// Role is a read-only role row.
type Role struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
