package models

// App is a tenant scope that owns mocks and can be made current for a user.
type App struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name" binding:"required"`
	Remark    string `json:"remark" db:"remark"`
	CreatedAt int64  `json:"createdAt" db:"created_at"`
}
