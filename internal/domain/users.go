package domain

import (
	"time"
)

// User levels. A customer can only read and mutate its own orders,
// admin and super see everything.
const (
	UserLevelSuper    = "super"
	UserLevelAdmin    = "admin"
	UserLevelCustomer = "customer"
)

type User struct {
	ID        int64     `json:"id,string" form:"id"`
	Realname  string    `json:"realname" form:"realname"`
	Mobile    string    `json:"mobile" form:"mobile"`
	Email     string    `gorm:"index" json:"email" form:"email"`
	Username  string    `gorm:"uniqueIndex" json:"username" form:"username"`
	Password  string    `json:"-" form:"password"`
	Level     string    `json:"level" form:"level"`
	Status    string    `json:"status" form:"status"`
	Remark    string    `json:"remark" form:"remark"`
	LastLogin time.Time `json:"last_login" form:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "sys_user"
}

// IsElevated reports whether the user may act across customers.
func (u User) IsElevated() bool {
	return u.Level == UserLevelSuper || u.Level == UserLevelAdmin
}
