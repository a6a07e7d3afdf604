package model

import "time"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// 登録できる性別か
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// 生年月日の形式（YYYY-MM-DD）
const BirthDateLayout = "2006-01-02"

type User struct {
	ID           int64     `gorm:"column:user_id;primaryKey;autoIncrement"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	FirstName    string    `gorm:"type:varchar(100);not null"`
	LastName     string    `gorm:"type:varchar(100);not null"`
	Gender       Gender    `gorm:"type:varchar(10);not null"`
	BirthDate    time.Time `gorm:"type:date;not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}

// API返却用（password_hashは含めない）
type UserProfile struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Gender    Gender    `json:"gender"`
	BirthDate string    `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
}

// UserをUserProfileに変換
func (u *User) Profile() UserProfile {
	return UserProfile{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Gender:    u.Gender,
		BirthDate: u.BirthDate.Format(BirthDateLayout),
		CreatedAt: u.CreatedAt.UTC(),
	}
}
