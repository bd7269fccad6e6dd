package dto

// CredentialReq is the credential pair every authenticated request carries.
type CredentialReq struct {
	Email    string `json:"email" form:"email" validate:"required,max=255"`
	Password string `json:"password" form:"password" validate:"required,max=16"`
}

type RegisterReq struct {
	FullName string `json:"full_name" validate:"max=128"`
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=16"`
}

type RegisterResp struct {
	UserID string `json:"user_id"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=16"`
}

type UserSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
}

type LoginResp struct {
	User UserSummary `json:"user"`
}

// LoginFailResp accompanies Unauthorized and RateLimited login responses.
type LoginFailResp struct {
	RemainingAttempts int  `json:"remaining_attempts"`
	RateLimited       bool `json:"rate_limited"`
}

type CheckAttemptsReq struct {
	Email string `json:"email" validate:"required,max=255"`
}

type CheckAttemptsResp struct {
	RemainingAttempts int  `json:"remaining_attempts"`
	IsRateLimited     bool `json:"is_rate_limited"`
	MaxAttemptsPerDay int  `json:"max_attempts_per_day"`
}

type MigrateReq struct {
	Pin      string `json:"pin" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=16"`
	FullName string `json:"full_name" validate:"required,max=128"`
}

type MigrateResp struct {
	UserID string `json:"user_id"`
}

type MigrationAvailableResp struct {
	MigrationAvailable bool   `json:"migration_available"`
	OldUsersCount      int64  `json:"old_users_count"`
	Message            string `json:"message"`
}
