package domain

type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FullName        string     `json:"full_name"`
	DriverLicenseNo string     `json:"driver_license_no"`
	Status          UserStatus `json:"status"`
	Roles           []UserRole `json:"roles"`
	PasswordHash    string     `json:"-"`
	CreatedOn       string     `json:"created_on"`
	UpdatedOn       string     `json:"updated_on"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// CanRent requires an active account and a driver license on file.
func (u *User) CanRent() bool {
	return u.IsActive() && u.DriverLicenseNo != ""
}

func (u *User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r == UserRoleAdmin {
			return true
		}
	}
	return false
}
