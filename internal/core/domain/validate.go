package domain

// Validation lives here, not on the storage client: the repositories invoke
// these functions before every write.

const idHexLength = 24

// ValidID reports whether id has the shape of a stored document ID
// (24 hex characters).
func ValidID(id string) bool {
	if len(id) != idHexLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// ValidateUser checks a full user record ahead of insertion.
func ValidateUser(u *User) error {
	var fields []string
	if u.Email == "" {
		fields = append(fields, "email")
	}
	if !u.Role.Valid() {
		fields = append(fields, "role")
	}
	if u.Settings.PreferredDailyHours != nil && *u.Settings.PreferredDailyHours < 0 {
		fields = append(fields, "settings.preferredDailyHours")
	}
	if len(fields) > 0 {
		return ValidationError(fields...)
	}
	return nil
}

// ValidateUserFields checks the fields of a partial user update. Nil means
// the field is not part of the update.
func ValidateUserFields(email *string, role *Role, preferredDailyHours *float64) error {
	var fields []string
	if email != nil && *email == "" {
		fields = append(fields, "email")
	}
	if role != nil && !role.Valid() {
		fields = append(fields, "role")
	}
	if preferredDailyHours != nil && *preferredDailyHours < 0 {
		fields = append(fields, "settings.preferredDailyHours")
	}
	if len(fields) > 0 {
		return ValidationError(fields...)
	}
	return nil
}

// ValidateTimelog checks a full timelog record ahead of insertion.
func ValidateTimelog(t *Timelog) error {
	var fields []string
	if t.Date.IsZero() {
		fields = append(fields, "date")
	}
	if t.Minutes < 0 {
		fields = append(fields, "minutes")
	}
	if t.UserID == "" {
		fields = append(fields, "user")
	}
	if len(fields) > 0 {
		return ValidationError(fields...)
	}
	return nil
}

// ValidateTimelogFields checks the fields of a partial timelog update.
func ValidateTimelogFields(minutes *int, userID *string) error {
	var fields []string
	if minutes != nil && *minutes < 0 {
		fields = append(fields, "minutes")
	}
	if userID != nil && *userID == "" {
		fields = append(fields, "user")
	}
	if len(fields) > 0 {
		return ValidationError(fields...)
	}
	return nil
}
