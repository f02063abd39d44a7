package constvars

const (
	GetSessionSuccessMessage       = "successfully resolved session"
	SelectRoleSuccessMessage       = "successfully processed role selection"
	SignOutSuccessMessage          = "successfully signed out"
	UpdateProfileSuccessMessage    = "successfully updated profile"
	ListUsersSuccessMessage        = "successfully retrieved users"
	ReplaceDirectorySuccessMessage = "successfully replaced user directory"
	GetThemeSuccessMessage         = "successfully retrieved theme preference"
	ToggleThemeSuccessMessage      = "successfully toggled theme preference"
	HealthySuccessMessage          = "service is healthy"
)
