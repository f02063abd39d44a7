package constvars

const (
	RolePatient = "PATIENT"
	RoleDoctor  = "DOCTOR"
	RoleAdmin   = "ADMIN"
)

const (
	PageDashboard    = "dashboard"
	PageAppointments = "appointments"
)

const (
	StoreKeyDirectory = "directory"
	StoreKeyTheme     = "theme"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

const (
	DefaultUserName       = "User"
	DefaultUserAge        = "30"
	DefaultUserBloodGroup = "O+"
)

const (
	ViewRootPatientDashboard  = "patient-dashboard"
	ViewRootDoctorDashboard   = "doctor-dashboard"
	ViewRootAdminDashboard    = "admin-dashboard"
	ViewRootRoleNotRecognized = "role-not-recognized"
	ViewMessageRoleNotFound   = "Role not recognized."
)

const (
	ScreenLoading       = "loading"
	ScreenSignedOut     = "signed_out"
	ScreenRoleSelection = "role_selection"
	ScreenDashboard     = "dashboard"
)

const (
	EventRoleAssigned        = "session.role_assigned"
	EventSignedOut           = "session.signed_out"
	EventDirectoryUserCreate = "directory.user_created"
	EventDirectoryUserUpdate = "directory.user_updated"
	EventDirectoryReplaced   = "directory.replaced"
)

const (
	IdentityMetadataRoleKey      = "role"
	IdentityMetadataFullNameKey  = "full_name"
	IdentityMetadataFirstNameKey = "first_name"
)

const (
	LockKeyRoleAssignmentFormat = "role-assignment:%s"
	SnapshotObjectPrefix        = "directory"
	SnapshotObjectExtension     = ".json"
)
