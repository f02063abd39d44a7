package models

type ViewDescriptor struct {
	Root       string    `json:"root"`
	Page       string    `json:"page"`
	Recognized bool      `json:"recognized"`
	Message    string    `json:"message,omitempty"`
	Props      ViewProps `json:"props"`
}

// ViewProps lists which shared collections a root view is handed.
type ViewProps struct {
	ReceivesAllUsers    bool `json:"receivesAllUsers"`
	CanReplaceDirectory bool `json:"canReplaceDirectory"`
}

type Screen struct {
	Kind     string          `json:"kind"`
	Session  Session         `json:"session"`
	View     *ViewDescriptor `json:"view,omitempty"`
	User     *User           `json:"user,omitempty"`
	AllUsers []User          `json:"allUsers,omitempty"`
}
