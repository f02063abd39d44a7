package models

type ThemePreference struct {
	Dark      bool   `json:"dark"`
	Theme     string `json:"theme"`
	RootClass string `json:"rootClass"`
}
