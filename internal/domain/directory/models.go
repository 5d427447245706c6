package directory

import "time"

// Identity is the employee profile document.
type Identity struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Role               string     `json:"role"`
	Department         string     `json:"department"`
	Position           string     `json:"position"`
	ProfileImageURL    string     `json:"profileImageUrl,omitempty"`
	NationalID         string     `json:"nationalId,omitempty"`
	DateOfBirth        *time.Time `json:"dob,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	ProfileEditedTimes int        `json:"profileEditedTimes"`
	IsDeleted          bool       `json:"isDeleted"`
}

// ProfileEdit carries the fields an employee may change themselves, once.
type ProfileEdit struct {
	Name        string     `json:"name"`
	Position    string     `json:"position"`
	NationalID  string     `json:"nationalId"`
	DateOfBirth *time.Time `json:"dob"`
}
