package company

import "time"

// Profile is a singleton record; there is exactly one row and updates
// overwrite it in place.
type Profile struct {
	LogoURL   string    `json:"logoUrl"`
	NameTH    string    `json:"nameTh"`
	NameEN    string    `json:"nameEn"`
	Address   string    `json:"address"`
	TaxID     string    `json:"taxId"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	UpdatedBy string    `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}
