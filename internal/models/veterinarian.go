package models

// Veterinarian is a staff profile shown on the landing page and managed from
// the admin dashboard. Its lifecycle is independent of users and pets.
type Veterinarian struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Specialty       string `json:"specialty"`
	YearsExperience int    `json:"yearsExperience"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Schedule        string `json:"schedule"`
	Photo           string `json:"photo,omitempty"`
	Description     string `json:"description"`
}

// VeterinarianPatch lists the veterinarian fields that may be updated. Nil
// fields keep their current value.
type VeterinarianPatch struct {
	Name            *string `json:"name,omitempty"`
	Specialty       *string `json:"specialty,omitempty"`
	YearsExperience *int    `json:"yearsExperience,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	Schedule        *string `json:"schedule,omitempty"`
	Photo           *string `json:"photo,omitempty"`
	Description     *string `json:"description,omitempty"`
}

// Apply merges the non-nil patch fields into the veterinarian.
func (p VeterinarianPatch) Apply(v *Veterinarian) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Specialty != nil {
		v.Specialty = *p.Specialty
	}
	if p.YearsExperience != nil {
		v.YearsExperience = *p.YearsExperience
	}
	if p.Phone != nil {
		v.Phone = *p.Phone
	}
	if p.Email != nil {
		v.Email = *p.Email
	}
	if p.Schedule != nil {
		v.Schedule = *p.Schedule
	}
	if p.Photo != nil {
		v.Photo = *p.Photo
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
}
