package models

// Pet belongs to exactly one client, referenced by OwnerID. Deleting the
// owner deletes their pets.
type Pet struct {
	ID      string  `json:"id"`
	OwnerID string  `json:"ownerId"`
	Name    string  `json:"name"`
	Species string  `json:"species"`
	Breed   string  `json:"breed"`
	Age     int     `json:"age"`
	Weight  float64 `json:"weight"`
	Color   string  `json:"color"`
	Notes   string  `json:"notes"`
}

// PetPatch lists the pet fields that may be updated. Nil fields keep their
// current value. Ownership is not transferable through a patch.
type PetPatch struct {
	Name    *string  `json:"name,omitempty"`
	Species *string  `json:"species,omitempty"`
	Breed   *string  `json:"breed,omitempty"`
	Age     *int     `json:"age,omitempty"`
	Weight  *float64 `json:"weight,omitempty"`
	Color   *string  `json:"color,omitempty"`
	Notes   *string  `json:"notes,omitempty"`
}

// Apply merges the non-nil patch fields into the pet.
func (p PetPatch) Apply(pet *Pet) {
	if p.Name != nil {
		pet.Name = *p.Name
	}
	if p.Species != nil {
		pet.Species = *p.Species
	}
	if p.Breed != nil {
		pet.Breed = *p.Breed
	}
	if p.Age != nil {
		pet.Age = *p.Age
	}
	if p.Weight != nil {
		pet.Weight = *p.Weight
	}
	if p.Color != nil {
		pet.Color = *p.Color
	}
	if p.Notes != nil {
		pet.Notes = *p.Notes
	}
}
