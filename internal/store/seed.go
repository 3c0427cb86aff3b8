package store

import "github.com/vetlife/vetlife-be/internal/models"

// Built-in dataset used when a collection has never been persisted. The
// accounts below are demo fixtures; the clear-text passwords are intentional.

func defaultUsers() []models.User {
	return []models.User{
		{
			ID:        "1",
			Username:  "cliente1",
			Password:  "123456",
			Role:      models.RoleClient,
			Name:      "Juan Pérez",
			Email:     "juan@email.com",
			Phone:     "3001234567",
			BirthDate: "1990-05-15",
		},
		{
			ID:       "2",
			Username: "admin",
			Password: "admin123",
			Role:     models.RoleAdmin,
			Name:     "Dr. María García",
			Email:    "admin@vetlife.com",
		},
	}
}

func defaultPets() []models.Pet {
	return []models.Pet{
		{
			ID:      "1",
			OwnerID: "1",
			Name:    "Max",
			Species: "Perro",
			Breed:   "Golden Retriever",
			Age:     3,
			Weight:  25,
			Color:   "Dorado",
			Notes:   "Muy juguetón y amigable",
		},
	}
}

func defaultVeterinarians() []models.Veterinarian {
	return []models.Veterinarian{
		{
			ID:              "1",
			Name:            "Dr. Carlos Rodríguez",
			Specialty:       "Cirugía",
			YearsExperience: 12,
			Phone:           "3109876543",
			Email:           "carlos@vetlife.com",
			Schedule:        "Lun-Vie 8:00-16:00",
			Description:     "Especialista en cirugía de tejidos blandos y ortopedia.",
		},
		{
			ID:              "2",
			Name:            "Dra. Ana Martínez",
			Specialty:       "Dermatología",
			YearsExperience: 8,
			Phone:           "3156789012",
			Email:           "ana@vetlife.com",
			Schedule:        "Mar-Sáb 9:00-17:00",
			Description:     "Experta en enfermedades de la piel y alergias.",
		},
		{
			ID:              "3",
			Name:            "Dr. Luis Gómez",
			Specialty:       "Medicina Interna",
			YearsExperience: 15,
			Phone:           "3012345678",
			Email:           "luis@vetlife.com",
			Schedule:        "Lun-Vie 10:00-18:00",
			Description:     "Atención integral de pacientes crónicos y geriátricos.",
		},
	}
}
