package profile

import (
	domain "file-manager-api/internal/domain/profile"
)

func fromDBModel(model *Profile) *domain.Profile {
	var p = &domain.Profile{
		UserID:     domain.ID(model.UserID),
		AuthUserID: model.AuthUserID,
		Email:      model.Email,
		Username:   model.Username,
		// the column carries a CHECK constraint, so no re-validation here
		Role:      domain.Role(model.Role),
		CreatedAt: model.CreatedAt,
	}

	return p
}

func fromDBModels(models Profiles) domain.Profiles {
	ps := make(domain.Profiles, len(models))
	for idx, p := range models {
		ps[idx] = fromDBModel(p)
	}

	return ps
}
