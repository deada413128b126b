package req

type EditProfileRequest struct {
	DisplayName string `json:"displayName" validate:"required,min=2,max=32"`
	Bio         string `json:"bio" validate:"max=500"`
}
