package dto

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=7"`
}

type ActivateRequest struct {
	ActivationCode string `form:"activation_code" binding:"required,min=20"`
}

type ForgetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest carries the replacement password for a user who came
// in through the reset-code flow.
type ResetPasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required,min=7"`
	ConfirmPassword string `json:"confirm_password" binding:"required,min=7"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" binding:"required,min=7"`
	NewPassword        string `json:"new_password" binding:"required,min=7"`
	ConfirmNewPassword string `json:"confirm_new_password" binding:"required,min=7"`
}
