package dto

// RegisterReq represents the request body for POST /auth/register.
// IsAdmin is only honoured when the request also carries an admin token.
// Password length rules are applied by the usecase.
type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}
