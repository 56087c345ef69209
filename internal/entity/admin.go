package entity

const RoleAdmin = "admin"

type AdminLoginData struct {
	Username string
	Role     string
}
