package auth

// Role grants a fixed set of console permissions.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// Permissions is what a role may do in the console.
type Permissions struct {
	ViewTopology      bool `json:"viewTopology"`
	ConfigureTopology bool `json:"configureTopology"`
	ManageUsers       bool `json:"manageUsers"`
}

var rolePermissions = map[Role]Permissions{
	RoleAdmin:    {ViewTopology: true, ConfigureTopology: true, ManageUsers: true},
	RoleOperator: {ViewTopology: true, ConfigureTopology: true},
	RoleViewer:   {ViewTopology: true},
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Permissions returns the grants for the role. Unknown roles get none.
func (r Role) Permissions() Permissions {
	return rolePermissions[r]
}
