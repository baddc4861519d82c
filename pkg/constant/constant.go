package constant

// Counter sequence keys. User and role ids come from separate sequences.
const (
	UserEntity = "user"
	RoleEntity = "role"
)

// Collection names.
const (
	UsersCollection    = "users"
	RolesCollection    = "roles"
	CountersCollection = "counters"
)

// DefaultTokenExpiryMin is the access token lifetime when TOKEN_EXPIRY is unset.
const DefaultTokenExpiryMin = 10
