package domain

// Role is a named role document. Ids come from their own counter sequence,
// independent of user ids.
type Role struct {
	ID             int    `bson:"_id"`
	Name           string `bson:"name"`
	NormalizedName string `bson:"normalizedName"`
}

func NewRole(name string) *Role {
	return &Role{
		Name:           name,
		NormalizedName: NormalizeName(name),
	}
}
