package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NormalizeName canonicalizes a user or role name for case-insensitive
// exact-match lookups.
func NormalizeName(name string) string {
	return strings.ToUpper(name)
}

// Login links a local account to a third-party identity. The composite key
// is (LoginProvider, ProviderKey).
type Login struct {
	LoginProvider       string `bson:"loginProvider"`
	ProviderKey         string `bson:"providerKey"`
	ProviderDisplayName string `bson:"providerDisplayName,omitempty"`
}

// Claim is a (type, value) pair attached to a user.
type Claim struct {
	Type  string `bson:"type"`
	Value string `bson:"value"`
}

// Token is a provider-scoped named value. The composite key is
// (LoginProvider, Name); setting an existing key overwrites the value.
type Token struct {
	LoginProvider string `bson:"loginProvider"`
	Name          string `bson:"name"`
	Value         string `bson:"value"`
}

// User is the identity aggregate persisted as a single document. ID is
// assigned once by the sequence allocator during UserRepository.Create and
// never changes afterwards. Mutator methods operate purely in memory;
// callers persist by calling UserRepository.Update explicitly.
type User struct {
	ID                 int            `bson:"_id"`
	UserName           string         `bson:"userName"`
	NormalizedUserName string         `bson:"normalizedUserName"`
	SecurityStamp      string         `bson:"securityStamp"`
	PasswordHash       string         `bson:"passwordHash,omitempty"`
	Email              *ContactRecord `bson:"email,omitempty"`
	NormalizedEmail    string         `bson:"normalizedEmail,omitempty"`
	PhoneNumber        *ContactRecord `bson:"phoneNumber,omitempty"`
	TwoFactorEnabled   bool           `bson:"twoFactorEnabled"`
	LockoutEnd         *Occurrence    `bson:"lockoutEnd,omitempty"`
	LockoutEnabled     bool           `bson:"lockoutEnabled"`
	AccessFailedCount  int            `bson:"accessFailedCount"`
	Roles              []string       `bson:"roles,omitempty"`
	Logins             []Login        `bson:"logins,omitempty"`
	Claims             []Claim        `bson:"claims,omitempty"`
	Tokens             []Token        `bson:"tokens,omitempty"`
}

// NewUser builds an unpersisted user with a fresh security stamp. The id
// stays zero until the repository allocates one.
func NewUser(userName string) *User {
	return &User{
		UserName:           userName,
		NormalizedUserName: NormalizeName(userName),
		SecurityStamp:      uuid.NewString(),
	}
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// RotateSecurityStamp replaces the stamp; called whenever credentials or
// security-sensitive claims change.
func (u *User) RotateSecurityStamp() {
	u.SecurityStamp = uuid.NewString()
}

func (u *User) SetEmail(address string) {
	u.Email = NewContactRecord(address)
	u.NormalizedEmail = NormalizeName(address)
}

func (u *User) SetPhoneNumber(number string) {
	u.PhoneNumber = NewContactRecord(number)
}

// IsLockedOut reports whether the lockout window is still open at now.
func (u *User) IsLockedOut(now time.Time) bool {
	return u.LockoutEnabled && u.LockoutEnd != nil && u.LockoutEnd.Instant.After(now)
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) AddRole(role string) {
	if !u.HasRole(role) {
		u.Roles = append(u.Roles, role)
	}
}

func (u *User) RemoveRole(role string) {
	for i, r := range u.Roles {
		if r == role {
			u.Roles = append(u.Roles[:i], u.Roles[i+1:]...)
			return
		}
	}
}

func (u *User) AddLogin(login Login) {
	u.Logins = append(u.Logins, login)
}

func (u *User) RemoveLogin(loginProvider, providerKey string) {
	kept := u.Logins[:0]
	for _, l := range u.Logins {
		if l.LoginProvider != loginProvider || l.ProviderKey != providerKey {
			kept = append(kept, l)
		}
	}
	u.Logins = kept
}

func (u *User) AddClaim(claim Claim) {
	u.Claims = append(u.Claims, claim)
}

func (u *User) RemoveClaim(claim Claim) {
	kept := u.Claims[:0]
	for _, c := range u.Claims {
		if c != claim {
			kept = append(kept, c)
		}
	}
	u.Claims = kept
}

// ReplaceClaim swaps every occurrence of existingClaim for a single
// newClaim. When existingClaim is not present the claims list is left
// untouched; that is success, not an error.
func (u *User) ReplaceClaim(existingClaim, newClaim Claim) {
	present := false
	for _, c := range u.Claims {
		if c == existingClaim {
			present = true
			break
		}
	}
	if !present {
		return
	}
	u.RemoveClaim(existingClaim)
	u.AddClaim(newClaim)
}

func (u *User) findToken(loginProvider, name string) *Token {
	for i := range u.Tokens {
		if u.Tokens[i].LoginProvider == loginProvider && u.Tokens[i].Name == name {
			return &u.Tokens[i]
		}
	}
	return nil
}

// SetToken overwrites the value for an existing (provider, name) key or
// appends a new entry.
func (u *User) SetToken(loginProvider, name, value string) {
	if t := u.findToken(loginProvider, name); t != nil {
		t.Value = value
		return
	}
	u.Tokens = append(u.Tokens, Token{LoginProvider: loginProvider, Name: name, Value: value})
}

// GetTokenValue returns the stored value and whether the key exists.
func (u *User) GetTokenValue(loginProvider, name string) (string, bool) {
	if t := u.findToken(loginProvider, name); t != nil {
		return t.Value, true
	}
	return "", false
}

func (u *User) RemoveToken(loginProvider, name string) {
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t.LoginProvider != loginProvider || t.Name != name {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
}
