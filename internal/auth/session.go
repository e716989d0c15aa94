package auth

import (
	"fmt"
	"net/http"
	"strings"

	"codeberg.org/ledgerly/server/internal/config"
	"github.com/gorilla/sessions"
)

// session value keys
const (
	keyUserID      = "user_id"
	keyTenantID    = "tenant_id"
	keyEmail       = "email"
	keyName        = "name"
	keyRole        = "role"
	keyPermissions = "permissions"
)

var identityKeys = []string{keyUserID, keyTenantID, keyEmail, keyName, keyRole, keyPermissions}

// creates the cookie store backing login sessions and flash messages
func NewCookieStore(secret string, cfg config.SessionConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Lifetime.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return store
}

// keeps the signed-in identity on the cookie session
type SessionStore struct {
	store sessions.Store
	name  string
}

func NewSessionStore(store sessions.Store, sessionName string) *SessionStore {
	return &SessionStore{store: store, name: sessionName}
}

// records id as the signed-in user
func (s *SessionStore) Login(w http.ResponseWriter, r *http.Request, id *Identity) error {
	session, err := s.store.Get(r, s.name)
	if session == nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	session.Values[keyUserID] = id.UserID
	session.Values[keyTenantID] = id.TenantID
	session.Values[keyEmail] = id.Email
	session.Values[keyName] = id.Name
	session.Values[keyRole] = id.Role
	session.Values[keyPermissions] = strings.Join(id.Permissions, ",")

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// forgets the signed-in user. queued flash messages survive.
func (s *SessionStore) Logout(w http.ResponseWriter, r *http.Request) error {
	session, err := s.store.Get(r, s.name)
	if session == nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	for _, key := range identityKeys {
		delete(session.Values, key)
	}

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// returns the signed-in user, if any
func (s *SessionStore) Identity(r *http.Request) (*Identity, bool) {
	session, err := s.store.Get(r, s.name)
	if err != nil || session == nil {
		return nil, false
	}

	userID, _ := session.Values[keyUserID].(string)
	if userID == "" {
		return nil, false
	}

	id := &Identity{UserID: userID}
	id.TenantID, _ = session.Values[keyTenantID].(string)
	id.Email, _ = session.Values[keyEmail].(string)
	id.Name, _ = session.Values[keyName].(string)
	id.Role, _ = session.Values[keyRole].(string)

	if perms, _ := session.Values[keyPermissions].(string); perms != "" {
		id.Permissions = strings.Split(perms, ",")
	}

	return id, true
}
