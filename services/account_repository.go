package services

import (
	"context"
	"strings"
	"time"

	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/kendall-kelly/furniture-portal-api/store"
	"github.com/kendall-kelly/furniture-portal-api/utils"
	"github.com/kendall-kelly/furniture-portal-api/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type ClientInput struct {
	Username string
	Name     string
	Email    string
	Password string // defaults to the configured default password when blank
}

// ClientPatch changes a client account. A nil or blank Password keeps the current one.
type ClientPatch struct {
	Username *string
	Name     *string
	Email    *string
	Password *string
}

// ClientRepository stores client accounts
type ClientRepository struct {
	clients         *store.Collection[models.Client]
	hasher          PasswordHasher
	defaultPassword string
	now             func() time.Time
}

func NewClientRepository(backend store.Backend, logger *zap.Logger, hasher PasswordHasher, defaultPassword string, seed func() []models.Client) *ClientRepository {
	return &ClientRepository{
		clients: store.NewCollection(backend, logger, store.Options[models.Client]{
			Key:   "clients",
			ID:    func(c models.Client) string { return c.ID },
			Valid: func(c models.Client) bool { return c.ID != "" && c.Username != "" },
			Seed:  seed,
		}),
		hasher:          hasher,
		defaultPassword: defaultPassword,
		now:             time.Now,
	}
}

func (r *ClientRepository) Load(ctx context.Context) error {
	return r.clients.Load(ctx)
}

func (r *ClientRepository) List() []models.Client {
	return r.clients.List(nil)
}

func (r *ClientRepository) Count() int {
	return r.clients.Count(nil)
}

func (r *ClientRepository) GetByID(id string) (models.Client, bool) {
	return r.clients.Get(id)
}

func (r *ClientRepository) Exists(id string) bool {
	_, ok := r.clients.Get(id)
	return ok
}

func (r *ClientRepository) FindByUsername(username string) (models.Client, bool) {
	return r.clients.Find(func(c models.Client) bool { return c.Username == username })
}

func (r *ClientRepository) usernameTaken(username, exceptID string) bool {
	_, taken := r.clients.Find(func(c models.Client) bool { return c.Username == username && c.ID != exceptID })
	return taken
}

func (r *ClientRepository) Create(ctx context.Context, input ClientInput) (models.Client, error) {
	v := validation.Violations{}
	validation.Required("username", input.Username, v)
	validation.Required("name", input.Name, v)
	if err := v.Err(); err != nil {
		return models.Client{}, err
	}
	if r.usernameTaken(input.Username, "") {
		return models.Client{}, ErrUsernameTaken
	}

	password := input.Password
	if strings.TrimSpace(password) == "" {
		password = r.defaultPassword
	}
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return models.Client{}, err
	}

	now := r.now().UTC()
	return r.clients.Insert(ctx, models.Client{
		ID:           utils.NewID("cli"),
		Username:     input.Username,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (r *ClientRepository) Update(ctx context.Context, id string, patch ClientPatch) (models.Client, bool, error) {
	if patch.Username != nil && r.usernameTaken(*patch.Username, id) {
		return models.Client{}, r.Exists(id), ErrUsernameTaken
	}

	var hash string
	if patch.Password != nil && strings.TrimSpace(*patch.Password) != "" {
		h, err := r.hasher.Hash(*patch.Password)
		if err != nil {
			return models.Client{}, r.Exists(id), err
		}
		hash = h
	}

	return r.clients.Update(ctx, id, func(c *models.Client) error {
		if patch.Username != nil {
			c.Username = *patch.Username
		}
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Email != nil {
			c.Email = *patch.Email
		}
		if hash != "" {
			c.PasswordHash = hash
		}
		v := validation.Violations{}
		validation.Required("username", c.Username, v)
		validation.Required("name", c.Name, v)
		if err := v.Err(); err != nil {
			return err
		}
		c.UpdatedAt = r.now().UTC()
		return nil
	})
}

func (r *ClientRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.clients.Delete(ctx, id)
}

// Authenticate returns the client whose username and password match
func (r *ClientRepository) Authenticate(username, password string) (models.Client, bool) {
	client, ok := r.FindByUsername(username)
	if !ok || !r.hasher.Compare(client.PasswordHash, password) {
		return models.Client{}, false
	}
	return client, true
}

type AdminInput struct {
	Username string
	Name     string
	Password string
}

// AdminRepository stores administrator accounts
type AdminRepository struct {
	admins *store.Collection[models.Admin]
	hasher PasswordHasher
}

func NewAdminRepository(backend store.Backend, logger *zap.Logger, hasher PasswordHasher, seed func() []models.Admin) *AdminRepository {
	return &AdminRepository{
		admins: store.NewCollection(backend, logger, store.Options[models.Admin]{
			Key: "admins",
			ID:  func(a models.Admin) string { return a.ID },
			Valid: func(a models.Admin) bool {
				return a.ID != "" && a.Username != "" && a.PasswordHash != ""
			},
			Seed: seed,
		}),
		hasher: hasher,
	}
}

func (r *AdminRepository) Load(ctx context.Context) error {
	return r.admins.Load(ctx)
}

func (r *AdminRepository) List() []models.Admin {
	return r.admins.List(nil)
}

func (r *AdminRepository) GetByID(id string) (models.Admin, bool) {
	return r.admins.Get(id)
}

func (r *AdminRepository) FindByUsername(username string) (models.Admin, bool) {
	return r.admins.Find(func(a models.Admin) bool { return a.Username == username })
}

// Create adds an admin. The username must be unique and a password is required.
func (r *AdminRepository) Create(ctx context.Context, input AdminInput) (models.Admin, error) {
	v := validation.Violations{}
	validation.Required("username", input.Username, v)
	validation.Required("name", input.Name, v)
	if err := v.Err(); err != nil {
		return models.Admin{}, err
	}
	if _, taken := r.FindByUsername(input.Username); taken {
		return models.Admin{}, ErrUsernameTaken
	}
	if strings.TrimSpace(input.Password) == "" {
		return models.Admin{}, ErrPasswordRequired
	}

	hash, err := r.hasher.Hash(input.Password)
	if err != nil {
		return models.Admin{}, err
	}
	return r.admins.Insert(ctx, models.Admin{
		ID:           utils.NewID("adm"),
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: hash,
	})
}

// Authenticate returns the admin whose username and password match
func (r *AdminRepository) Authenticate(username, password string) (models.Admin, bool) {
	admin, ok := r.FindByUsername(username)
	if !ok || !r.hasher.Compare(admin.PasswordHash, password) {
		return models.Admin{}, false
	}
	return admin, true
}

// ChangePassword verifies the current password and stores the new one
func (r *AdminRepository) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	admin, ok := r.admins.Get(id)
	if !ok {
		return ErrAdminNotFound
	}
	if !r.hasher.Compare(admin.PasswordHash, currentPassword) {
		return ErrIncorrectPassword
	}
	if strings.TrimSpace(newPassword) == "" {
		return ErrPasswordRequired
	}

	hash, err := r.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	_, found, err := r.admins.Update(ctx, id, func(a *models.Admin) error {
		a.PasswordHash = hash
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrAdminNotFound
	}
	return nil
}
